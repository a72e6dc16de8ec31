package matops

import (
	"sync"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
)

// unitCellLevel builds a single-patch unit-square level of n cells per
// axis with a painted cell DOF numbering.
func unitCellLevel(n, depth, ghost int) (lv *hier.PatchLevel, nDofs int) {
	var (
		domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, n-1))
		g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
	)
	lv = hier.NewPatchLevel(g, geom.Uniform(2, 1), 0)
	lv.AddPatch(domain)
	nDofs = hier.NumberCellDofs(lv, depth, ghost)
	return
}

// unitSideLevel is the face-centered companion of unitCellLevel.
func unitSideLevel(n, ghost int) (lv *hier.PatchLevel, nDofs int) {
	var (
		domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, n-1))
		g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
	)
	lv = hier.NewPatchLevel(g, geom.Uniform(2, 1), 0)
	lv.AddPatch(domain)
	nDofs = hier.NumberSideDofs(lv, ghost)
	return
}

// splitCellLevel builds a two-patch unit-square level split along the
// first axis, with a painted cell DOF numbering.
func splitCellLevel(n, depth, ghost int) (lv *hier.PatchLevel, nDofs int) {
	var (
		domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, n-1))
		g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
	)
	lv = hier.NewPatchLevel(g, geom.Uniform(2, 1), 0)
	left := domain.Copy()
	left.Hi[0] = n/2 - 1
	right := domain.Copy()
	right.Lo[0] = n / 2
	lv.AddPatch(left)
	lv.AddPatch(right)
	nDofs = hier.NumberCellDofs(lv, depth, ghost)
	return
}

// onRanks runs f concurrently on every rank of a fresh world and waits
// for all ranks to finish.
func onRanks(np int, f func(c *linalg.Comm)) {
	w := linalg.NewWorld(np)
	var wg sync.WaitGroup
	for r := 0; r < np; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			f(w.Comm(rank))
		}(r)
	}
	wg.Wait()
}

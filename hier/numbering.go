package hier

import (
	"github.com/pj-ming/IBAMR/geom"
)

// The numbering helpers below stand in for the external DOF-numbering
// pass: they paint contiguous natural-order DOF numbers onto a level
// and replicate them into ghost regions. The assemblers never call
// them; they exist for the demo command and the tests.

type locKey [4]int

func cellKey(i geom.IntVect, d int) (k locKey) {
	for n := range i {
		k[n] = i[n]
	}
	k[3] = d
	return
}

func sideKey(axis int, i geom.IntVect) (k locKey) {
	for n := range i {
		k[n] = i[n]
	}
	k[3] = axis
	return
}

// NumberCellDofs paints a contiguous cell-centered DOF numbering over
// the interior cells of every patch of the level, then fills ghost
// copies from the owning patches. Returns the total DOF count.
func NumberCellDofs(lv *PatchLevel, depth, ghost int) (count int) {
	dofOf := make(map[locKey]int)
	for _, p := range lv.Patches {
		p.CellDof = NewCellDofData(p.Box, depth, ghost)
		p.Box.Iterate(func(i geom.IntVect) {
			for d := 0; d < depth; d++ {
				dofOf[cellKey(i, d)] = count
				count++
			}
		})
	}
	for _, p := range lv.Patches {
		p.CellDof.GhostBox.Iterate(func(i geom.IntVect) {
			for d := 0; d < depth; d++ {
				if dof, ok := dofOf[cellKey(i, d)]; ok {
					p.CellDof.Set(i, d, dof)
				}
			}
		})
	}
	return
}

// NumberSideDofs paints a contiguous face-centered DOF numbering over
// the interior faces of every patch, one face-normal axis at a time.
// A face shared by two patches is numbered once, by the first patch
// that visits it. Ghost copies are filled from the owners.
func NumberSideDofs(lv *PatchLevel, ghost int) (count int) {
	var (
		dim   = lv.Dim()
		dofOf = make(map[locKey]int)
	)
	for _, p := range lv.Patches {
		p.SideDof = NewSideDofData(p.Box, ghost)
		for axis := 0; axis < dim; axis++ {
			p.Box.SideBox(axis).Iterate(func(i geom.IntVect) {
				if _, ok := dofOf[sideKey(axis, i)]; !ok {
					dofOf[sideKey(axis, i)] = count
					count++
				}
			})
		}
	}
	for _, p := range lv.Patches {
		for axis := 0; axis < dim; axis++ {
			p.SideDof.GhostSideBox(axis).Iterate(func(i geom.IntVect) {
				if dof, ok := dofOf[sideKey(axis, i)]; ok {
					p.SideDof.Set(axis, i, dof)
				}
			})
		}
	}
	return
}

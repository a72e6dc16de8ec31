package hier

import (
	"github.com/pj-ming/IBAMR/geom"
)

const (
	Lower = 0
	Upper = 1
)

// Patch is one rectangular piece of a level, with its interior box and
// the DOF index fields painted onto it by the external numbering pass.
type Patch struct {
	Box geom.Box
	// TouchesPhysical[axis][side] reports whether the patch face lies on
	// the true physical domain boundary.
	TouchesPhysical [][2]bool

	CellDof *CellDofData
	SideDof *SideDofData
}

// BoundaryBox is one codimension-1 piece of the coarse-fine interface
// of a patch. LocationIndex encodes the face: axis = LocationIndex/2,
// upper side when LocationIndex%2 == 1.
type BoundaryBox struct {
	Box           geom.Box
	LocationIndex int
}

func (b BoundaryBox) NormalAxis() int { return b.LocationIndex / 2 }
func (b BoundaryBox) IsUpper() bool   { return b.LocationIndex%2 == Upper }

// CoarseFineBoundary stores the coarse-fine interface boxes of each
// patch of a level.
type CoarseFineBoundary struct {
	boxes map[int][]BoundaryBox
}

func NewCoarseFineBoundary() *CoarseFineBoundary {
	return &CoarseFineBoundary{boxes: make(map[int][]BoundaryBox)}
}

func (cf *CoarseFineBoundary) Add(patchNum int, bb BoundaryBox) {
	cf.boxes[patchNum] = append(cf.boxes[patchNum], bb)
}

func (cf *CoarseFineBoundary) Boundaries(patchNum int) []BoundaryBox {
	if cf == nil {
		return nil
	}
	return cf.boxes[patchNum]
}

// PatchLevel is one refinement level of the hierarchy: a set of
// non-overlapping patches sharing a refinement ratio relative to the
// coarsest index space. Consumed read-only by the operator assemblers.
type PatchLevel struct {
	Geom       *GridGeometry
	Ratio      geom.IntVect
	Patches    []*Patch
	LevelNum   int
	CoarseFine *CoarseFineBoundary
}

func NewPatchLevel(g *GridGeometry, ratio geom.IntVect, levelNum int) *PatchLevel {
	return &PatchLevel{
		Geom:     g,
		Ratio:    ratio,
		LevelNum: levelNum,
	}
}

func (lv *PatchLevel) Dim() int { return lv.Geom.Dim() }

// DomainBox is the physical domain in this level's index space.
func (lv *PatchLevel) DomainBox() geom.Box {
	return lv.Geom.Domain.Refine(lv.Ratio)
}

func (lv *PatchLevel) Dx() []float64 { return lv.Geom.LevelDx(lv.Ratio) }

// AddPatch appends a patch and derives its physical-boundary flags
// from the level's domain box.
func (lv *PatchLevel) AddPatch(box geom.Box) (p *Patch) {
	var (
		dim    = lv.Dim()
		domain = lv.DomainBox()
	)
	p = &Patch{
		Box:             box.Copy(),
		TouchesPhysical: make([][2]bool, dim),
	}
	for axis := 0; axis < dim; axis++ {
		p.TouchesPhysical[axis][Lower] = box.Lo[axis] == domain.Lo[axis]
		p.TouchesPhysical[axis][Upper] = box.Hi[axis] == domain.Hi[axis]
	}
	lv.Patches = append(lv.Patches, p)
	return
}

// FindPatches returns the indices of the patches whose interior box
// overlaps the query box.
func (lv *PatchLevel) FindPatches(box geom.Box) (nums []int) {
	for n, p := range lv.Patches {
		if p.Box.Intersects(box) {
			nums = append(nums, n)
		}
	}
	return
}

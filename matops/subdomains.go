package matops

import (
	"fmt"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
)

// ASMSubdomains partitions every local patch interior into a regular
// tiling of boxSize sub-boxes and emits one pair of index sets per
// sub-box: the non-overlapping set partitioning the patch DOFs
// disjointly, and the overlapping set grown by overlapSize for
// Schwarz-type smoothing. Pairs are ordered patch-major, then sub-box
// order within the patch. The centering variant is chosen once from
// the painted DOF fields.
//
// When overlapSize is zero the overlapping entry aliases the very same
// *IndexSet as the non-overlapping one; callers can compare pointers
// to detect the degenerate case.
func ASMSubdomains(boxSize, overlapSize geom.IntVect,
	level *hier.PatchLevel) (overlap, nonoverlap []*linalg.IndexSet, err error) {
	if len(level.Patches) == 0 {
		return nil, nil, nil
	}
	switch {
	case level.Patches[0].CellDof != nil:
		return CellASMSubdomains(boxSize, overlapSize, level)
	case level.Patches[0].SideDof != nil:
		return SideASMSubdomains(boxSize, overlapSize, level)
	default:
		return nil, nil, fmt.Errorf("ASMSubdomains: level carries no DOF index field")
	}
}

// CellASMSubdomains is the cell-centered variant. Cell DOFs are never
// shared between sub-boxes, so the non-overlapping sets need no
// boundary exclusion.
func CellASMSubdomains(boxSize, overlapSize geom.IntVect,
	level *hier.PatchLevel) (overlap, nonoverlap []*linalg.IndexSet, err error) {
	thereIsOverlap := overlapSize.Max() > 0
	for n, p := range level.Patches {
		dofData := p.CellDof
		if dofData.Ghost < overlapSize.Max() {
			return nil, nil, fmt.Errorf("CellASMSubdomains: patch %d ghost width %d < requested overlap %d",
				n, dofData.Ghost, overlapSize.Max())
		}
		overlapBoxes, nonoverlapBoxes := geom.PartitionBox(p.Box, boxSize, overlapSize)
		for k := range nonoverlapBoxes {
			var localDofs []int
			nonoverlapBoxes[k].Iterate(func(i geom.IntVect) {
				for d := 0; d < dofData.Depth; d++ {
					localDofs = append(localDofs, dofData.At(i, d))
				}
			})
			nonoverlapSet := linalg.NewIndexSet(localDofs)
			nonoverlap = append(nonoverlap, nonoverlapSet)

			if !thereIsOverlap {
				overlap = append(overlap, nonoverlapSet)
				continue
			}
			// Ghost replication can reach the same DOF from several local
			// directions; keep valid DOFs only and deduplicate.
			var overlapDofs []int
			overlapBoxes[k].Iterate(func(i geom.IntVect) {
				for d := 0; d < dofData.Depth; d++ {
					if dof := dofData.At(i, d); dof >= 0 {
						overlapDofs = append(overlapDofs, dof)
					}
				}
			})
			overlap = append(overlap, linalg.NewUniqueIndexSet(overlapDofs))
		}
	}
	return
}

// SideASMSubdomains is the face-centered variant. A face on a
// sub-box's upper side along its own normal axis is shared with the
// neighboring sub-box and is excluded from the non-overlapping set,
// unless that face lies on the physical domain boundary or on an
// upper coarse-fine interface, where no neighboring sub-box exists to
// claim it.
func SideASMSubdomains(boxSize, overlapSize geom.IntVect,
	level *hier.PatchLevel) (overlap, nonoverlap []*linalg.IndexSet, err error) {
	var (
		dim            = level.Dim()
		thereIsOverlap = overlapSize.Max() > 0
	)
	for n, p := range level.Patches {
		dofData := p.SideDof
		if dofData.Ghost < overlapSize.Max() {
			return nil, nil, fmt.Errorf("SideASMSubdomains: patch %d ghost width %d < requested overlap %d",
				n, dofData.Ghost, overlapSize.Max())
		}

		sidePatchBox := make([]geom.Box, dim)
		for axis := 0; axis < dim; axis++ {
			sidePatchBox[axis] = p.Box.SideBox(axis)
		}

		// Upper-side coarse-fine interface boxes of this patch, per
		// face-normal axis. The coarsest level has no coarse-fine boundary.
		upperCF := make([][]geom.Box, dim)
		if level.LevelNum > 0 {
			for _, bb := range level.CoarseFine.Boundaries(n) {
				if bb.IsUpper() {
					axis := bb.NormalAxis()
					upperCF[axis] = append(upperCF[axis], bb.Box)
				}
			}
		}

		overlapBoxes, nonoverlapBoxes := geom.PartitionBox(p.Box, boxSize, overlapSize)
		for k := range nonoverlapBoxes {
			var localDofs []int
			for axis := 0; axis < dim; axis++ {
				tileSide := nonoverlapBoxes[k].SideBox(axis)
				tileSide.Iterate(func(i geom.IntVect) {
					atUpper := i[axis] == tileSide.Hi[axis]
					atUpperPhysical := atUpper && i[axis] == sidePatchBox[axis].Hi[axis] &&
						p.TouchesPhysical[axis][hier.Upper]
					atUpperCF := atUpper && containsIdx(upperCF[axis], i)
					if !atUpper || atUpperPhysical || atUpperCF {
						localDofs = append(localDofs, dofData.At(axis, i))
					}
				})
			}
			nonoverlapSet := linalg.NewIndexSet(localDofs)
			nonoverlap = append(nonoverlap, nonoverlapSet)

			if !thereIsOverlap {
				overlap = append(overlap, nonoverlapSet)
				continue
			}
			var overlapDofs []int
			for axis := 0; axis < dim; axis++ {
				overlapBoxes[k].SideBox(axis).Iterate(func(i geom.IntVect) {
					if dof := dofData.At(axis, i); dof >= 0 {
						overlapDofs = append(overlapDofs, dof)
					}
				})
			}
			overlap = append(overlap, linalg.NewUniqueIndexSet(overlapDofs))
		}
	}
	return
}

func containsIdx(boxes []geom.Box, i geom.IntVect) bool {
	for _, b := range boxes {
		if b.Contains(i) {
			return true
		}
	}
	return false
}

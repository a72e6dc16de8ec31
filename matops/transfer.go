package matops

import (
	"fmt"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
)

// ProlongationOp builds the coarse-to-fine transfer operator, choosing
// the centering variant once from the DOF fields painted on the fine
// level: constant injection for cell data, linear interpolation along
// the face-normal axis for side data.
func ProlongationOp(comm *linalg.Comm, numFineDofsPerProc, numCoarseDofsPerProc []int,
	fineLevel, coarseLevel *hier.PatchLevel, coarseAO *linalg.AppOrdering,
	coarseAOOffset int) (m *linalg.Mat, err error) {
	if len(fineLevel.Patches) == 0 {
		return nil, fmt.Errorf("ProlongationOp: fine level has no patches")
	}
	switch {
	case fineLevel.Patches[0].CellDof != nil:
		return CCProlongationOp(comm, numFineDofsPerProc, numCoarseDofsPerProc,
			fineLevel, coarseLevel, coarseAO, coarseAOOffset)
	case fineLevel.Patches[0].SideDof != nil:
		return SCProlongationOp(comm, numFineDofsPerProc, numCoarseDofsPerProc,
			fineLevel, coarseLevel, coarseAO, coarseAOOffset)
	default:
		return nil, fmt.Errorf("ProlongationOp: fine level carries no DOF index field")
	}
}

// CCProlongationOp builds the cell-centered prolongation operator by
// constant injection: each fine DOF row holds a single weight-1.0
// entry at the coarse DOF owning the coarsened fine index. The coarse
// column is found by linearizing the coarsened index in natural order
// and remapping through the caller-supplied application ordering.
func CCProlongationOp(comm *linalg.Comm, numFineDofsPerProc, numCoarseDofsPerProc []int,
	fineLevel, coarseLevel *hier.PatchLevel, coarseAO *linalg.AppOrdering,
	coarseAOOffset int) (m *linalg.Mat, err error) {
	var (
		coarseDomain = coarseLevel.DomainBox()
		numCells     = make(geom.IntVect, coarseLevel.Dim())
		ratio        = fineCoarseRatio(fineLevel, coarseLevel)
	)
	for d := range numCells {
		numCells[d] = coarseDomain.Extent(d)
	}
	iFineLower, iFineUpper, _ := OwnershipRange(comm.Rank(), numFineDofsPerProc)
	jCoarseLower, jCoarseUpper, nCoarseTotal := OwnershipRange(comm.Rank(), numCoarseDofsPerProc)
	mLocal := iFineUpper - iFineLower
	nLocal := jCoarseUpper - jCoarseLower

	// Count pass: exactly one entry per fine row, in the diagonal or
	// off-diagonal block depending on where the coarse DOF lives.
	ctr := newNNZCounter(mLocal, iFineLower, iFineUpper, jCoarseLower, jCoarseUpper, nCoarseTotal)
	col := make([]int, 1)
	for _, p := range fineLevel.Patches {
		dofData := p.CellDof
		depth := dofData.Depth
		p.Box.Iterate(func(iFine geom.IntVect) {
			iCoarse := iFine.Coarsen(ratio)
			for d := 0; d < depth; d++ {
				dof := dofData.At(iFine, d)
				if !ctr.ownsRow(dof) {
					panic(fmt.Errorf("CCProlongationOp: fine DOF %d at %v outside ownership range [%d, %d)",
						dof, iFine, iFineLower, iFineUpper))
				}
				col[0] = geom.MapIndexToInteger(iCoarse, coarseDomain.Lo, numCells, d, coarseAOOffset)
				coarseAO.ApplyTo(col)
				ctr.count(dof-iFineLower, col[0])
			}
		})
	}

	m = linalg.NewAIJMat(comm, "CCProlongationOp", mLocal, nLocal, ctr.dnz, ctr.onz)

	// Fill pass.
	val := []float64{1.0}
	for _, p := range fineLevel.Patches {
		dofData := p.CellDof
		depth := dofData.Depth
		p.Box.Iterate(func(iFine geom.IntVect) {
			iCoarse := iFine.Coarsen(ratio)
			for d := 0; d < depth; d++ {
				col[0] = geom.MapIndexToInteger(iCoarse, coarseDomain.Lo, numCells, d, coarseAOOffset)
				coarseAO.ApplyTo(col)
				m.SetValues(dofData.At(iFine, d), col, val)
			}
		})
	}

	if err = m.Assemble(); err != nil {
		return nil, err
	}
	return
}

// SCProlongationOp builds the face-centered prolongation operator by
// linear interpolation along each face-normal axis between the two
// coarse faces bracketing the fine face: weight 1 - r on the lower
// bracket, r on the upper, where r is the fractional offset of the
// fine face from the lower coarse face. Fine faces owned by other
// processes are skipped.
func SCProlongationOp(comm *linalg.Comm, numFineDofsPerProc, numCoarseDofsPerProc []int,
	fineLevel, coarseLevel *hier.PatchLevel, coarseAO *linalg.AppOrdering,
	coarseAOOffset int) (m *linalg.Mat, err error) {
	var (
		dim          = coarseLevel.Dim()
		coarseDomain = coarseLevel.DomainBox()
		ratio        = fineCoarseRatio(fineLevel, coarseLevel)
		sideNumCells = make([]geom.IntVect, dim)
		dataOffsets  = make([]int, dim)
	)
	for axis := 0; axis < dim; axis++ {
		sideNumCells[axis] = make(geom.IntVect, dim)
		for d := 0; d < dim; d++ {
			sideNumCells[axis][d] = coarseDomain.Extent(d)
			if d == axis {
				sideNumCells[axis][d]++
			}
		}
	}
	// Each axis block of the natural side numbering starts after the
	// blocks of the preceding axes.
	for axis := 1; axis < dim; axis++ {
		prev := 1
		for d := 0; d < dim; d++ {
			prev *= sideNumCells[axis-1][d]
		}
		dataOffsets[axis] = dataOffsets[axis-1] + prev
	}

	iFineLower, iFineUpper, _ := OwnershipRange(comm.Rank(), numFineDofsPerProc)
	jCoarseLower, jCoarseUpper, nCoarseTotal := OwnershipRange(comm.Rank(), numCoarseDofsPerProc)
	mLocal := iFineUpper - iFineLower
	nLocal := jCoarseUpper - jCoarseLower

	// Count pass: two bracketing entries per owned fine face.
	ctr := newNNZCounter(mLocal, iFineLower, iFineUpper, jCoarseLower, jCoarseUpper, nCoarseTotal)
	cols := make([]int, 2)
	for _, p := range fineLevel.Patches {
		dofData := p.SideDof
		for axis := 0; axis < dim; axis++ {
			p.Box.SideBox(axis).Iterate(func(i geom.IntVect) {
				dof := dofData.At(axis, i)
				if !ctr.ownsRow(dof) {
					return
				}
				bracketCols(cols, i, axis, ratio, coarseDomain.Lo, sideNumCells[axis],
					coarseAOOffset+dataOffsets[axis], coarseAO)
				ctr.count(dof-iFineLower, cols[0])
				ctr.count(dof-iFineLower, cols[1])
			})
		}
	}

	m = linalg.NewAIJMat(comm, "SCProlongationOp", mLocal, nLocal, ctr.dnz, ctr.onz)

	// Fill pass.
	vals := make([]float64, 2)
	for _, p := range fineLevel.Patches {
		dofData := p.SideDof
		for axis := 0; axis < dim; axis++ {
			p.Box.SideBox(axis).Iterate(func(i geom.IntVect) {
				dof := dofData.At(axis, i)
				if !ctr.ownsRow(dof) {
					return
				}
				bracketCols(cols, i, axis, ratio, coarseDomain.Lo, sideNumCells[axis],
					coarseAOOffset+dataOffsets[axis], coarseAO)
				iCoarseLower := i.Coarsen(ratio)
				wL := 1 - float64(i[axis]-iCoarseLower.Refine(ratio)[axis])/float64(ratio[axis])
				vals[0], vals[1] = wL, 1-wL
				m.SetValues(dof, cols, vals)
			})
		}
	}

	if err = m.Assemble(); err != nil {
		return nil, err
	}
	return
}

// bracketCols writes the remapped coarse columns of the two coarse
// faces bracketing fine face i along axis. A bracket outside the
// coarse side index space (the upper one, for a fine face on the upper
// domain boundary; its weight is always zero there) becomes -1 and is
// dropped by the matrix insert. Shared by the count and fill passes so
// the classification cannot drift.
func bracketCols(cols []int, i geom.IntVect, axis int, ratio, coarseDomainLower,
	numCells geom.IntVect, offset int, ao *linalg.AppOrdering) {
	iL := i.Coarsen(ratio)
	iU := iL.Shifted(axis, 1)
	cols[0] = sideNatural(iL, coarseDomainLower, numCells, offset)
	cols[1] = sideNatural(iU, coarseDomainLower, numCells, offset)
	ao.ApplyTo(cols)
}

func sideNatural(i, lower, numCells geom.IntVect, offset int) int {
	for d := range i {
		if i[d] < lower[d] || i[d] >= lower[d]+numCells[d] {
			return -1
		}
	}
	return geom.MapIndexToInteger(i, lower, numCells, 0, offset)
}

// RestrictionScalingOp computes the diagonal scaling that turns the
// transpose of the prolongation operator P into a restriction
// operator: the reciprocal of each strictly positive column 1-norm of
// P, zero for columns receiving no prolongation contribution. The
// result is a distributed vector over P's column ownership, never a
// materialized diagonal matrix. Collective.
func RestrictionScalingOp(p *linalg.Mat) (scale *linalg.Vec, err error) {
	if !p.Assembled() {
		return nil, fmt.Errorf("RestrictionScalingOp: prolongation operator is not assembled")
	}
	norms := p.ColumnNorms1()
	colLower, colUpper := p.ColOwnershipRange()
	scale = linalg.NewVec(p.Comm(), "RestrictionScalingOp", colUpper-colLower)
	for k := colLower; k < colUpper; k++ {
		if norms[k] > 0 {
			scale.SetValue(k, 1/norms[k])
		} else {
			scale.SetValue(k, 0)
		}
	}
	scale.Assemble()
	return
}

// BuildCellAppOrdering maps the natural linearization of every
// numbered cell location of a level to its painted DOF index. Stands
// in for the application ordering the external numbering pass exports.
func BuildCellAppOrdering(level *hier.PatchLevel, offset int) (ao *linalg.AppOrdering) {
	var (
		domain   = level.DomainBox()
		numCells = make(geom.IntVect, level.Dim())
	)
	for d := range numCells {
		numCells[d] = domain.Extent(d)
	}
	ao = linalg.NewAppOrdering()
	for _, p := range level.Patches {
		dofData := p.CellDof
		p.Box.Iterate(func(i geom.IntVect) {
			for d := 0; d < dofData.Depth; d++ {
				if dof := dofData.At(i, d); dof >= 0 {
					ao.Add(geom.MapIndexToInteger(i, domain.Lo, numCells, d, offset), dof)
				}
			}
		})
	}
	return
}

// BuildSideAppOrdering is the side-centered companion of
// BuildCellAppOrdering, one natural block per face-normal axis.
func BuildSideAppOrdering(level *hier.PatchLevel, offset int) (ao *linalg.AppOrdering) {
	var (
		dim          = level.Dim()
		domain       = level.DomainBox()
		sideNumCells = make([]geom.IntVect, dim)
		dataOffsets  = make([]int, dim)
	)
	for axis := 0; axis < dim; axis++ {
		sideNumCells[axis] = make(geom.IntVect, dim)
		for d := 0; d < dim; d++ {
			sideNumCells[axis][d] = domain.Extent(d)
			if d == axis {
				sideNumCells[axis][d]++
			}
		}
	}
	for axis := 1; axis < dim; axis++ {
		prev := 1
		for d := 0; d < dim; d++ {
			prev *= sideNumCells[axis-1][d]
		}
		dataOffsets[axis] = dataOffsets[axis-1] + prev
	}
	ao = linalg.NewAppOrdering()
	for _, p := range level.Patches {
		dofData := p.SideDof
		for axis := 0; axis < dim; axis++ {
			p.Box.SideBox(axis).Iterate(func(i geom.IntVect) {
				if dof := dofData.At(axis, i); dof >= 0 {
					ao.Add(geom.MapIndexToInteger(i, domain.Lo, sideNumCells[axis], 0,
						offset+dataOffsets[axis]), dof)
				}
			})
		}
	}
	return
}

func fineCoarseRatio(fineLevel, coarseLevel *hier.PatchLevel) (ratio geom.IntVect) {
	ratio = make(geom.IntVect, fineLevel.Dim())
	for d := range ratio {
		ratio[d] = fineLevel.Ratio[d] / coarseLevel.Ratio[d]
	}
	return
}

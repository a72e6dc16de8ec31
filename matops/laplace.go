package matops

import (
	"fmt"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
	"github.com/pj-ming/IBAMR/poisson"
)

// CCLaplaceOp builds the cell-centered variable-coefficient Laplacian
// operator over one patch level as a square distributed matrix with
// one row per locally owned DOF. bcCoefs supplies one Robin provider
// per depth component; depth > 1 components form independent systems.
//
// Assembly is two-pass: the nonzero structure is counted against the
// painted DOF index field, the matrix is preallocated, and the rows
// are filled with the boundary-aware coefficients in stencil order
// (center first, then lower/upper neighbor per axis). Collective.
func CCLaplaceOp(comm *linalg.Comm, spec poisson.PoissonSpec,
	bcCoefs []poisson.RobinBcCoef, numDofsPerProc []int,
	level *hier.PatchLevel) (m *linalg.Mat, err error) {
	var (
		dim       = level.Dim()
		depth     = len(bcCoefs)
		stencil   = poisson.NewLaplacianStencil(dim)
		stencilSz = stencil.Size()
	)
	if depth < 1 {
		return nil, fmt.Errorf("CCLaplaceOp: at least one boundary coefficient provider required")
	}
	for n, p := range level.Patches {
		if p.CellDof == nil {
			return nil, fmt.Errorf("CCLaplaceOp: patch %d carries no cell DOF index field", n)
		}
		if p.CellDof.Depth != depth {
			return nil, fmt.Errorf("CCLaplaceOp: patch %d DOF depth %d != %d boundary coefficient providers",
				n, p.CellDof.Depth, depth)
		}
	}

	iLower, iUpper, nTotal := OwnershipRange(comm.Rank(), numDofsPerProc)
	nLocal := iUpper - iLower

	// Count pass.
	ctr := newNNZCounter(nLocal, iLower, iUpper, iLower, iUpper, nTotal)
	for _, p := range level.Patches {
		dofData := p.CellDof
		p.Box.Iterate(func(i geom.IntVect) {
			for d := 0; d < depth; d++ {
				dof := dofData.At(i, d)
				if !ctr.ownsRow(dof) {
					continue
				}
				localIdx := dof - iLower
				ctr.count(localIdx, dof)
				for _, off := range stencil.Offsets[1:] {
					ctr.count(localIdx, dofData.At(i.Plus(off), d))
				}
				ctr.clamp(localIdx)
			}
		})
	}

	m = linalg.NewAIJMat(comm, "CCLaplaceOp", nLocal, nLocal, ctr.dnz, ctr.onz)

	// Fill pass. The column order of each row follows the stencil
	// definition shared with the count pass.
	var (
		vals = make([]float64, stencilSz)
		cols = make([]int, stencilSz)
	)
	for _, p := range level.Patches {
		coefs := poisson.ComputeCellMatrixCoefficients(level, p, stencil, spec, bcCoefs)
		dofData := p.CellDof
		p.Box.Iterate(func(i geom.IntVect) {
			for d := 0; d < depth; d++ {
				dof := dofData.At(i, d)
				if !ctr.ownsRow(dof) {
					continue
				}
				base := d * stencilSz
				vals[0] = coefs.At(i, base)
				cols[0] = dof
				for k, off := range stencil.Offsets[1:] {
					vals[k+1] = coefs.At(i, base+k+1)
					cols[k+1] = dofData.At(i.Plus(off), d)
				}
				m.SetValues(dof, cols, vals)
			}
		})
	}

	if err = m.Assemble(); err != nil {
		return nil, err
	}
	return
}

// SCLaplaceOp builds the face-centered (staggered) Laplacian operator:
// one DOF per face per axis, exactly one Robin provider per axis.
// Structure mirrors CCLaplaceOp with the stencil walked on the side
// index space of each face-normal axis.
func SCLaplaceOp(comm *linalg.Comm, spec poisson.PoissonSpec,
	bcCoefs []poisson.RobinBcCoef, numDofsPerProc []int,
	level *hier.PatchLevel) (m *linalg.Mat, err error) {
	var (
		dim       = level.Dim()
		stencil   = poisson.NewLaplacianStencil(dim)
		stencilSz = stencil.Size()
	)
	if len(bcCoefs) != dim {
		return nil, fmt.Errorf("SCLaplaceOp: %d boundary coefficient providers for %d-dimensional staggered data",
			len(bcCoefs), dim)
	}
	for n, p := range level.Patches {
		if p.SideDof == nil {
			return nil, fmt.Errorf("SCLaplaceOp: patch %d carries no side DOF index field", n)
		}
	}

	iLower, iUpper, nTotal := OwnershipRange(comm.Rank(), numDofsPerProc)
	nLocal := iUpper - iLower

	// Count pass.
	ctr := newNNZCounter(nLocal, iLower, iUpper, iLower, iUpper, nTotal)
	for _, p := range level.Patches {
		dofData := p.SideDof
		for axis := 0; axis < dim; axis++ {
			p.Box.SideBox(axis).Iterate(func(i geom.IntVect) {
				dof := dofData.At(axis, i)
				if !ctr.ownsRow(dof) {
					return
				}
				localIdx := dof - iLower
				ctr.count(localIdx, dof)
				for _, off := range stencil.Offsets[1:] {
					ctr.count(localIdx, dofData.At(axis, i.Plus(off)))
				}
				ctr.clamp(localIdx)
			})
		}
	}

	m = linalg.NewAIJMat(comm, "SCLaplaceOp", nLocal, nLocal, ctr.dnz, ctr.onz)

	// Fill pass.
	var (
		vals = make([]float64, stencilSz)
		cols = make([]int, stencilSz)
	)
	for _, p := range level.Patches {
		coefs := poisson.ComputeSideMatrixCoefficients(level, p, stencil, spec, bcCoefs)
		dofData := p.SideDof
		for axis := 0; axis < dim; axis++ {
			axisCoefs := coefs[axis]
			p.Box.SideBox(axis).Iterate(func(i geom.IntVect) {
				dof := dofData.At(axis, i)
				if !ctr.ownsRow(dof) {
					return
				}
				vals[0] = axisCoefs.At(i, 0)
				cols[0] = dof
				for k, off := range stencil.Offsets[1:] {
					vals[k+1] = axisCoefs.At(i, k+1)
					cols[k+1] = dofData.At(axis, i.Plus(off))
				}
				m.SetValues(dof, cols, vals)
			})
		}
	}

	if err = m.Assemble(); err != nil {
		return nil, err
	}
	return
}

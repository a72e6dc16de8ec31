package matops

import (
	"fmt"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
)

// SCInterpOp builds the rectangular operator interpolating the
// face-centered velocity field to the scattered Lagrangian marker
// positions held in markers (dim interleaved coordinates per local
// marker). Each (marker, axis) pair contributes one matrix row whose
// entries are the tensor product of 1-D kernel weights over the
// axis-specific stencil box; the row count per rank is the local
// length of markers. stencilWidth must be even.
func SCInterpOp(comm *linalg.Comm, kernel DeltaKernel, stencilWidth int,
	markers *linalg.Vec, numDofsPerProc []int,
	level *hier.PatchLevel) (m *linalg.Mat, err error) {
	if stencilWidth%2 != 0 {
		return nil, fmt.Errorf("SCInterpOp: odd kernel stencil width %d is not supported", stencilWidth)
	}
	var (
		dim     = level.Dim()
		dx      = level.Dx()
		domain  = level.DomainBox()
		geomtry = level.Geom
	)
	for n, p := range level.Patches {
		if p.SideDof == nil {
			return nil, fmt.Errorf("SCInterpOp: patch %d carries no side DOF index field", n)
		}
	}

	mLocal := markers.LocalLen()
	iLower, _ := markers.OwnershipRange()
	nPoints := mLocal / dim
	jLower, jUpper, nTotal := OwnershipRange(comm.Rank(), numDofsPerProc)
	nLocal := jUpper - jLower
	X := markers.LocalData()

	// Locate the owning patch and the per-axis stencil boxes of every
	// local marker, and count the nonzero structure.
	var (
		patchNum    = make([]int, nPoints)
		stencilBoxs = make([][]geom.Box, nPoints)
		ctr         = newNNZCounter(mLocal, iLower, iLower+mLocal, jLower, jUpper, nTotal)
	)
	for k := 0; k < nPoints; k++ {
		x := X[dim*k : dim*(k+1)]
		xIdx := geomtry.CellIndexOf(x, level.Ratio)

		// Physical center of the cell containing the marker.
		xCell := make([]float64, dim)
		for d := 0; d < dim; d++ {
			xCell[d] = geomtry.XLo[d] + (float64(xIdx[d]-domain.Lo[d])+0.5)*dx[d]
		}

		// Find a local patch holding the marker in its interior or, failing
		// that, within one cell of it.
		nums := level.FindPatches(geom.NewBox(xIdx, xIdx))
		if len(nums) == 0 {
			nums = level.FindPatches(geom.NewBox(xIdx, xIdx).GrowUniform(1))
		}
		if len(nums) == 0 {
			return nil, fmt.Errorf("SCInterpOp: marker %d at cell %v not on any local patch", k, xIdx)
		}
		patchNum[k] = nums[0]
		dofData := level.Patches[nums[0]].SideDof

		stencilBoxs[k] = make([]geom.Box, dim)
		for axis := 0; axis < dim; axis++ {
			// The stencil is centered on the containing cell along the
			// interpolated component's axis; transverse axes pick the side of
			// the cell center the marker lies on, so the center-valued kernel
			// formula applies unchanged to the staggered locations.
			var (
				lo = make(geom.IntVect, dim)
				hi = make(geom.IntVect, dim)
			)
			for d := 0; d < dim; d++ {
				switch {
				case d == axis:
					lo[d] = xIdx[d] - stencilWidth/2 + 1
					hi[d] = xIdx[d] + stencilWidth/2
				case x[d] <= xCell[d]:
					lo[d] = xIdx[d] - stencilWidth/2
					hi[d] = xIdx[d] + stencilWidth/2 - 1
				default:
					lo[d] = xIdx[d] - stencilWidth/2 + 1
					hi[d] = xIdx[d] + stencilWidth/2
				}
			}
			box := geom.Box{Lo: lo, Hi: hi}
			stencilBoxs[k][axis] = box
			if !dofData.GhostSideBox(axis).ContainsBox(box) {
				return nil, fmt.Errorf("SCInterpOp: ghost width %d of patch %d cannot hold the "+
					"width-%d stencil box %v for marker %d", dofData.Ghost, patchNum[k], stencilWidth, box, k)
			}
			localIdx := dim*k + axis
			box.Iterate(func(i geom.IntVect) {
				ctr.count(localIdx, dofData.At(axis, i))
			})
			ctr.clamp(localIdx)
		}
	}

	m = linalg.NewAIJMat(comm, "SCInterpOp", mLocal, nLocal, ctr.dnz, ctr.onz)

	// Fill pass: per marker and axis, evaluate the 1-D kernels at the
	// marker's offset from the stencil box reference location and write
	// the tensor-product weights.
	var (
		w     = make([][]float64, dim)
		nVals = 1
	)
	for d := 0; d < dim; d++ {
		w[d] = make([]float64, stencilWidth)
		nVals *= stencilWidth
	}
	vals := make([]float64, nVals)
	cols := make([]int, nVals)
	for k := 0; k < nPoints; k++ {
		x := X[dim*k : dim*(k+1)]
		dofData := level.Patches[patchNum[k]].SideDof
		for axis := 0; axis < dim; axis++ {
			box := stencilBoxs[k][axis]
			for d := 0; d < dim; d++ {
				// Face-normal coordinates sit on faces, transverse ones at
				// cell centers.
				shift := 0.5
				if d == axis {
					shift = 0.0
				}
				xStencilLower := geomtry.XLo[d] + (float64(box.Lo[d]-domain.Lo[d])+shift)*dx[d]
				kernel((x[d]-xStencilLower)/dx[d], w[d])
			}
			var idx int
			box.Iterate(func(i geom.IntVect) {
				v := 1.0
				for d := 0; d < dim; d++ {
					v *= w[d][i[d]-box.Lo[d]]
				}
				vals[idx] = v
				cols[idx] = dofData.At(axis, i)
				idx++
			})
			m.SetValues(iLower+dim*k+axis, cols, vals)
		}
	}

	if err = m.Assemble(); err != nil {
		return nil, err
	}
	return
}

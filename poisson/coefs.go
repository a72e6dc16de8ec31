package poisson

import (
	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
)

// StencilCoefs holds, for every location of one patch box, the
// finite-difference coefficients in stencil order. perLoc is
// stencilSize*depth for cell data and stencilSize for side data.
type StencilCoefs struct {
	Box    geom.Box
	perLoc int
	data   []float64
}

func newStencilCoefs(box geom.Box, perLoc int) StencilCoefs {
	return StencilCoefs{
		Box:    box.Copy(),
		perLoc: perLoc,
		data:   make([]float64, box.Size()*perLoc),
	}
}

func (c StencilCoefs) At(i geom.IntVect, k int) float64 {
	return c.data[c.Box.Offset(i)*c.perLoc+k]
}

func (c StencilCoefs) set(i geom.IntVect, k int, v float64) {
	c.data[c.Box.Offset(i)*c.perLoc+k] = v
}

// ComputeCellMatrixCoefficients evaluates the boundary-aware
// coefficients of the cell-centered operator over one patch, one
// stencil block per depth component.
//
// Interior locations carry the standard finite-difference stencil:
// off-diagonal D/h^2 per face, center C - sum of off-diagonals. At a
// physical boundary face the out-of-domain neighbor is eliminated:
// for pure Dirichlet (b == 0) its coefficient is simply dropped (the
// neighbor location carries no DOF, so the matrix insert discards the
// column; the inhomogeneity belongs to the right-hand side, which is
// not this package's concern), while a Robin condition with b != 0
// folds the ghost value a*u_g + b*(u_g - u_c)/h = g into the center
// coefficient with factor (b - a*h/2)/(b + a*h/2).
func ComputeCellMatrixCoefficients(lv *hier.PatchLevel, p *hier.Patch,
	st Stencil, spec PoissonSpec, bcCoefs []RobinBcCoef) (coefs StencilCoefs) {
	var (
		dim       = lv.Dim()
		dx        = lv.Dx()
		domain    = lv.DomainBox()
		depth     = len(bcCoefs)
		stencilSz = st.Size()
	)
	coefs = newStencilCoefs(p.Box, stencilSz*depth)
	p.Box.Iterate(func(i geom.IntVect) {
		for d := 0; d < depth; d++ {
			base := d * stencilSz
			center := spec.CCoef
			for axis := 0; axis < dim; axis++ {
				off := spec.DCoef / (dx[axis] * dx[axis])
				for side := 0; side <= 1; side++ {
					k := 1 + 2*axis + side
					step := 2*side - 1
					nbr := i.Shifted(axis, step)
					coef := off
					if !domain.Contains(nbr) {
						a, b, _ := bcCoefs[d].Coefs(axis, side, i)
						if b != 0 {
							center += off * (b - a*dx[axis]/2) / (b + a*dx[axis]/2)
						}
						coef = 0
					}
					coefs.set(i, base+k, coef)
					center -= off
				}
			}
			coefs.set(i, base, center)
		}
	})
	return
}

// ComputeSideMatrixCoefficients evaluates the boundary-aware
// coefficients of the face-centered (staggered) operator over one
// patch, one StencilCoefs per face-normal axis. bcCoefs holds exactly
// one provider per axis, applied to the velocity component matching
// that axis.
func ComputeSideMatrixCoefficients(lv *hier.PatchLevel, p *hier.Patch,
	st Stencil, spec PoissonSpec, bcCoefs []RobinBcCoef) (coefs []StencilCoefs) {
	var (
		dim       = lv.Dim()
		dx        = lv.Dx()
		domain    = lv.DomainBox()
		stencilSz = st.Size()
	)
	coefs = make([]StencilCoefs, dim)
	for comp := 0; comp < dim; comp++ {
		sideBox := p.Box.SideBox(comp)
		sideDomain := domain.SideBox(comp)
		coefs[comp] = newStencilCoefs(sideBox, stencilSz)
		c := coefs[comp]
		sideBox.Iterate(func(i geom.IntVect) {
			center := spec.CCoef
			for axis := 0; axis < dim; axis++ {
				off := spec.DCoef / (dx[axis] * dx[axis])
				for side := 0; side <= 1; side++ {
					k := 1 + 2*axis + side
					step := 2*side - 1
					nbr := i.Shifted(axis, step)
					coef := off
					if !sideDomain.Contains(nbr) {
						a, b, _ := bcCoefs[comp].Coefs(axis, side, i)
						if b != 0 {
							center += off * (b - a*dx[axis]/2) / (b + a*dx[axis]/2)
						}
						coef = 0
					}
					c.set(i, k, coef)
					center -= off
				}
			}
			c.set(i, 0, center)
		})
	}
	return
}

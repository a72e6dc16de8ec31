package poisson

import (
	"github.com/pj-ming/IBAMR/geom"
)

// PoissonSpec fixes the coefficients of the operator C*u + D*div(grad u).
type PoissonSpec struct {
	CCoef float64
	DCoef float64
}

// RobinBcCoef supplies the Robin boundary-condition coefficients
// a*u + b*du/dn = g for a boundary face with the given outward normal
// axis and side, at grid location i.
type RobinBcCoef interface {
	Coefs(axis, side int, i geom.IntVect) (a, b, g float64)
}

// DirichletBc is the constant Dirichlet condition u = G.
type DirichletBc struct {
	G float64
}

func (bc DirichletBc) Coefs(axis, side int, i geom.IntVect) (a, b, g float64) {
	return 1, 0, bc.G
}

// NeumannBc is the constant Neumann condition du/dn = G.
type NeumannBc struct {
	G float64
}

func (bc NeumannBc) Coefs(axis, side int, i geom.IntVect) (a, b, g float64) {
	return 0, 1, bc.G
}

// Stencil is the fixed list of index offsets walked by both the
// nonzero-count pass and the value-fill pass of an operator assembly.
// The entry order fixes the column order of every matrix row.
type Stencil struct {
	Offsets []geom.IntVect
}

// NewLaplacianStencil builds the standard 2*dim+1 point stencil:
// center first, then for each axis the lower then the upper neighbor.
func NewLaplacianStencil(dim int) (st Stencil) {
	st.Offsets = make([]geom.IntVect, 1, 2*dim+1)
	st.Offsets[0] = geom.Uniform(dim, 0)
	for axis := 0; axis < dim; axis++ {
		for _, step := range []int{-1, +1} {
			st.Offsets = append(st.Offsets, geom.Uniform(dim, 0).Shifted(axis, step))
		}
	}
	return
}

func (st Stencil) Size() int { return len(st.Offsets) }

package poisson

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
)

func unitLevel(n int) (lv *hier.PatchLevel) {
	var (
		domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, n-1))
		g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
	)
	lv = hier.NewPatchLevel(g, geom.Uniform(2, 1), 0)
	lv.AddPatch(domain)
	return
}

func TestLaplacianStencil(t *testing.T) {
	st := NewLaplacianStencil(2)
	assert.Equal(t, 5, st.Size())
	assert.Equal(t, geom.NewIntVect(0, 0), st.Offsets[0])
	assert.Equal(t, geom.NewIntVect(-1, 0), st.Offsets[1])
	assert.Equal(t, geom.NewIntVect(1, 0), st.Offsets[2])
	assert.Equal(t, geom.NewIntVect(0, -1), st.Offsets[3])
	assert.Equal(t, geom.NewIntVect(0, 1), st.Offsets[4])

	assert.Equal(t, 7, NewLaplacianStencil(3).Size())
}

func TestCellMatrixCoefficients(t *testing.T) {
	var (
		lv   = unitLevel(4)
		p    = lv.Patches[0]
		st   = NewLaplacianStencil(2)
		spec = PoissonSpec{CCoef: 1, DCoef: 1}
	)
	// Dirichlet: interior stencil everywhere, boundary neighbors zeroed
	{
		coefs := ComputeCellMatrixCoefficients(lv, p, st, spec, []RobinBcCoef{DirichletBc{}})
		i := geom.NewIntVect(1, 1)
		assert.InDelta(t, 1-4*16, coefs.At(i, 0), 1.e-12)
		for k := 1; k < st.Size(); k++ {
			assert.InDelta(t, 16, coefs.At(i, k), 1.e-12)
		}
		// Corner: the lower neighbors along both axes are eliminated with
		// the center untouched
		i = geom.NewIntVect(0, 0)
		assert.InDelta(t, 1-4*16, coefs.At(i, 0), 1.e-12)
		assert.InDelta(t, 0, coefs.At(i, 1), 1.e-12)
		assert.InDelta(t, 16, coefs.At(i, 2), 1.e-12)
		assert.InDelta(t, 0, coefs.At(i, 3), 1.e-12)
		assert.InDelta(t, 16, coefs.At(i, 4), 1.e-12)
	}
	// Neumann folds the eliminated neighbor into the center
	{
		coefs := ComputeCellMatrixCoefficients(lv, p, st, spec, []RobinBcCoef{NeumannBc{}})
		i := geom.NewIntVect(0, 0)
		assert.InDelta(t, 1-4*16+2*16, coefs.At(i, 0), 1.e-12)
	}
	// Depth 2 lays out one stencil block per component
	{
		bcs := []RobinBcCoef{DirichletBc{}, NeumannBc{}}
		coefs := ComputeCellMatrixCoefficients(lv, p, st, spec, bcs)
		i := geom.NewIntVect(0, 0)
		assert.InDelta(t, 1-4*16, coefs.At(i, 0), 1.e-12)
		assert.InDelta(t, 1-4*16+2*16, coefs.At(i, st.Size()), 1.e-12)
	}
}

func TestSideMatrixCoefficients(t *testing.T) {
	var (
		lv   = unitLevel(4)
		p    = lv.Patches[0]
		st   = NewLaplacianStencil(2)
		spec = PoissonSpec{DCoef: 1}
		bcs  = []RobinBcCoef{DirichletBc{}, DirichletBc{}}
	)
	coefs := ComputeSideMatrixCoefficients(lv, p, st, spec, bcs)
	assert.Equal(t, 2, len(coefs))
	// One coefficient box per face-normal axis, over the side box
	assert.Equal(t, p.Box.SideBox(0), coefs[0].Box)
	assert.Equal(t, p.Box.SideBox(1), coefs[1].Box)
	// Interior face
	{
		i := geom.NewIntVect(2, 1)
		assert.InDelta(t, -4*16, coefs[0].At(i, 0), 1.e-12)
		assert.InDelta(t, 16, coefs[0].At(i, 1), 1.e-12)
	}
	// Face on the lower wall: the out-of-domain neighbor goes away
	{
		i := geom.NewIntVect(0, 1)
		assert.InDelta(t, -4*16, coefs[0].At(i, 0), 1.e-12)
		assert.InDelta(t, 0, coefs[0].At(i, 1), 1.e-12)
		assert.InDelta(t, 16, coefs[0].At(i, 2), 1.e-12)
	}
	// The face domain extends one past the cell domain: faces on the
	// upper wall keep no upper neighbor either
	{
		i := geom.NewIntVect(4, 1)
		assert.InDelta(t, 0, coefs[0].At(i, 2), 1.e-12)
		assert.InDelta(t, 16, coefs[0].At(i, 1), 1.e-12)
	}
}

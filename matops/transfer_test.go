package matops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
)

// transferLevels builds a 2:1 fine/coarse cell-centered level pair
// over the unit square: nCoarse cells per axis on the coarse level,
// the fine level split into two patches.
func transferLevels(nCoarse, depth, ghost int) (fine, coarse *hier.PatchLevel, nFine, nCoarseDofs int) {
	var (
		domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, nCoarse-1))
		g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
	)
	coarse = hier.NewPatchLevel(g, geom.Uniform(2, 1), 0)
	coarse.AddPatch(domain)
	nCoarseDofs = hier.NumberCellDofs(coarse, depth, ghost)

	fine = hier.NewPatchLevel(g, geom.Uniform(2, 2), 1)
	fineDomain := fine.DomainBox()
	left := fineDomain.Copy()
	left.Hi[0] = nCoarse - 1
	right := fineDomain.Copy()
	right.Lo[0] = nCoarse
	fine.AddPatch(left)
	fine.AddPatch(right)
	nFine = hier.NumberCellDofs(fine, depth, ghost)
	return
}

func TestCCProlongationOp(t *testing.T) {
	fine, coarse, nFine, nCoarse := transferLevels(4, 1, 1)
	ao := BuildCellAppOrdering(coarse, 0)
	assert.Equal(t, 16, ao.Len())
	p, err := ProlongationOp(linalg.SelfComm(), []int{nFine}, []int{nCoarse}, fine, coarse, ao, 0)
	assert.NoError(t, err)
	M, N := p.Dims()
	assert.Equal(t, 64, M)
	assert.Equal(t, 16, N)

	// Constant injection: every fine row holds exactly one 1.0 at the
	// coarse cell covering it
	{
		assert.Equal(t, 64, p.LocalNNZ())
		p.DoNonZero(func(row, col int, v float64) {
			assert.Equal(t, 1.0, v)
		})
		fineDof := fine.Patches[1].CellDof
		coarseDof := coarse.Patches[0].CellDof
		r := fineDof.At(geom.NewIntVect(5, 3), 0)
		want := coarseDof.At(geom.NewIntVect(2, 1), 0)
		assert.InDelta(t, 1, p.At(r, want), 1.e-14)
		assert.Equal(t, 1, p.RowNNZ(r))
	}
	// Restriction scaling: each coarse cell receives ratio^dim children
	{
		scale, err := RestrictionScalingOp(p)
		assert.NoError(t, err)
		assert.Equal(t, 16, scale.Len())
		for k := 0; k < 16; k++ {
			assert.InDelta(t, 0.25, scale.At(k), 1.e-14)
		}
	}
}

func TestSCProlongationOp(t *testing.T) {
	var (
		domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, 3))
		g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
	)
	coarse := hier.NewPatchLevel(g, geom.Uniform(2, 1), 0)
	coarse.AddPatch(domain)
	nCoarse := hier.NumberSideDofs(coarse, 1)

	fine := hier.NewPatchLevel(g, geom.Uniform(2, 2), 1)
	fine.AddPatch(fine.DomainBox())
	nFine := hier.NumberSideDofs(fine, 1)

	ao := BuildSideAppOrdering(coarse, 0)
	assert.Equal(t, nCoarse, ao.Len())
	p, err := ProlongationOp(linalg.SelfComm(), []int{nFine}, []int{nCoarse}, fine, coarse, ao, 0)
	assert.NoError(t, err)
	M, N := p.Dims()
	assert.Equal(t, nFine, M)
	assert.Equal(t, nCoarse, N)

	fineDof := fine.Patches[0].SideDof
	coarseDof := coarse.Patches[0].SideDof
	// A fine face on a coarse face location takes the coarse value
	{
		r := fineDof.At(0, geom.NewIntVect(4, 3))
		cL := coarseDof.At(0, geom.NewIntVect(2, 1))
		assert.InDelta(t, 1, p.At(r, cL), 1.e-14)
	}
	// A fine face between two coarse faces averages them
	{
		r := fineDof.At(0, geom.NewIntVect(5, 3))
		cL := coarseDof.At(0, geom.NewIntVect(2, 1))
		cU := coarseDof.At(0, geom.NewIntVect(3, 1))
		assert.InDelta(t, 0.5, p.At(r, cL), 1.e-14)
		assert.InDelta(t, 0.5, p.At(r, cU), 1.e-14)
	}
	// Every row sums to one: constants prolong to constants
	{
		rowSums := make([]float64, nFine)
		p.DoNonZero(func(row, col int, v float64) {
			rowSums[row] += v
		})
		for _, s := range rowSums {
			assert.InDelta(t, 1, s, 1.e-14)
		}
	}
}

func TestRestrictionScalingOpZeroColumns(t *testing.T) {
	// Columns with no prolongation contribution scale to zero
	c := linalg.SelfComm()
	m := linalg.NewAIJMat(c, "test", 2, 3, []int{2, 1}, []int{0, 0})
	m.SetValues(0, []int{0, 2}, []float64{1, -2})
	m.SetValues(1, []int{0}, []float64{1})
	assert.NoError(t, m.Assemble())
	scale, err := RestrictionScalingOp(m)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, scale.At(0), 1.e-14)
	assert.InDelta(t, 0, scale.At(1), 1.e-14)
	assert.InDelta(t, 0.5, scale.At(2), 1.e-14)

	// An unassembled operator is rejected
	raw := linalg.NewAIJMat(c, "test", 1, 1, []int{1}, []int{0})
	_, err = RestrictionScalingOp(raw)
	assert.Error(t, err)
}

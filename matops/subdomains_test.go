package matops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
)

func TestCellASMSubdomains(t *testing.T) {
	// 8x8 single patch, 4x4 tiles, overlap 1
	{
		lv, nDofs := unitCellLevel(8, 1, 1)
		overlap, nonoverlap, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 1), lv)
		assert.NoError(t, err)
		assert.Equal(t, 4, len(overlap))
		assert.Equal(t, 4, len(nonoverlap))

		// The non-overlapping sets partition the patch DOFs disjointly
		seen := make(map[int]int)
		total := 0
		for _, is := range nonoverlap {
			total += is.Len()
			for _, dof := range is.Indices {
				seen[dof]++
			}
		}
		assert.Equal(t, nDofs, total)
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}

		// Each overlapping set strictly contains its tile and holds only
		// valid DOFs
		for k := range overlap {
			assert.True(t, overlap[k].Len() > nonoverlap[k].Len())
			for _, dof := range nonoverlap[k].Indices {
				assert.True(t, overlap[k].Contains(dof))
			}
			for _, dof := range overlap[k].Indices {
				assert.True(t, dof >= 0)
			}
		}
		// Corner tile: 4x4 interior plus the in-domain halo faces
		assert.Equal(t, 25, overlap[0].Len())
	}
	// Zero overlap: both roles share one IndexSet
	{
		lv, _ := unitCellLevel(8, 1, 1)
		overlap, nonoverlap, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 0), lv)
		assert.NoError(t, err)
		for k := range overlap {
			assert.True(t, overlap[k] == nonoverlap[k])
		}
	}
	// Overlap beyond the painted ghost width is a configuration error
	{
		lv, _ := unitCellLevel(8, 1, 1)
		_, _, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 2), lv)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	}
	// Depth components all land in the sets
	{
		lv, nDofs := unitCellLevel(4, 2, 1)
		_, nonoverlap, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 0), lv)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(nonoverlap))
		assert.Equal(t, nDofs, nonoverlap[0].Len())
	}
}

func TestSideASMSubdomains(t *testing.T) {
	// 8x8 single patch, 4x4 tiles, no overlap: the non-overlapping sets
	// must cover every face DOF of the patch exactly once. Faces on a
	// tile's upper own-axis side belong to the neighboring tile unless
	// they lie on the physical boundary.
	{
		lv, nDofs := unitSideLevel(8, 1)
		_, nonoverlap, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 0), lv)
		assert.NoError(t, err)
		assert.Equal(t, 4, len(nonoverlap))

		seen := make(map[int]int)
		total := 0
		for _, is := range nonoverlap {
			total += is.Len()
			for _, dof := range is.Indices {
				seen[dof]++
			}
		}
		assert.Equal(t, nDofs, total)
		assert.Equal(t, nDofs, len(seen))
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
	}
	// With overlap the halo faces join the overlapping sets,
	// deduplicated
	{
		lv, _ := unitSideLevel(8, 1)
		overlap, nonoverlap, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 1), lv)
		assert.NoError(t, err)
		for k := range overlap {
			assert.True(t, overlap[k].Len() > nonoverlap[k].Len())
			last := -1
			for _, dof := range overlap[k].Indices {
				assert.True(t, dof > last)
				last = dof
			}
		}
	}
	// An upper coarse-fine interface keeps its faces in the abutting
	// tile, like a physical boundary
	{
		var (
			domain = geom.NewBox(geom.Uniform(2, 0), geom.Uniform(2, 7))
			g      = hier.NewGridGeometry([]float64{0, 0}, []float64{1, 1}, domain)
		)
		lv := hier.NewPatchLevel(g, geom.Uniform(2, 2), 1)
		// One refined patch in the lower-left quadrant of the fine index
		// space; its upper faces lie on the coarse-fine interface.
		patchBox := geom.NewBox(geom.NewIntVect(0, 0), geom.NewIntVect(7, 7))
		lv.AddPatch(patchBox)
		lv.CoarseFine = hier.NewCoarseFineBoundary()
		lv.CoarseFine.Add(0, hier.BoundaryBox{
			Box:           geom.NewBox(geom.NewIntVect(8, 0), geom.NewIntVect(8, 7)),
			LocationIndex: 1, // upper side, axis 0
		})
		lv.CoarseFine.Add(0, hier.BoundaryBox{
			Box:           geom.NewBox(geom.NewIntVect(0, 8), geom.NewIntVect(7, 8)),
			LocationIndex: 3, // upper side, axis 1
		})
		nDofs := hier.NumberSideDofs(lv, 1)

		_, nonoverlap, err := ASMSubdomains(geom.Uniform(2, 4), geom.Uniform(2, 0), lv)
		assert.NoError(t, err)
		total := 0
		for _, is := range nonoverlap {
			total += is.Len()
		}
		assert.Equal(t, nDofs, total)
	}
}

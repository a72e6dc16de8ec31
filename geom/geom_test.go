package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntVect(t *testing.T) {
	// Arithmetic
	{
		i := NewIntVect(1, 2)
		j := NewIntVect(3, -1)
		assert.Equal(t, NewIntVect(4, 1), i.Plus(j))
		assert.Equal(t, NewIntVect(-2, 3), i.Minus(j))
		assert.Equal(t, NewIntVect(1, 5), i.Shifted(1, 3))
		// Shifted copies, the receiver is untouched
		assert.Equal(t, NewIntVect(1, 2), i)
	}
	// Coarsen floors toward minus infinity
	{
		r := Uniform(2, 2)
		assert.Equal(t, NewIntVect(-1, 1), NewIntVect(-1, 3).Coarsen(r))
		assert.Equal(t, NewIntVect(-2, 0), NewIntVect(-3, 1).Coarsen(r))
		assert.Equal(t, NewIntVect(-2, 6), NewIntVect(-1, 3).Refine(r))
	}
	// Max / Min / Equals
	{
		i := NewIntVect(4, -2, 7)
		assert.Equal(t, 7, i.Max())
		assert.Equal(t, -2, i.Min())
		assert.True(t, i.Equals(NewIntVect(4, -2, 7)))
		assert.False(t, i.Equals(NewIntVect(4, -2)))
	}
}

func TestBox(t *testing.T) {
	// Size, extent, containment (inclusive corners)
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(3, 1))
		assert.Equal(t, 8, b.Size())
		assert.Equal(t, 4, b.Extent(0))
		assert.True(t, b.Contains(NewIntVect(3, 1)))
		assert.False(t, b.Contains(NewIntVect(4, 0)))
		assert.True(t, NewBox(NewIntVect(1, 0), NewIntVect(0, 0)).Empty())
	}
	// Iterate visits first axis fastest; Offset inverts the order
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(1, 1))
		var visited []IntVect
		b.Iterate(func(i IntVect) {
			visited = append(visited, i.Copy())
			assert.Equal(t, len(visited)-1, b.Offset(i))
		})
		assert.Equal(t, []IntVect{
			NewIntVect(0, 0), NewIntVect(1, 0), NewIntVect(0, 1), NewIntVect(1, 1),
		}, visited)
	}
	// SideBox extends one past the cell box along the normal axis
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(3, 3))
		s := b.SideBox(1)
		assert.Equal(t, NewIntVect(3, 4), s.Hi)
		assert.Equal(t, NewIntVect(0, 0), s.Lo)
	}
	// Coarsen / Refine round the corners correctly
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(1, 1))
		r := Uniform(2, 2)
		assert.Equal(t, NewBox(NewIntVect(0, 0), NewIntVect(3, 3)), b.Refine(r))
		assert.Equal(t, b, b.Refine(r).Coarsen(r))
	}
	// Grow
	{
		b := NewBox(NewIntVect(2, 2), NewIntVect(5, 5))
		g := b.GrowUniform(1)
		assert.Equal(t, NewBox(NewIntVect(1, 1), NewIntVect(6, 6)), g)
		assert.True(t, g.ContainsBox(b))
	}
}

func TestMapIndexToInteger(t *testing.T) {
	var (
		lower    = NewIntVect(0, 0)
		numCells = NewIntVect(4, 4)
	)
	// Natural order: first axis fastest, depth blocks of prod(numCells)
	assert.Equal(t, 0, MapIndexToInteger(NewIntVect(0, 0), lower, numCells, 0, 0))
	assert.Equal(t, 9, MapIndexToInteger(NewIntVect(1, 2), lower, numCells, 0, 0))
	assert.Equal(t, 16+9, MapIndexToInteger(NewIntVect(1, 2), lower, numCells, 1, 0))
	assert.Equal(t, 10+16+9, MapIndexToInteger(NewIntVect(1, 2), lower, numCells, 1, 10))
	// Nonzero domain lower corner
	assert.Equal(t, 0, MapIndexToInteger(NewIntVect(-2, -2), NewIntVect(-2, -2), numCells, 0, 0))
}

func TestPartitionBox(t *testing.T) {
	// Exact tiling: 8x8 into 4x4 tiles
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(7, 7))
		overlapBoxes, nonoverlapBoxes := PartitionBox(b, Uniform(2, 4), Uniform(2, 1))
		assert.Equal(t, 4, len(nonoverlapBoxes))
		assert.Equal(t, 4, len(overlapBoxes))
		// Tiles partition the box disjointly
		total := 0
		for k, tile := range nonoverlapBoxes {
			total += tile.Size()
			assert.True(t, b.ContainsBox(tile))
			assert.Equal(t, tile.GrowUniform(1), overlapBoxes[k])
			for j := k + 1; j < len(nonoverlapBoxes); j++ {
				assert.False(t, tile.Intersects(nonoverlapBoxes[j]))
			}
		}
		assert.Equal(t, b.Size(), total)
	}
	// Ragged tiling clips the last tile per axis, overlap is not clipped
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(5, 5))
		overlapBoxes, nonoverlapBoxes := PartitionBox(b, Uniform(2, 4), Uniform(2, 1))
		assert.Equal(t, 4, len(nonoverlapBoxes))
		assert.Equal(t, NewBox(NewIntVect(4, 4), NewIntVect(5, 5)), nonoverlapBoxes[3])
		assert.Equal(t, NewBox(NewIntVect(3, 3), NewIntVect(6, 6)), overlapBoxes[3])
	}
	// Tile larger than the box
	{
		b := NewBox(NewIntVect(0, 0), NewIntVect(2, 2))
		_, nonoverlapBoxes := PartitionBox(b, Uniform(2, 8), Uniform(2, 0))
		assert.Equal(t, 1, len(nonoverlapBoxes))
		assert.Equal(t, b, nonoverlapBoxes[0])
	}
}

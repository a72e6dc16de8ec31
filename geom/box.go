package geom

import "fmt"

// Box is an axis-aligned box of integer grid indices with INCLUSIVE
// lower and upper corners. An empty box has Hi < Lo along at least one
// axis.
type Box struct {
	Lo, Hi IntVect
}

func NewBox(lo, hi IntVect) (b Box) {
	if len(lo) != len(hi) {
		panic(fmt.Errorf("box corners have mismatched dimensions: %d vs %d", len(lo), len(hi)))
	}
	return Box{Lo: lo.Copy(), Hi: hi.Copy()}
}

func (b Box) Dim() int { return len(b.Lo) }

func (b Box) Copy() Box {
	return Box{Lo: b.Lo.Copy(), Hi: b.Hi.Copy()}
}

func (b Box) Empty() bool {
	for d := range b.Lo {
		if b.Hi[d] < b.Lo[d] {
			return true
		}
	}
	return false
}

// Size is the number of index locations in the box.
func (b Box) Size() (sz int) {
	if b.Empty() {
		return 0
	}
	sz = 1
	for d := range b.Lo {
		sz *= b.Hi[d] - b.Lo[d] + 1
	}
	return
}

func (b Box) Extent(axis int) int { return b.Hi[axis] - b.Lo[axis] + 1 }

func (b Box) Contains(i IntVect) bool {
	for d := range b.Lo {
		if i[d] < b.Lo[d] || i[d] > b.Hi[d] {
			return false
		}
	}
	return true
}

func (b Box) ContainsBox(o Box) bool {
	return b.Contains(o.Lo) && b.Contains(o.Hi)
}

func (b Box) Intersects(o Box) bool {
	for d := range b.Lo {
		if b.Hi[d] < o.Lo[d] || o.Hi[d] < b.Lo[d] {
			return false
		}
	}
	return true
}

// Grow expands the box by width in each direction along every axis.
func (b Box) Grow(width IntVect) (r Box) {
	r = b.Copy()
	for d := range r.Lo {
		r.Lo[d] -= width[d]
		r.Hi[d] += width[d]
	}
	return
}

func (b Box) GrowUniform(width int) Box {
	return b.Grow(Uniform(b.Dim(), width))
}

// SideBox is the index box of faces normal to axis for the cell box b.
// Faces are identified with the cell on their upper side, so the side
// box extends one past the cell box along the face-normal axis.
func (b Box) SideBox(axis int) (r Box) {
	r = b.Copy()
	r.Hi[axis]++
	return
}

func (b Box) Coarsen(ratio IntVect) Box {
	return Box{Lo: b.Lo.Coarsen(ratio), Hi: b.Hi.Coarsen(ratio)}
}

func (b Box) Refine(ratio IntVect) (r Box) {
	r = Box{Lo: b.Lo.Refine(ratio), Hi: b.Hi.Refine(ratio)}
	for d := range r.Hi {
		r.Hi[d] += ratio[d] - 1
	}
	return
}

// Iterate visits every location in the box with the first axis varying
// fastest. The callback must not retain the index, it is reused
// between calls.
func (b Box) Iterate(f func(i IntVect)) {
	if b.Empty() {
		return
	}
	var (
		dim = b.Dim()
		i   = b.Lo.Copy()
	)
	for {
		f(i)
		var d int
		for d = 0; d < dim; d++ {
			i[d]++
			if i[d] <= b.Hi[d] {
				break
			}
			i[d] = b.Lo[d]
		}
		if d == dim {
			return
		}
	}
}

// Offset is the linear offset of i within the box, first axis fastest.
// It is the inverse of the Iterate visit order.
func (b Box) Offset(i IntVect) (off int) {
	var stride = 1
	for d := 0; d < b.Dim(); d++ {
		off += (i[d] - b.Lo[d]) * stride
		stride *= b.Extent(d)
	}
	return
}

func (b Box) String() string {
	return fmt.Sprintf("[%v..%v]", []int(b.Lo), []int(b.Hi))
}

// MapIndexToInteger linearizes a grid index into the natural ordering
// of a domain with the given lower corner and cell counts. Component d
// of a depth-D field occupies a contiguous block of size
// prod(numCells), and offset shifts the whole numbering.
func MapIndexToInteger(i, domainLower, numCells IntVect, depth, offset int) (idx int) {
	var (
		stride = 1
		total  = 1
	)
	for d := range numCells {
		total *= numCells[d]
	}
	idx = offset + depth*total
	for d := range i {
		idx += (i[d] - domainLower[d]) * stride
		stride *= numCells[d]
	}
	return
}

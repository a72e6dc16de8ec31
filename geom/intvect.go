package geom

import "fmt"

// IntVect is an integer coordinate vector with one entry per spatial
// dimension. Grid cell indices, face indices, refinement ratios and
// ghost widths are all IntVects.
type IntVect []int

func NewIntVect(vals ...int) (iv IntVect) {
	iv = make(IntVect, len(vals))
	copy(iv, vals)
	return
}

// Uniform returns an IntVect with val in every entry.
func Uniform(dim, val int) (iv IntVect) {
	iv = make(IntVect, dim)
	for d := range iv {
		iv[d] = val
	}
	return
}

func (iv IntVect) Dim() int { return len(iv) }

func (iv IntVect) Copy() (r IntVect) {
	r = make(IntVect, len(iv))
	copy(r, iv)
	return
}

func (iv IntVect) Plus(o IntVect) (r IntVect) {
	r = iv.Copy()
	for d := range r {
		r[d] += o[d]
	}
	return
}

func (iv IntVect) Minus(o IntVect) (r IntVect) {
	r = iv.Copy()
	for d := range r {
		r[d] -= o[d]
	}
	return
}

// Shifted returns iv with offset added along a single axis.
func (iv IntVect) Shifted(axis, offset int) (r IntVect) {
	r = iv.Copy()
	r[axis] += offset
	return
}

func (iv IntVect) Max() (max int) {
	max = iv[0]
	for _, v := range iv {
		if v > max {
			max = v
		}
	}
	return
}

func (iv IntVect) Min() (min int) {
	min = iv[0]
	for _, v := range iv {
		if v < min {
			min = v
		}
	}
	return
}

func (iv IntVect) Equals(o IntVect) bool {
	if len(iv) != len(o) {
		return false
	}
	for d := range iv {
		if iv[d] != o[d] {
			return false
		}
	}
	return true
}

// Coarsen maps a fine index to its owning coarse index under the given
// refinement ratio. Division floors toward minus infinity so that
// negative indices coarsen correctly.
func (iv IntVect) Coarsen(ratio IntVect) (r IntVect) {
	r = make(IntVect, len(iv))
	for d := range iv {
		r[d] = floorDiv(iv[d], ratio[d])
	}
	return
}

// Refine maps a coarse index to the lower corner of its fine-index
// image under the given refinement ratio.
func (iv IntVect) Refine(ratio IntVect) (r IntVect) {
	r = make(IntVect, len(iv))
	for d := range iv {
		r[d] = iv[d] * ratio[d]
	}
	return
}

func (iv IntVect) String() string {
	return fmt.Sprintf("%v", []int(iv))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

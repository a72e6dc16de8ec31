package matops

import "math"

// DeltaKernel evaluates the 1-D weights of a regularized delta
// function. rLower is the distance, in grid units, from the lowest
// location of the stencil to the marker; w receives one weight per
// stencil location and must have length equal to the stencil width.
// A kernel that sums to one yields interpolation rows that partition
// unity.
type DeltaKernel func(rLower float64, w []float64)

// PiecewiseLinearDelta is the 2-point hat function kernel.
func PiecewiseLinearDelta(rLower float64, w []float64) {
	w[0] = 1 - rLower
	w[1] = rLower
}

// IB4Delta is the classical 4-point immersed-boundary kernel of
// Peskin. rLower lies in [1, 2) for a marker inside the stencil.
func IB4Delta(rLower float64, w []float64) {
	for k := range w {
		w[k] = ib4(rLower - float64(k))
	}
}

func ib4(x float64) float64 {
	r := math.Abs(x)
	switch {
	case r < 1:
		return 0.125 * (3 - 2*r + math.Sqrt(1+4*r-4*r*r))
	case r < 2:
		return 0.125 * (5 - 2*r - math.Sqrt(-7+12*r-4*r*r))
	default:
		return 0
	}
}

// CosineDelta is the 4-point cosine approximation to the delta
// function.
func CosineDelta(rLower float64, w []float64) {
	for k := range w {
		r := math.Abs(rLower - float64(k))
		if r < 2 {
			w[k] = 0.25 * (1 + math.Cos(math.Pi*r/2))
		} else {
			w[k] = 0
		}
	}
}

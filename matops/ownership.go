package matops

import "fmt"

// OwnershipRange computes the half-open global DOF interval
// [lower, upper) owned by rank as the prefix sum of the per-process
// DOF counts, plus the full DOF total. Counts must be nonnegative.
func OwnershipRange(rank int, numDofsPerProc []int) (lower, upper, total int) {
	for r, n := range numDofsPerProc {
		if n < 0 {
			panic(fmt.Errorf("negative DOF count %d for process %d", n, r))
		}
		if r < rank {
			lower += n
		}
		total += n
	}
	upper = lower + numDofsPerProc[rank]
	return
}

// OwnershipRanges computes every rank's [lower, upper) interval at
// once, in rank order.
func OwnershipRanges(numDofsPerProc []int) (ranges [][2]int, total int) {
	o := NewOwnership(numDofsPerProc)
	return o.ranges, o.total
}

// Ownership answers "which process owns global DOF i" queries over the
// contiguous ranges implied by per-process DOF counts.
type Ownership struct {
	ranges [][2]int
	total  int
}

func NewOwnership(numDofsPerProc []int) (o *Ownership) {
	o = &Ownership{
		ranges: make([][2]int, len(numDofsPerProc)),
	}
	for r, n := range numDofsPerProc {
		if n < 0 {
			panic(fmt.Errorf("negative DOF count %d for process %d", n, r))
		}
		o.ranges[r][0] = o.total
		o.total += n
		o.ranges[r][1] = o.total
	}
	return
}

func (o *Ownership) Total() int { return o.total }

func (o *Ownership) Range(rank int) (lower, upper int) {
	return o.ranges[rank][0], o.ranges[rank][1]
}

func (o *Ownership) Owns(rank, idx int) bool {
	return idx >= o.ranges[rank][0] && idx < o.ranges[rank][1]
}

// OwnerOf locates the owning process by guess-and-walk over the
// ranges, starting from the proportional position. Returns -1 for an
// index outside [0, total).
func (o *Ownership) OwnerOf(idx int) (rank int) {
	if idx < 0 || idx >= o.total || o.total == 0 {
		return -1
	}
	np := len(o.ranges)
	rank = np * idx / o.total
	for {
		if rank < 0 || rank >= np {
			return -1
		}
		lo, up := o.ranges[rank][0], o.ranges[rank][1]
		switch {
		case idx < lo:
			rank--
		case idx >= up:
			rank++
		default:
			return
		}
	}
}

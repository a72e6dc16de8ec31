package linalg

import (
	"fmt"
	"sync"
)

// World is the communicator shared by a set of SPMD ranks running as
// goroutines in one process. Every collective below must be entered by
// all ranks of the world; a rank that skips a collective deadlocks the
// others, so callers short-circuit empty local work inside the call,
// never around it.
type World struct {
	np      int
	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	gen     int
	ints    []int
	sums    []float64
}

func NewWorld(np int) (w *World) {
	if np < 1 {
		panic(fmt.Errorf("world size must be positive, got %d", np))
	}
	w = &World{
		np:   np,
		ints: make([]int, np),
	}
	w.cond = sync.NewCond(&w.mu)
	return
}

func (w *World) Size() int { return w.np }

func (w *World) Comm(rank int) *Comm {
	if rank < 0 || rank >= w.np {
		panic(fmt.Errorf("rank %d out of range for world of size %d", rank, w.np))
	}
	return &Comm{world: w, rank: rank}
}

// Comm is one rank's handle on the world.
type Comm struct {
	world *World
	rank  int
}

func (c *Comm) Rank() int { return c.rank }
func (c *Comm) Size() int { return c.world.np }

// SelfComm is the single-rank communicator used by serial callers.
func SelfComm() *Comm { return NewWorld(1).Comm(0) }

func (c *Comm) Barrier() {
	w := c.world
	w.mu.Lock()
	gen := w.gen
	w.arrived++
	if w.arrived == w.np {
		w.arrived = 0
		w.gen++
		w.cond.Broadcast()
	} else {
		for gen == w.gen {
			w.cond.Wait()
		}
	}
	w.mu.Unlock()
}

// AllGatherInt gathers one int from every rank, ordered by rank.
func (c *Comm) AllGatherInt(val int) (all []int) {
	w := c.world
	w.mu.Lock()
	w.ints[c.rank] = val
	w.mu.Unlock()
	c.Barrier()
	all = make([]int, w.np)
	w.mu.Lock()
	copy(all, w.ints)
	w.mu.Unlock()
	c.Barrier()
	return
}

// AllReduceSum element-wise sums a float64 slice across all ranks.
// Every rank must pass a slice of the same length.
func (c *Comm) AllReduceSum(vals []float64) (sum []float64) {
	w := c.world
	w.mu.Lock()
	if w.sums == nil {
		w.sums = make([]float64, len(vals))
	}
	if len(w.sums) != len(vals) {
		w.mu.Unlock()
		panic(fmt.Errorf("AllReduceSum length mismatch: %d vs %d", len(w.sums), len(vals)))
	}
	for k, v := range vals {
		w.sums[k] += v
	}
	w.mu.Unlock()
	c.Barrier()
	sum = make([]float64, len(vals))
	w.mu.Lock()
	copy(sum, w.sums)
	w.mu.Unlock()
	c.Barrier()
	if c.rank == 0 {
		w.mu.Lock()
		w.sums = nil
		w.mu.Unlock()
	}
	c.Barrier()
	return
}

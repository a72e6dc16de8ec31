package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vec is a distributed vector: each rank owns a contiguous block of
// entries. Like Mat, it is insert-then-assemble and read-only after.
type Vec struct {
	comm      *Comm
	name      string
	nLocal    int
	N         int
	lower     int
	upper     int
	v         *mat.VecDense
	assembled bool
}

// NewVec creates a distributed vector with nLocal owned entries on
// this rank. Collective.
func NewVec(comm *Comm, name string, nLocal int) (v *Vec) {
	v = &Vec{
		comm:   comm,
		name:   name,
		nLocal: nLocal,
	}
	counts := comm.AllGatherInt(nLocal)
	for r := 0; r < comm.Size(); r++ {
		if r < comm.Rank() {
			v.lower += counts[r]
		}
		v.N += counts[r]
	}
	v.upper = v.lower + nLocal
	if nLocal > 0 {
		v.v = mat.NewVecDense(nLocal, nil)
	}
	return
}

func (v *Vec) Len() int                     { return v.N }
func (v *Vec) LocalLen() int                { return v.nLocal }
func (v *Vec) OwnershipRange() (lo, up int) { return v.lower, v.upper }

func (v *Vec) SetValue(i int, val float64) {
	if v.assembled {
		panic(fmt.Errorf("%s: SetValue after Assemble", v.name))
	}
	if i < v.lower || i >= v.upper {
		panic(fmt.Errorf("%s: index %d outside ownership range [%d, %d)", v.name, i, v.lower, v.upper))
	}
	v.v.SetVec(i-v.lower, val)
}

func (v *Vec) SetValues(idxs []int, vals []float64) {
	if len(idxs) != len(vals) {
		panic(fmt.Errorf("%s: len(idxs) = %d, len(vals) = %d", v.name, len(idxs), len(vals)))
	}
	for k, i := range idxs {
		v.SetValue(i, vals[k])
	}
}

// Assemble finalizes the vector. Collective; empty ranks must call too.
func (v *Vec) Assemble() {
	v.comm.Barrier()
	v.assembled = true
	v.comm.Barrier()
}

func (v *Vec) Assembled() bool { return v.assembled }

// At reads an owned entry.
func (v *Vec) At(i int) float64 {
	if i < v.lower || i >= v.upper {
		panic(fmt.Errorf("%s: index %d outside ownership range [%d, %d)", v.name, i, v.lower, v.upper))
	}
	return v.v.AtVec(i - v.lower)
}

// LocalData exposes the owned entries as a raw slice. Writable until
// Assemble is called; used to load marker coordinates in bulk.
func (v *Vec) LocalData() []float64 {
	if v.nLocal == 0 {
		return nil
	}
	return v.v.RawVector().Data
}

package linalg

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
)

// Mat is a distributed sparse matrix in AIJ form: each rank owns a
// contiguous block of rows and stores them locally, with global column
// indices. Construction is write-once: preallocate with per-row
// diagonal-block and off-diagonal-block nonzero counts, insert rows,
// then Assemble collectively. After assembly the matrix is read-only.
type Mat struct {
	comm           *Comm
	name           string
	mLocal, nLocal int
	M, N           int
	rowLower       int
	rowUpper       int
	colLower       int
	colUpper       int
	dnz, onz       []int
	dok            *sparse.DOK
	csr            *sparse.CSR
	rowNNZ         []int
	assembled      bool
}

// NewAIJMat creates a distributed matrix with mLocal owned rows and
// nLocal owned columns on this rank. dnz[i] and onz[i] bound the
// nonzeros of local row i whose columns fall inside / outside the
// owned column range; exceeding the bound is reported at Assemble.
// Collective: global sizes are gathered from all ranks.
func NewAIJMat(comm *Comm, name string, mLocal, nLocal int, dnz, onz []int) (m *Mat) {
	if len(dnz) != mLocal || len(onz) != mLocal {
		panic(fmt.Errorf("%s: preallocation arrays must have one entry per local row: "+
			"mLocal = %d, len(dnz) = %d, len(onz) = %d", name, mLocal, len(dnz), len(onz)))
	}
	m = &Mat{
		comm:   comm,
		name:   name,
		mLocal: mLocal,
		nLocal: nLocal,
		dnz:    append([]int(nil), dnz...),
		onz:    append([]int(nil), onz...),
	}
	rows := comm.AllGatherInt(mLocal)
	cols := comm.AllGatherInt(nLocal)
	for r := 0; r < comm.Size(); r++ {
		if r < comm.Rank() {
			m.rowLower += rows[r]
			m.colLower += cols[r]
		}
		m.M += rows[r]
		m.N += cols[r]
	}
	m.rowUpper = m.rowLower + mLocal
	m.colUpper = m.colLower + nLocal
	if mLocal > 0 {
		m.dok = sparse.NewDOK(mLocal, m.N)
	}
	return
}

func (m *Mat) Comm() *Comm                  { return m.comm }
func (m *Mat) Dims() (M, N int)             { return m.M, m.N }
func (m *Mat) LocalDims() (ml, nl int)      { return m.mLocal, m.nLocal }
func (m *Mat) OwnershipRange() (lo, up int) { return m.rowLower, m.rowUpper }
func (m *Mat) ColOwnershipRange() (lo, up int) {
	return m.colLower, m.colUpper
}

// SetValues inserts one row of values at global row index row. Negative
// column indices are ignored, which drops entries for grid locations
// carrying no DOF. Insertion overwrites any previous value at the same
// position.
func (m *Mat) SetValues(row int, cols []int, vals []float64) {
	if m.assembled {
		panic(fmt.Errorf("%s: SetValues after Assemble", m.name))
	}
	if row < m.rowLower || row >= m.rowUpper {
		panic(fmt.Errorf("%s: row %d outside ownership range [%d, %d)", m.name, row, m.rowLower, m.rowUpper))
	}
	if len(cols) != len(vals) {
		panic(fmt.Errorf("%s: len(cols) = %d, len(vals) = %d", m.name, len(cols), len(vals)))
	}
	for k, col := range cols {
		if col < 0 {
			continue
		}
		m.dok.Set(row-m.rowLower, col, vals[k])
	}
}

// Assemble finalizes the matrix. Collective: every rank of the
// communicator must call it, including ranks with zero local rows.
func (m *Mat) Assemble() (err error) {
	m.comm.Barrier()
	if m.assembled {
		return fmt.Errorf("%s: matrix already assembled", m.name)
	}
	if m.mLocal > 0 {
		m.csr = m.dok.ToCSR()
		m.rowNNZ = make([]int, m.mLocal)
		m.csr.DoNonZero(func(i, j int, v float64) {
			m.rowNNZ[i]++
		})
		for i, nnz := range m.rowNNZ {
			if nnz > m.dnz[i]+m.onz[i] {
				err = fmt.Errorf("%s: row %d has %d nonzeros, preallocated %d+%d",
					m.name, i+m.rowLower, nnz, m.dnz[i], m.onz[i])
			}
		}
		m.dok = nil
	}
	m.assembled = true
	m.comm.Barrier()
	return
}

func (m *Mat) Assembled() bool { return m.assembled }

// At reads an assembled entry of an owned row.
func (m *Mat) At(row, col int) float64 {
	m.checkAssembled("At")
	if row < m.rowLower || row >= m.rowUpper {
		panic(fmt.Errorf("%s: row %d outside ownership range [%d, %d)", m.name, row, m.rowLower, m.rowUpper))
	}
	return m.csr.At(row-m.rowLower, col)
}

// RowNNZ is the stored-nonzero count of an owned row after assembly.
func (m *Mat) RowNNZ(row int) int {
	m.checkAssembled("RowNNZ")
	return m.rowNNZ[row-m.rowLower]
}

// DoNonZero visits the locally owned nonzeros with global indices.
func (m *Mat) DoNonZero(fn func(row, col int, v float64)) {
	m.checkAssembled("DoNonZero")
	if m.mLocal == 0 {
		return
	}
	m.csr.DoNonZero(func(i, j int, v float64) {
		fn(i+m.rowLower, j, v)
	})
}

// LocalNNZ is the total stored-nonzero count of the owned rows.
func (m *Mat) LocalNNZ() (nnz int) {
	m.checkAssembled("LocalNNZ")
	for _, n := range m.rowNNZ {
		nnz += n
	}
	return
}

// ColumnNorms1 computes the 1-norm of every global column. Collective.
func (m *Mat) ColumnNorms1() (norms []float64) {
	m.checkAssembled("ColumnNorms1")
	local := make([]float64, m.N)
	if m.mLocal > 0 {
		m.csr.DoNonZero(func(i, j int, v float64) {
			local[j] += math.Abs(v)
		})
	}
	return m.comm.AllReduceSum(local)
}

func (m *Mat) checkAssembled(op string) {
	if !m.assembled {
		panic(fmt.Errorf("%s: %s before Assemble", m.name, op))
	}
}

package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DenseSubmatrix extracts the square block of an assembled matrix
// indexed by an IndexSet into a dense gonum matrix, in index-set
// order. Subdomain smoothers factor these small blocks directly. All
// rows of the set must be locally owned; columns outside the set are
// ignored.
func (m *Mat) DenseSubmatrix(is *IndexSet) (d *mat.Dense, err error) {
	m.checkAssembled("DenseSubmatrix")
	var (
		n     = is.Len()
		local = make(map[int]int, n)
	)
	for k, idx := range is.Indices {
		if idx < m.rowLower || idx >= m.rowUpper {
			return nil, fmt.Errorf("%s: subdomain row %d outside ownership range [%d, %d)",
				m.name, idx, m.rowLower, m.rowUpper)
		}
		local[idx] = k
	}
	d = mat.NewDense(n, n, nil)
	for k, idx := range is.Indices {
		m.csr.DoRowNonZero(idx-m.rowLower, func(i, j int, v float64) {
			if c, ok := local[j]; ok {
				d.Set(k, c, v)
			}
		})
	}
	return
}

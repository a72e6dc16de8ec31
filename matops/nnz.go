package matops

// nnzCounter accumulates the per-row nonzero structure during the
// count pass of a two-pass assembly: one diagonal-block and one
// off-diagonal-block count per locally owned row. Both the count pass
// and the fill pass must classify DOFs identically, so the
// classification lives here and nowhere else.
type nnzCounter struct {
	dnz, onz []int
	lower    int // row DOF ownership range
	upper    int
	colLower int // column DOF ownership range
	colUpper int
	nDiag    int // clamp limits
	nOff     int
}

func newNNZCounter(nLocalRows, rowLower, rowUpper, colLower, colUpper, nColsTotal int) *nnzCounter {
	return &nnzCounter{
		dnz:      make([]int, nLocalRows),
		onz:      make([]int, nLocalRows),
		lower:    rowLower,
		upper:    rowUpper,
		colLower: colLower,
		colUpper: colUpper,
		nDiag:    colUpper - colLower,
		nOff:     nColsTotal - (colUpper - colLower),
	}
}

// ownsRow reports whether a row DOF belongs to this process; negative
// sentinels fail the test like any other unowned index.
func (c *nnzCounter) ownsRow(dof int) bool {
	return dof >= c.lower && dof < c.upper
}

// inDiagonal classifies a column DOF: true for the diagonal block
// (locally owned columns), false for the off-diagonal block. Sentinel
// columns land in the off-diagonal count, which over-counts but never
// under-allocates, matching the count-then-fill contract.
func (c *nnzCounter) inDiagonal(dof int) bool {
	return dof >= c.colLower && dof < c.colUpper
}

func (c *nnzCounter) count(localRow int, colDof int) {
	if c.inDiagonal(colDof) {
		c.dnz[localRow]++
	} else {
		c.onz[localRow]++
	}
}

// clamp bounds a row's counts by the block widths so over-counted
// sentinels never over-allocate beyond the possible maximum.
func (c *nnzCounter) clamp(localRow int) {
	if c.dnz[localRow] > c.nDiag {
		c.dnz[localRow] = c.nDiag
	}
	if c.onz[localRow] > c.nOff {
		c.onz[localRow] = c.nOff
	}
}

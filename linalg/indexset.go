package linalg

import "sort"

// IndexSet is a set of global indices held locally, kept sorted. When
// a partitioner produces an index set that plays two roles (e.g. zero
// subdomain overlap), both roles share one *IndexSet rather than a
// copy, so callers can compare pointers to detect the degenerate case.
type IndexSet struct {
	Indices []int
}

// NewIndexSet copies and sorts the given indices. Duplicates are kept.
func NewIndexSet(idxs []int) (is *IndexSet) {
	is = &IndexSet{Indices: append([]int(nil), idxs...)}
	sort.Ints(is.Indices)
	return
}

// NewUniqueIndexSet copies, sorts and deduplicates the given indices.
func NewUniqueIndexSet(idxs []int) (is *IndexSet) {
	sorted := append([]int(nil), idxs...)
	sort.Ints(sorted)
	out := sorted[:0]
	for k, v := range sorted {
		if k == 0 || v != sorted[k-1] {
			out = append(out, v)
		}
	}
	is = &IndexSet{Indices: out}
	return
}

func (is *IndexSet) Len() int { return len(is.Indices) }

func (is *IndexSet) Contains(idx int) bool {
	k := sort.SearchInts(is.Indices, idx)
	return k < len(is.Indices) && is.Indices[k] == idx
}

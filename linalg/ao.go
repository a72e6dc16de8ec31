package linalg

// AppOrdering maps natural (application) indices to global DOF
// indices. The grid transfer assembler uses it to translate the
// natural linearization of a coarse-level location into the coarse
// DOF numbering, which in general permutes locations across ranks.
type AppOrdering struct {
	toGlobal map[int]int
}

func NewAppOrdering() *AppOrdering {
	return &AppOrdering{toGlobal: make(map[int]int)}
}

func (ao *AppOrdering) Add(natural, global int) {
	ao.toGlobal[natural] = global
}

// ApplyTo rewrites natural indices to global indices in place. Indices
// with no mapping become -1 and are dropped by Mat.SetValues.
func (ao *AppOrdering) ApplyTo(idxs []int) {
	for k, nat := range idxs {
		if g, ok := ao.toGlobal[nat]; ok {
			idxs[k] = g
		} else {
			idxs[k] = -1
		}
	}
}

func (ao *AppOrdering) Len() int { return len(ao.toGlobal) }

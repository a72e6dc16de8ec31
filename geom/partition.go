package geom

// PartitionBox tiles a box into sub-boxes of at most boxSize locations
// per axis, then grows each tile by overlap to form the overlapping
// variant. The two returned slices are matched element for element and
// ordered with the first axis varying fastest. Overlap boxes are not
// clipped to the original box; callers read the halo from ghost data.
func PartitionBox(box Box, boxSize, overlap IntVect) (overlapBoxes, nonoverlapBoxes []Box) {
	var (
		dim   = box.Dim()
		nTile = make(IntVect, dim)
	)
	for d := 0; d < dim; d++ {
		extent := box.Extent(d)
		nTile[d] = extent / boxSize[d]
		if extent%boxSize[d] != 0 {
			nTile[d]++
		}
		if nTile[d] < 1 {
			nTile[d] = 1
		}
	}
	tileIdx := Box{Lo: Uniform(dim, 0), Hi: nTile.Copy()}
	for d := range tileIdx.Hi {
		tileIdx.Hi[d]--
	}
	tileIdx.Iterate(func(t IntVect) {
		var (
			lo = make(IntVect, dim)
			hi = make(IntVect, dim)
		)
		for d := 0; d < dim; d++ {
			lo[d] = box.Lo[d] + t[d]*boxSize[d]
			hi[d] = lo[d] + boxSize[d] - 1
			if hi[d] > box.Hi[d] {
				hi[d] = box.Hi[d]
			}
		}
		tile := Box{Lo: lo, Hi: hi}
		nonoverlapBoxes = append(nonoverlapBoxes, tile)
		overlapBoxes = append(overlapBoxes, tile.Grow(overlap))
	})
	return
}

package hier

import (
	"fmt"

	"github.com/pj-ming/IBAMR/geom"
)

// DofSentinel marks a grid location that carries no degree of freedom,
// e.g. a ghost location outside the physical domain.
const DofSentinel = -1

// CellDofData holds one integer per cell (per depth component) over a
// patch box plus a ghost halo. The value is a global DOF number or
// DofSentinel.
type CellDofData struct {
	Box      geom.Box // patch interior
	GhostBox geom.Box
	Ghost    int
	Depth    int
	data     []int
}

func NewCellDofData(box geom.Box, depth, ghost int) (c *CellDofData) {
	gb := box.GrowUniform(ghost)
	c = &CellDofData{
		Box:      box.Copy(),
		GhostBox: gb,
		Ghost:    ghost,
		Depth:    depth,
		data:     make([]int, gb.Size()*depth),
	}
	for k := range c.data {
		c.data[k] = DofSentinel
	}
	return
}

func (c *CellDofData) At(i geom.IntVect, d int) int {
	if !c.GhostBox.Contains(i) {
		return DofSentinel
	}
	return c.data[c.GhostBox.Offset(i)*c.Depth+d]
}

func (c *CellDofData) Set(i geom.IntVect, d, dof int) {
	if !c.GhostBox.Contains(i) {
		panic(fmt.Errorf("cell index %v outside ghost box %v", i, c.GhostBox))
	}
	c.data[c.GhostBox.Offset(i)*c.Depth+d] = dof
}

// SideDofData holds one integer per face over a patch box plus ghost
// halo, one independent array per face-normal axis. Faces are
// identified by the cell on their upper side (lower-face convention).
type SideDofData struct {
	Box       geom.Box
	Ghost     int
	sideBoxes []geom.Box // ghost side box per axis
	data      [][]int
}

func NewSideDofData(box geom.Box, ghost int) (s *SideDofData) {
	var (
		dim = box.Dim()
		gb  = box.GrowUniform(ghost)
	)
	s = &SideDofData{
		Box:       box.Copy(),
		Ghost:     ghost,
		sideBoxes: make([]geom.Box, dim),
		data:      make([][]int, dim),
	}
	for axis := 0; axis < dim; axis++ {
		sb := gb.SideBox(axis)
		s.sideBoxes[axis] = sb
		s.data[axis] = make([]int, sb.Size())
		for k := range s.data[axis] {
			s.data[axis][k] = DofSentinel
		}
	}
	return
}

func (s *SideDofData) Dim() int { return s.Box.Dim() }

// GhostSideBox is the index box of faces normal to axis covered by
// this field, ghost halo included.
func (s *SideDofData) GhostSideBox(axis int) geom.Box { return s.sideBoxes[axis] }

func (s *SideDofData) At(axis int, i geom.IntVect) int {
	sb := s.sideBoxes[axis]
	if !sb.Contains(i) {
		return DofSentinel
	}
	return s.data[axis][sb.Offset(i)]
}

func (s *SideDofData) Set(axis int, i geom.IntVect, dof int) {
	sb := s.sideBoxes[axis]
	if !sb.Contains(i) {
		panic(fmt.Errorf("side index %v (axis %d) outside ghost side box %v", i, axis, sb))
	}
	s.data[axis][sb.Offset(i)] = dof
}

package hier

import (
	"github.com/pj-ming/IBAMR/geom"
)

// GridGeometry describes the physical extent of the coarsest index
// space: the domain box in index coordinates and the physical corners
// it spans. Dx is the grid spacing of the coarsest level.
type GridGeometry struct {
	XLo, XUp []float64
	Dx       []float64
	Domain   geom.Box
}

func NewGridGeometry(xLo, xUp []float64, domain geom.Box) (g *GridGeometry) {
	var (
		dim = domain.Dim()
		dx  = make([]float64, dim)
	)
	for d := 0; d < dim; d++ {
		dx[d] = (xUp[d] - xLo[d]) / float64(domain.Extent(d))
	}
	g = &GridGeometry{
		XLo:    xLo,
		XUp:    xUp,
		Dx:     dx,
		Domain: domain,
	}
	return
}

func (g *GridGeometry) Dim() int { return g.Domain.Dim() }

// CellIndexOf maps a physical point to the index of the cell
// containing it on a level with the given refinement ratio.
func (g *GridGeometry) CellIndexOf(x []float64, ratio geom.IntVect) (i geom.IntVect) {
	var (
		dim = g.Dim()
	)
	i = make(geom.IntVect, dim)
	for d := 0; d < dim; d++ {
		dx := g.Dx[d] / float64(ratio[d])
		lower := g.Domain.Lo[d] * ratio[d]
		rel := (x[d] - g.XLo[d]) / dx
		i[d] = lower + int(rel)
		// Points exactly on the upper domain face belong to the last cell.
		upper := (g.Domain.Hi[d]+1)*ratio[d] - 1
		if i[d] > upper {
			i[d] = upper
		}
	}
	return
}

// LevelDx is the grid spacing on a level refined by ratio.
func (g *GridGeometry) LevelDx(ratio geom.IntVect) (dx []float64) {
	dx = make([]float64, g.Dim())
	for d := range dx {
		dx[d] = g.Dx[d] / float64(ratio[d])
	}
	return
}

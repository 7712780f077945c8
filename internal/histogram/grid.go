package histogram

import "fmt"

// Grid is a fixed-resolution 2-D counter over the unit square [0,1]×[0,1].
// Cells are stored in a flat row-major slice: index = yBin*Width + xBin.
// The grid is pixel-aligned: with Width cells per row, the per-axis bin
// width is 1/(Width-1), so 0.0 maps to the first cell and 1.0 to the last.
//
// A Grid is written by exactly one goroutine during the accumulation pass
// and becomes read-only before normalization, so it carries no lock.
type Grid struct {
	Width  int
	Height int

	counts    []uint64
	xBinWidth float64
	yBinWidth float64
	total     uint64
}

// NewGrid creates a zero-initialised width×height grid over the unit
// square. Both dimensions must be at least 2 so the pixel-aligned bin width
// 1/(dim-1) is finite and positive.
func NewGrid(width, height int) (*Grid, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("histogram: grid dimensions must be at least 2x2, got %dx%d", width, height)
	}
	return &Grid{
		Width:     width,
		Height:    height,
		counts:    make([]uint64, width*height),
		xBinWidth: 1.0 / float64(width-1),
		yBinWidth: 1.0 / float64(height-1),
	}, nil
}

// Idx returns the flat slice index for the given cell coordinates.
func (g *Grid) Idx(xBin, yBin int) int {
	return yBin*g.Width + xBin
}

// Insert maps (x, y) to a cell and increments its counter. Each axis clamps
// independently: coordinates below 0 land in the first cell of the axis,
// above 1 in the last. Every call increments exactly one counter.
func (g *Grid) Insert(x, y float64) {
	xBin := axisBin(x, g.Width, g.xBinWidth)
	yBin := axisBin(y, g.Height, g.yBinWidth)
	g.counts[g.Idx(xBin, yBin)]++
	g.total++
}

// axisBin resolves one axis of a coordinate against a [0,1] domain. The
// trailing clamp covers the floating-point edge at exactly 1.0.
func axisBin(v float64, cells int, binWidth float64) int {
	var idx int
	switch {
	case v < 0:
		idx = 0
	case v > 1:
		idx = cells - 1
	default:
		idx = int(v / binWidth)
	}
	if idx >= cells {
		idx = cells - 1
	}
	return idx
}

// Count returns the raw counter for one cell.
func (g *Grid) Count(xBin, yBin int) uint64 {
	return g.counts[g.Idx(xBin, yBin)]
}

// Max returns the largest cell count in the grid.
func (g *Grid) Max() uint64 {
	var m uint64
	for _, c := range g.counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Total returns the number of coordinate pairs inserted so far.
func (g *Grid) Total() uint64 {
	return g.total
}

// Cells returns the number of cells in the grid.
func (g *Grid) Cells() int {
	return len(g.counts)
}

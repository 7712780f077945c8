package histogram

import (
	"fmt"
	"math"
)

// Default perceptual bounds for log-scaled lightness. The floor keeps
// single-count cells visible against the background; the ceiling lets the
// fullest cell reach full lightness.
const (
	DefaultLightnessMin = 0.3
	DefaultLightnessMax = 1.0
)

// CellPoint is one non-empty grid cell with its derived display lightness.
// XBin and YBin are grid coordinates, not plot-space positions; consumers
// convert via pos = bin/dimension.
type CellPoint struct {
	XBin      int
	YBin      int
	Lightness float64
}

// LogLightness derives a sparse lightness field from the grid. For each
// cell with count c > 0:
//
//	L = log10(c)/log10(max) * (lmax-lmin) + lmin
//
// Zero-count cells are never emitted; they produce no renderable point at
// all. When every non-empty cell has count 1, log10(max) is 0 and the scale
// collapses to a uniform lmin, which is the defined result for a flat
// distribution. Returns ErrEmpty if the grid has seen no insertions.
func (g *Grid) LogLightness(lmin, lmax float64) ([]CellPoint, error) {
	if lmin < 0 || lmax > 1 || lmax <= lmin {
		return nil, fmt.Errorf("histogram: lightness bounds [%v, %v] must satisfy 0 <= min < max <= 1", lmin, lmax)
	}
	maxCount := g.Max()
	if maxCount == 0 {
		return nil, ErrEmpty
	}

	logMax := math.Log10(float64(maxCount))
	points := make([]CellPoint, 0, len(g.counts)/4)
	for i, c := range g.counts {
		if c == 0 {
			continue
		}
		scaled := 0.0
		if logMax > 0 {
			scaled = math.Log10(float64(c)) / logMax
		}
		points = append(points, CellPoint{
			XBin:      i % g.Width,
			YBin:      i / g.Width,
			Lightness: scaled*(lmax-lmin) + lmin,
		})
	}
	return points, nil
}

// NonEmptyCells returns every cell with a count greater than zero, with a
// uniform lightness of lmax. This is the scatter-mode emission: position
// matters, intensity does not.
func (g *Grid) NonEmptyCells(lmax float64) []CellPoint {
	points := make([]CellPoint, 0, len(g.counts)/4)
	for i, c := range g.counts {
		if c == 0 {
			continue
		}
		points = append(points, CellPoint{
			XBin:      i % g.Width,
			YBin:      i / g.Width,
			Lightness: lmax,
		})
	}
	return points
}

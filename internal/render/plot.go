// Package render turns aggregated density data into output images. PNG
// output goes through gonum/plot; interactive HTML charts through
// go-echarts. The package never touches the input stream, only the grid's
// emissions.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/density.report/internal/histogram"
)

// Defaults preserved from the original plotting tool.
const (
	DefaultTitle  = "IBD/IBS Plot"
	DefaultXLabel = "Z0"
	DefaultYLabel = "Z1"

	DefaultWidthPx  = 800
	DefaultHeightPx = 600
)

// heatmapHue is the fixed hue for density cells (0 = red); only lightness
// varies across cells.
const heatmapHue = 0.0

// scatterBlue is the point color for scatter mode.
var scatterBlue = color.RGBA{B: 255, A: 255}

// Options configures one output image.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// Canvas size in pixels at 96 DPI.
	WidthPx  int
	HeightPx int
}

// withDefaults fills zero-valued fields.
func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.XLabel == "" {
		o.XLabel = DefaultXLabel
	}
	if o.YLabel == "" {
		o.YLabel = DefaultYLabel
	}
	if o.WidthPx <= 0 {
		o.WidthPx = DefaultWidthPx
	}
	if o.HeightPx <= 0 {
		o.HeightPx = DefaultHeightPx
	}
	return o
}

// newUnitPlot builds a plot with fixed [0,1]×[0,1] axes and labels.
func newUnitPlot(o Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p
}

// pxLength converts a pixel count to a vg length at 96 DPI.
func pxLength(px int) vg.Length {
	return vg.Points(float64(px) * 72.0 / 96.0)
}

// cellXYs converts sparse grid cells back to plot-space positions via
// pos = bin/dimension.
func cellXYs(points []histogram.CellPoint, gridW, gridH int) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{
			X: float64(pt.XBin) / float64(gridW),
			Y: float64(pt.YBin) / float64(gridH),
		}
	}
	return xys
}

// SaveHeatmap renders sparse density cells as a PNG heatmap. Each cell is a
// filled box glyph colored by its lightness at the fixed hue; empty cells
// were never emitted and draw nothing, leaving the background visible.
func SaveHeatmap(points []histogram.CellPoint, gridW, gridH int, opts Options, target string) error {
	if len(points) == 0 {
		return fmt.Errorf("render: no cells to draw")
	}
	opts = opts.withDefaults()
	p := newUnitPlot(opts)

	sc, err := plotter.NewScatter(cellXYs(points, gridW, gridH))
	if err != nil {
		return fmt.Errorf("render: build heatmap series: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  HSL(heatmapHue, 1, points[i].Lightness),
			Radius: vg.Points(1.5),
			Shape:  draw.BoxGlyph{},
		}
	}
	p.Add(sc)

	if err := p.Save(pxLength(opts.WidthPx), pxLength(opts.HeightPx), target); err != nil {
		return fmt.Errorf("render: save heatmap: %w", err)
	}
	return nil
}

// SaveScatter renders occupied cells as uniform blue points, the classic
// overplotted scatter look at grid resolution.
func SaveScatter(points []histogram.CellPoint, gridW, gridH int, opts Options, target string) error {
	if len(points) == 0 {
		return fmt.Errorf("render: no cells to draw")
	}
	opts = opts.withDefaults()
	p := newUnitPlot(opts)

	sc, err := plotter.NewScatter(cellXYs(points, gridW, gridH))
	if err != nil {
		return fmt.Errorf("render: build scatter series: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{
		Color:  scatterBlue,
		Radius: vg.Points(2),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(sc)

	if err := p.Save(pxLength(opts.WidthPx), pxLength(opts.HeightPx), target); err != nil {
		return fmt.Errorf("render: save scatter: %w", err)
	}
	return nil
}

// SaveProfile renders a dense normalized 1-D histogram as a bar chart.
// Values are expected in [0,1], positionally aligned with the bins.
func SaveProfile(normalized []float64, opts Options, target string) error {
	if len(normalized) == 0 {
		return fmt.Errorf("render: no bins to draw")
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Y.Min, p.Y.Max = 0, 1

	barWidth := pxLength(opts.WidthPx) / vg.Length(len(normalized)+1)
	bars, err := plotter.NewBarChart(plotter.Values(normalized), barWidth)
	if err != nil {
		return fmt.Errorf("render: build profile series: %w", err)
	}
	bars.Color = scatterBlue
	bars.LineStyle.Width = 0
	p.Add(bars)

	if err := p.Save(pxLength(opts.WidthPx), pxLength(opts.HeightPx), target); err != nil {
		return fmt.Errorf("render: save profile: %w", err)
	}
	return nil
}

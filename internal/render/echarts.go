package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/density.report/internal/histogram"
)

// viridisRamp is the color ramp for the HTML visual map, low to high.
var viridisRamp = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// SaveHTMLHeatmap writes an interactive HTML chart of the grid's occupied
// cells, colored by raw count through a visual-map ramp. Positions are
// converted back to plot space via pos = bin/dimension; empty cells are
// omitted, same as the PNG heatmap.
func SaveHTMLHeatmap(g *histogram.Grid, o Options, target string) error {
	o = o.withDefaults()

	maxCount := g.Max()
	if maxCount == 0 {
		return fmt.Errorf("render: no cells to draw")
	}

	data := make([]opts.ScatterData, 0, g.Cells()/4)
	for yBin := 0; yBin < g.Height; yBin++ {
		for xBin := 0; xBin < g.Width; xBin++ {
			c := g.Count(xBin, yBin)
			if c == 0 {
				continue
			}
			x := float64(xBin) / float64(g.Width)
			y := float64(yBin) / float64(g.Height)
			data = append(data, opts.ScatterData{Value: []interface{}{x, y, c}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: fmt.Sprintf("cells=%d max_count=%d", len(data), maxCount)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 1, Name: o.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: o.YLabel, NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridisRamp},
		}),
	)
	scatter.AddSeries("density", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("render: create chart file: %w", err)
	}
	defer f.Close()

	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("render: render chart: %w", err)
	}
	return nil
}

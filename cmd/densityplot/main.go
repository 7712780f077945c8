// Command densityplot aggregates a whitespace-delimited file of coordinate
// pairs into a fixed-resolution density grid and renders it as a PNG
// (scatter or heatmap), a 1-D profile, or an interactive HTML chart.
//
// The input is streamed record by record through a bounded buffer, so files
// far larger than memory are fine; only the grid is fully resident.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/density.report/internal/config"
	"github.com/banshee-data/density.report/internal/coords"
	"github.com/banshee-data/density.report/internal/histogram"
	"github.com/banshee-data/density.report/internal/monitoring"
	"github.com/banshee-data/density.report/internal/render"
	"github.com/banshee-data/density.report/internal/version"
)

// Render modes.
const (
	ModeScatter = "scatter"
	ModeHeatmap = "heatmap"
	ModeProfile = "profile"
	ModeHTML    = "html"
)

// RunSummary is the machine-readable report of one completed run.
type RunSummary struct {
	RunID       string            `json:"run_id"`
	Mode        string            `json:"mode"`
	Source      string            `json:"source"`
	Target      string            `json:"target"`
	Records     int               `json:"records"`
	GridWidth   int               `json:"grid_width,omitempty"`
	GridHeight  int               `json:"grid_height,omitempty"`
	ProfileBins int               `json:"profile_bins,omitempty"`
	Grid        histogram.Summary `json:"grid_summary"`
	ElapsedMs   int64             `json:"elapsed_ms"`
	GeneratedAt time.Time         `json:"generated_at"`
	ToolVersion string            `json:"tool_version"`
}

func main() {
	var (
		mode        = flag.String("mode", ModeHeatmap, "render mode: scatter, heatmap, profile or html")
		xCol        = flag.Int("x", coords.DefaultXColumn, "zero-based column for X values")
		yCol        = flag.Int("y", coords.DefaultYColumn, "zero-based column for Y values")
		width       = flag.Int("width", render.DefaultWidthPx, "grid width in cells, doubles as pixel resolution")
		height      = flag.Int("height", render.DefaultHeightPx, "grid height in cells")
		bins        = flag.Int("bins", 100, "bin count for profile mode")
		domainMin   = flag.Float64("min", 0, "domain minimum for profile mode")
		domainMax   = flag.Float64("max", 1, "domain maximum for profile mode")
		lmin        = flag.Float64("lmin", histogram.DefaultLightnessMin, "lightness floor for heatmap mode")
		lmax        = flag.Float64("lmax", histogram.DefaultLightnessMax, "lightness ceiling for heatmap mode")
		title       = flag.String("title", render.DefaultTitle, "plot title")
		xdesc       = flag.String("xdesc", render.DefaultXLabel, "X axis description")
		ydesc       = flag.String("ydesc", render.DefaultYLabel, "Y axis description")
		configPath  = flag.String("config", "", "optional JSON config file")
		summaryPath = flag.String("summary", "", "optional path for a JSON run summary")
		verbose     = flag.Bool("v", false, "verbose logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] SOURCE TARGET\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "SOURCE is a whitespace-delimited text file (first line is a header);\nTARGET is the output image (or .html for html mode).\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	monitoring.SetVerbose(*verbose)

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.EmptyPlotConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadPlotConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	// Precedence: flag explicitly set on the command line > config file >
	// built-in default. flag.Visit only sees flags the user actually set.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := runOptions{
		Mode:         *mode,
		Source:       flag.Arg(0),
		Target:       flag.Arg(1),
		XColumn:      pickInt(set["x"], *xCol, cfg.GetXColumn()),
		YColumn:      pickInt(set["y"], *yCol, cfg.GetYColumn()),
		BufferSize:   cfg.GetBufferSize(),
		GridWidth:    pickInt(set["width"], *width, cfg.GetGridWidth()),
		GridHeight:   pickInt(set["height"], *height, cfg.GetGridHeight()),
		ProfileBins:  pickInt(set["bins"], *bins, cfg.GetProfileBins()),
		DomainMin:    pickFloat(set["min"], *domainMin, cfg.GetDomainMin()),
		DomainMax:    pickFloat(set["max"], *domainMax, cfg.GetDomainMax()),
		LightnessMin: pickFloat(set["lmin"], *lmin, cfg.GetLightnessMin()),
		LightnessMax: pickFloat(set["lmax"], *lmax, cfg.GetLightnessMax()),
		Render: render.Options{
			Title:    pickString(set["title"], *title, cfg.GetTitle()),
			XLabel:   pickString(set["xdesc"], *xdesc, cfg.GetXLabel()),
			YLabel:   pickString(set["ydesc"], *ydesc, cfg.GetYLabel()),
			WidthPx:  pickInt(set["width"], *width, cfg.GetGridWidth()),
			HeightPx: pickInt(set["height"], *height, cfg.GetGridHeight()),
		},
		SummaryPath: *summaryPath,
	}

	if err := run(opts); err != nil {
		log.Fatalf("densityplot: %v", err)
	}
}

func pickInt(flagSet bool, flagVal, configVal int) int {
	if flagSet {
		return flagVal
	}
	return configVal
}

func pickFloat(flagSet bool, flagVal, configVal float64) float64 {
	if flagSet {
		return flagVal
	}
	return configVal
}

func pickString(flagSet bool, flagVal, configVal string) string {
	if flagSet {
		return flagVal
	}
	return configVal
}

// runOptions is the fully resolved configuration for one run: config file
// values overridden by flags, defaults filled in.
type runOptions struct {
	Mode   string
	Source string
	Target string

	XColumn    int
	YColumn    int
	BufferSize int

	GridWidth  int
	GridHeight int

	ProfileBins int
	DomainMin   float64
	DomainMax   float64

	LightnessMin float64
	LightnessMax float64

	Render      render.Options
	SummaryPath string
}

// run executes one aggregation-and-render pass. Any error aborts the whole
// run; a failed run produces no output image.
func run(opts runOptions) error {
	start := time.Now()

	src, err := coords.Open(opts.Source, coords.Options{
		XColumn:    opts.XColumn,
		YColumn:    opts.YColumn,
		BufferSize: opts.BufferSize,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	summary := RunSummary{
		RunID:       uuid.NewString(),
		Mode:        opts.Mode,
		Source:      opts.Source,
		Target:      opts.Target,
		ToolVersion: version.Version,
	}

	switch opts.Mode {
	case ModeProfile:
		bv, err := histogram.NewBinnedVector(opts.DomainMin, opts.DomainMax, opts.ProfileBins)
		if err != nil {
			return err
		}
		// The profile is over the X column only; the Y field is still
		// required to parse so malformed records fail the run.
		if err := src.Each(func(x, y float64) error {
			bv.Insert(x)
			return nil
		}); err != nil {
			return err
		}
		monitoring.Debugf("profile pass complete: %d records into %d bins", src.Records(), bv.Bins())

		normalized, err := bv.Normalize()
		if err != nil {
			return err
		}
		if err := render.SaveProfile(normalized, opts.Render, opts.Target); err != nil {
			return err
		}
		summary.ProfileBins = bv.Bins()

	case ModeScatter, ModeHeatmap, ModeHTML:
		grid, err := histogram.NewGrid(opts.GridWidth, opts.GridHeight)
		if err != nil {
			return err
		}
		if err := src.Each(func(x, y float64) error {
			grid.Insert(x, y)
			return nil
		}); err != nil {
			return err
		}
		monitoring.Debugf("accumulation complete: %d records into %dx%d grid", src.Records(), grid.Width, grid.Height)

		switch opts.Mode {
		case ModeScatter:
			points := grid.NonEmptyCells(opts.LightnessMax)
			err = render.SaveScatter(points, grid.Width, grid.Height, opts.Render, opts.Target)
		case ModeHeatmap:
			var points []histogram.CellPoint
			points, err = grid.LogLightness(opts.LightnessMin, opts.LightnessMax)
			if err == nil {
				err = render.SaveHeatmap(points, grid.Width, grid.Height, opts.Render, opts.Target)
			}
		case ModeHTML:
			err = render.SaveHTMLHeatmap(grid, opts.Render, opts.Target)
		}
		if err != nil {
			return err
		}
		summary.GridWidth = grid.Width
		summary.GridHeight = grid.Height
		summary.Grid = grid.Summarize()

	default:
		return fmt.Errorf("unknown mode %q (want scatter, heatmap, profile or html)", opts.Mode)
	}

	summary.Records = src.Records()
	summary.ElapsedMs = time.Since(start).Milliseconds()
	summary.GeneratedAt = time.Now().UTC()

	monitoring.Logf("✓ %s: %d records -> %s (%dms)", opts.Mode, summary.Records, opts.Target, summary.ElapsedMs)

	if opts.SummaryPath != "" {
		if err := writeSummary(summary, opts.SummaryPath); err != nil {
			return err
		}
	}
	return nil
}

// writeSummary marshals the run summary to an indented JSON file.
func writeSummary(s RunSummary, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

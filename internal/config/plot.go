// Package config loads plotting configuration from JSON files. Fields are
// pointers so a partial file only overrides what it names; the Get* methods
// carry the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/density.report/internal/coords"
	"github.com/banshee-data/density.report/internal/histogram"
	"github.com/banshee-data/density.report/internal/render"
)

// PlotConfig is the file-backed configuration surface for a plotting run.
// The same JSON schema works for all render modes; mode-irrelevant fields
// are ignored.
type PlotConfig struct {
	// Input params
	XColumn    *int `json:"x_column,omitempty"`
	YColumn    *int `json:"y_column,omitempty"`
	BufferSize *int `json:"buffer_size,omitempty"`

	// Grid params
	GridWidth  *int `json:"grid_width,omitempty"`
	GridHeight *int `json:"grid_height,omitempty"`

	// Profile (1-D) params
	ProfileBins *int     `json:"profile_bins,omitempty"`
	DomainMin   *float64 `json:"domain_min,omitempty"`
	DomainMax   *float64 `json:"domain_max,omitempty"`

	// Heatmap lightness bounds
	LightnessMin *float64 `json:"lightness_min,omitempty"`
	LightnessMax *float64 `json:"lightness_max,omitempty"`

	// Labels
	Title  *string `json:"title,omitempty"`
	XLabel *string `json:"x_label,omitempty"`
	YLabel *string `json:"y_label,omitempty"`
}

// EmptyPlotConfig returns a PlotConfig with all fields unset.
func EmptyPlotConfig() *PlotConfig {
	return &PlotConfig{}
}

// LoadPlotConfig loads a PlotConfig from a JSON file. The file must have a
// .json extension and stay under the max file size. Omitted fields keep
// their defaults, so partial configs are safe.
func LoadPlotConfig(path string) (*PlotConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlotConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set fields hold usable values. These are
// configuration errors: they fail the run before a single record is read.
func (c *PlotConfig) Validate() error {
	if c.XColumn != nil && *c.XColumn < 0 {
		return fmt.Errorf("x_column must be non-negative, got %d", *c.XColumn)
	}
	if c.YColumn != nil && *c.YColumn < 0 {
		return fmt.Errorf("y_column must be non-negative, got %d", *c.YColumn)
	}
	if c.BufferSize != nil && *c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", *c.BufferSize)
	}
	if c.GridWidth != nil && *c.GridWidth < 2 {
		return fmt.Errorf("grid_width must be at least 2, got %d", *c.GridWidth)
	}
	if c.GridHeight != nil && *c.GridHeight < 2 {
		return fmt.Errorf("grid_height must be at least 2, got %d", *c.GridHeight)
	}
	if c.ProfileBins != nil && *c.ProfileBins < 1 {
		return fmt.Errorf("profile_bins must be at least 1, got %d", *c.ProfileBins)
	}
	if c.DomainMin != nil && c.DomainMax != nil && *c.DomainMax <= *c.DomainMin {
		return fmt.Errorf("domain_max %v must be greater than domain_min %v", *c.DomainMax, *c.DomainMin)
	}
	if c.LightnessMin != nil && (*c.LightnessMin < 0 || *c.LightnessMin > 1) {
		return fmt.Errorf("lightness_min must be in [0,1], got %v", *c.LightnessMin)
	}
	if c.LightnessMax != nil && (*c.LightnessMax < 0 || *c.LightnessMax > 1) {
		return fmt.Errorf("lightness_max must be in [0,1], got %v", *c.LightnessMax)
	}
	if c.LightnessMin != nil && c.LightnessMax != nil && *c.LightnessMax <= *c.LightnessMin {
		return fmt.Errorf("lightness_max %v must be greater than lightness_min %v", *c.LightnessMax, *c.LightnessMin)
	}
	return nil
}

// GetXColumn returns the x_column value or the default.
func (c *PlotConfig) GetXColumn() int {
	if c.XColumn == nil {
		return coords.DefaultXColumn
	}
	return *c.XColumn
}

// GetYColumn returns the y_column value or the default.
func (c *PlotConfig) GetYColumn() int {
	if c.YColumn == nil {
		return coords.DefaultYColumn
	}
	return *c.YColumn
}

// GetBufferSize returns the buffer_size value or the default.
func (c *PlotConfig) GetBufferSize() int {
	if c.BufferSize == nil {
		return coords.DefaultBufferSize
	}
	return *c.BufferSize
}

// GetGridWidth returns the grid_width value or the default.
func (c *PlotConfig) GetGridWidth() int {
	if c.GridWidth == nil {
		return render.DefaultWidthPx
	}
	return *c.GridWidth
}

// GetGridHeight returns the grid_height value or the default.
func (c *PlotConfig) GetGridHeight() int {
	if c.GridHeight == nil {
		return render.DefaultHeightPx
	}
	return *c.GridHeight
}

// GetProfileBins returns the profile_bins value or the default.
func (c *PlotConfig) GetProfileBins() int {
	if c.ProfileBins == nil {
		return 100
	}
	return *c.ProfileBins
}

// GetDomainMin returns the domain_min value or the default.
func (c *PlotConfig) GetDomainMin() float64 {
	if c.DomainMin == nil {
		return 0
	}
	return *c.DomainMin
}

// GetDomainMax returns the domain_max value or the default.
func (c *PlotConfig) GetDomainMax() float64 {
	if c.DomainMax == nil {
		return 1
	}
	return *c.DomainMax
}

// GetLightnessMin returns the lightness_min value or the default.
func (c *PlotConfig) GetLightnessMin() float64 {
	if c.LightnessMin == nil {
		return histogram.DefaultLightnessMin
	}
	return *c.LightnessMin
}

// GetLightnessMax returns the lightness_max value or the default.
func (c *PlotConfig) GetLightnessMax() float64 {
	if c.LightnessMax == nil {
		return histogram.DefaultLightnessMax
	}
	return *c.LightnessMax
}

// GetTitle returns the title value or the default.
func (c *PlotConfig) GetTitle() string {
	if c.Title == nil {
		return render.DefaultTitle
	}
	return *c.Title
}

// GetXLabel returns the x_label value or the default.
func (c *PlotConfig) GetXLabel() string {
	if c.XLabel == nil {
		return render.DefaultXLabel
	}
	return *c.XLabel
}

// GetYLabel returns the y_label value or the default.
func (c *PlotConfig) GetYLabel() string {
	if c.YLabel == nil {
		return render.DefaultYLabel
	}
	return *c.YLabel
}

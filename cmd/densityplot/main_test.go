package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/density.report/internal/render"
)

// writeInput writes a small coordinate file with a header and x/y in
// columns 0 and 1.
func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.txt")
	content := "x y\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func baseOptions(source, target string) runOptions {
	return runOptions{
		Mode:         ModeHeatmap,
		Source:       source,
		Target:       target,
		XColumn:      0,
		YColumn:      1,
		GridWidth:    16,
		GridHeight:   16,
		ProfileBins:  8,
		DomainMin:    0,
		DomainMax:    1,
		LightnessMin: 0.3,
		LightnessMax: 1.0,
		Render:       render.Options{WidthPx: 200, HeightPx: 150},
	}
}

func TestRunHeatmap(t *testing.T) {
	t.Parallel()

	source := writeInput(t, "0.1 0.1", "0.1 0.1", "0.5 0.5", "0.9 0.9")
	target := filepath.Join(t.TempDir(), "out.png")

	opts := baseOptions(source, target)
	require.NoError(t, run(opts))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunScatter(t *testing.T) {
	t.Parallel()

	source := writeInput(t, "0.2 0.8", "0.6 0.4")
	target := filepath.Join(t.TempDir(), "out.png")

	opts := baseOptions(source, target)
	opts.Mode = ModeScatter
	require.NoError(t, run(opts))

	_, err := os.Stat(target)
	require.NoError(t, err)
}

func TestRunProfile(t *testing.T) {
	t.Parallel()

	source := writeInput(t, "0.1 0", "0.1 0", "0.9 0")
	target := filepath.Join(t.TempDir(), "out.png")

	opts := baseOptions(source, target)
	opts.Mode = ModeProfile
	require.NoError(t, run(opts))

	_, err := os.Stat(target)
	require.NoError(t, err)
}

func TestRunHTML(t *testing.T) {
	t.Parallel()

	source := writeInput(t, "0.3 0.3", "0.7 0.7")
	target := filepath.Join(t.TempDir(), "out.html")

	opts := baseOptions(source, target)
	opts.Mode = ModeHTML
	require.NoError(t, run(opts))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
}

func TestRunUnknownMode(t *testing.T) {
	t.Parallel()

	source := writeInput(t, "0.1 0.1")
	opts := baseOptions(source, filepath.Join(t.TempDir(), "out.png"))
	opts.Mode = "contour"

	err := run(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestRunParseErrorProducesNoOutput(t *testing.T) {
	t.Parallel()

	source := writeInput(t, "0.1 0.1", "0.5 banana")
	target := filepath.Join(t.TempDir(), "out.png")

	opts := baseOptions(source, target)
	err := run(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	// All-or-nothing: a failed run leaves no image behind.
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	// Header only: the grid stays empty and normalization must report it
	// rather than render a blank image.
	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("x y\n"), 0644))

	opts := baseOptions(path, filepath.Join(t.TempDir(), "out.png"))
	err := run(opts)
	require.Error(t, err)
}

func TestRunMissingSource(t *testing.T) {
	t.Parallel()

	opts := baseOptions(filepath.Join(t.TempDir(), "absent.txt"), filepath.Join(t.TempDir(), "out.png"))
	assert.Error(t, run(opts))
}

func TestRunWritesSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeInput(t, "0.1 0.1", "0.1 0.1", "0.9 0.9")
	target := filepath.Join(dir, "out.png")
	summaryPath := filepath.Join(dir, "summary.json")

	opts := baseOptions(source, target)
	opts.SummaryPath = summaryPath
	require.NoError(t, run(opts))

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)

	var s RunSummary
	require.NoError(t, json.Unmarshal(data, &s))

	_, err = uuid.Parse(s.RunID)
	assert.NoError(t, err, "run_id must be a valid UUID")
	assert.Equal(t, ModeHeatmap, s.Mode)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 16, s.GridWidth)
	assert.Equal(t, uint64(3), s.Grid.TotalSamples)
	assert.Equal(t, 2, s.Grid.FilledCells)
	assert.Equal(t, uint64(2), s.Grid.MaxCount)
}

func TestPickHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, pickInt(true, 5, 9))
	assert.Equal(t, 9, pickInt(false, 5, 9))
	assert.Equal(t, 0.5, pickFloat(true, 0.5, 0.9))
	assert.Equal(t, 0.9, pickFloat(false, 0.5, 0.9))
	assert.Equal(t, "a", pickString(true, "a", "b"))
	assert.Equal(t, "b", pickString(false, "a", "b"))
}

package histogram

import "gonum.org/v1/gonum/stat"

// Summary aggregates grid fill statistics for run reporting.
type Summary struct {
	TotalSamples uint64  `json:"total_samples"`
	TotalCells   int     `json:"total_cells"`
	FilledCells  int     `json:"filled_cells"`
	FillRate     float64 `json:"fill_rate"`
	MaxCount     uint64  `json:"max_count"`
	MeanCount    float64 `json:"mean_count"`
	StdDevCount  float64 `json:"stddev_count"`
}

// Summarize computes fill statistics over the grid. Mean and standard
// deviation are over the filled cells only, since the empty cells dominate
// sparse grids and would drown the signal.
func (g *Grid) Summarize() Summary {
	s := Summary{TotalSamples: g.total, TotalCells: len(g.counts)}

	filled := make([]float64, 0, len(g.counts))
	for _, c := range g.counts {
		if c == 0 {
			continue
		}
		if c > s.MaxCount {
			s.MaxCount = c
		}
		filled = append(filled, float64(c))
	}
	s.FilledCells = len(filled)
	if s.TotalCells > 0 {
		s.FillRate = float64(s.FilledCells) / float64(s.TotalCells)
	}
	// MeanStdDev needs two samples for a finite deviation; a NaN here would
	// poison the JSON run summary.
	switch {
	case len(filled) == 1:
		s.MeanCount = filled[0]
	case len(filled) > 1:
		s.MeanCount, s.StdDevCount = stat.MeanStdDev(filled, nil)
	}
	return s
}

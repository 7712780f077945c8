package histogram

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when normalization is requested on a histogram that
// has seen no insertions. The alternative (dividing by a zero maximum) would
// silently produce NaN intensities downstream.
var ErrEmpty = errors.New("histogram: no samples inserted")

// BinnedVector is a fixed-resolution 1-D histogram over the closed domain
// [min, max]. Memory is bounded by the bin count, never by the number of
// inserted values. Counters are only ever incremented; the vector is never
// resized after construction.
type BinnedVector struct {
	counts   []uint64
	min      float64
	max      float64
	binWidth float64
	total    uint64
}

// NewBinnedVector creates a zero-initialised histogram with the given bin
// count covering [min, max]. The bin count must be at least 1 and max must
// be strictly greater than min.
func NewBinnedVector(min, max float64, bins int) (*BinnedVector, error) {
	if bins < 1 {
		return nil, fmt.Errorf("histogram: bin count must be at least 1, got %d", bins)
	}
	if max <= min {
		return nil, fmt.Errorf("histogram: domain max %v must be greater than min %v", max, min)
	}
	return &BinnedVector{
		counts:   make([]uint64, bins),
		min:      min,
		max:      max,
		binWidth: (max - min) / float64(bins),
	}, nil
}

// Insert maps v to a bin and increments its counter. Out-of-domain values
// are clamped into the first or last bin rather than dropped, so every call
// increments exactly one counter.
func (b *BinnedVector) Insert(v float64) {
	b.counts[b.bin(v)]++
	b.total++
}

// bin resolves the index for v. Values below min land in bin 0 and values
// above max in the last bin. The final clamp guards the floating-point edge
// at v == max, where the division can yield an index one past the end.
func (b *BinnedVector) bin(v float64) int {
	var idx int
	switch {
	case v < b.min:
		idx = 0
	case v > b.max:
		idx = len(b.counts) - 1
	default:
		idx = int((v - b.min) / b.binWidth)
	}
	if idx >= len(b.counts) {
		idx = len(b.counts) - 1
	}
	return idx
}

// Normalize returns counts scaled into [0,1] relative to the maximum bin, so
// the fullest bin maps to exactly 1.0. Returns ErrEmpty if nothing has been
// inserted.
func (b *BinnedVector) Normalize() ([]float64, error) {
	maxCount := b.Max()
	if maxCount == 0 {
		return nil, ErrEmpty
	}
	out := make([]float64, len(b.counts))
	for i, c := range b.counts {
		out[i] = float64(c) / float64(maxCount)
	}
	return out, nil
}

// Max returns the largest bin count.
func (b *BinnedVector) Max() uint64 {
	var m uint64
	for _, c := range b.counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Total returns the number of values inserted so far.
func (b *BinnedVector) Total() uint64 {
	return b.total
}

// Counts returns a copy of the raw bin counters.
func (b *BinnedVector) Counts() []uint64 {
	out := make([]uint64, len(b.counts))
	copy(out, b.counts)
	return out
}

// Bins returns the number of bins.
func (b *BinnedVector) Bins() int {
	return len(b.counts)
}

// BinWidth returns the width of one bin in domain units.
func (b *BinnedVector) BinWidth() float64 {
	return b.binWidth
}

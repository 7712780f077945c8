// Package coords streams whitespace-delimited coordinate pairs out of large
// text files without ever materialising the file in memory.
package coords

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultBufferSize is the read buffer used when none is configured. Input
// files are routinely larger than memory, so reads go through a bounded
// buffer of this size.
const DefaultBufferSize = 1 << 20

// Default zero-based column indices for the x and y fields.
const (
	DefaultXColumn = 6
	DefaultYColumn = 7
)

// Options configures a Source.
type Options struct {
	// XColumn and YColumn are zero-based field indices within each line.
	XColumn int
	YColumn int
	// BufferSize caps the line buffer. Zero selects DefaultBufferSize.
	BufferSize int
}

// Source reads coordinate pairs from a text stream, one line per record.
// The first line is treated as a header and skipped. Any malformed record
// aborts the traversal; there is no skip-and-continue mode.
type Source struct {
	r       io.Reader
	closer  io.Closer
	opts    Options
	records int
}

// NewSource wraps an existing reader.
func NewSource(r io.Reader, opts Options) (*Source, error) {
	if opts.XColumn < 0 || opts.YColumn < 0 {
		return nil, fmt.Errorf("coords: column indices must be non-negative, got x=%d y=%d", opts.XColumn, opts.YColumn)
	}
	if opts.BufferSize < 0 {
		return nil, fmt.Errorf("coords: buffer size must be non-negative, got %d", opts.BufferSize)
	}
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultBufferSize
	}
	return &Source{r: r, opts: opts}, nil
}

// Open opens path and wraps it in a Source. Close releases the file.
func Open(path string, opts Options) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("coords: open source: %w", err)
	}
	s, err := NewSource(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Each streams every record to fn in file order. Traversal stops at the
// first parse error or at the first error returned by fn; either aborts the
// whole run. Line numbers in errors are 1-based and include the header.
func (s *Source) Each(fn func(x, y float64) error) error {
	sc := bufio.NewScanner(s.r)
	sc.Buffer(nil, s.opts.BufferSize)

	need := s.opts.XColumn
	if s.opts.YColumn > need {
		need = s.opts.YColumn
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}

		fields := strings.Fields(sc.Text())
		if need >= len(fields) {
			return fmt.Errorf("coords: line %d: no field %d (line has %d fields)", lineNo, need, len(fields))
		}

		x, err := parseField(fields[s.opts.XColumn], lineNo, s.opts.XColumn)
		if err != nil {
			return err
		}
		y, err := parseField(fields[s.opts.YColumn], lineNo, s.opts.YColumn)
		if err != nil {
			return err
		}

		if err := fn(x, y); err != nil {
			return err
		}
		s.records++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("coords: read line %d: %w", lineNo+1, err)
	}
	return nil
}

// Records returns the number of records successfully streamed so far.
func (s *Source) Records() int {
	return s.records
}

// parseField converts one whitespace-delimited field to a finite float64.
// NaN and infinities are rejected here so the accumulator never sees them.
func parseField(field string, lineNo, col int) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("coords: line %d field %d: %q is not a number", lineNo, col, field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coords: line %d field %d: %q is not finite", lineNo, col, field)
	}
	return v, nil
}

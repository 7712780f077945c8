// Package histogram owns the streaming aggregation core of the density
// pipeline.
//
// Responsibilities: fixed-memory binning of an unbounded coordinate stream
// (BinnedVector for 1-D profiles, Grid for the 2-D unit square), boundary
// clamping of out-of-domain values, and intensity derivation (linear
// normalization and logarithmic lightness mapping).
// Key types: BinnedVector, Grid, CellPoint, Summary.
//
// Dependency rule: this package never touches I/O or rendering. Readers feed
// it one value at a time; renderers consume its output.
package histogram

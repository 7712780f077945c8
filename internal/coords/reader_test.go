package coords

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ x, y float64 }

func collect(t *testing.T, input string, opts Options) ([]pair, error) {
	t.Helper()
	s, err := NewSource(strings.NewReader(input), opts)
	require.NoError(t, err)

	var got []pair
	err = s.Each(func(x, y float64) error {
		got = append(got, pair{x, y})
		return nil
	})
	return got, err
}

func TestEachSkipsHeader(t *testing.T) {
	t.Parallel()

	input := "colA colB\n0.1 0.2\n0.3 0.4\n"
	got, err := collect(t, input, Options{XColumn: 0, YColumn: 1})
	require.NoError(t, err)

	want := []pair{{0.1, 0.2}, {0.3, 0.4}}
	assert.Equal(t, want, got)
}

func TestEachColumnSelection(t *testing.T) {
	t.Parallel()

	// Eight fields per line; defaults pick the last two.
	input := "h h h h h h h h\na b c d e f 0.5 0.9\n"
	got, err := collect(t, input, Options{XColumn: DefaultXColumn, YColumn: DefaultYColumn})
	require.NoError(t, err)
	assert.Equal(t, []pair{{0.5, 0.9}}, got)
}

func TestEachMissingField(t *testing.T) {
	t.Parallel()

	input := "header\n0.1 0.2\n0.3\n"
	got, err := collect(t, input, Options{XColumn: 0, YColumn: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	// The first record was already delivered before the failure.
	assert.Equal(t, []pair{{0.1, 0.2}}, got)
}

func TestEachNonNumericField(t *testing.T) {
	t.Parallel()

	input := "header\n0.1 oops\n"
	_, err := collect(t, input, Options{XColumn: 0, YColumn: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "oops")
}

func TestEachRejectsNonFinite(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"NaN", "+Inf", "-Inf"} {
		_, err := collect(t, "header\n0.5 "+bad+"\n", Options{XColumn: 0, YColumn: 1})
		require.Error(t, err, "value %q must be rejected", bad)
		assert.Contains(t, err.Error(), "not finite")
	}
}

func TestEachCallbackErrorAborts(t *testing.T) {
	t.Parallel()

	s, err := NewSource(strings.NewReader("header\n1 2\n3 4\n"), Options{XColumn: 0, YColumn: 1})
	require.NoError(t, err)

	calls := 0
	err = s.Each(func(x, y float64) error {
		calls++
		return os.ErrClosed
	})
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Records())
}

func TestEachRecordCount(t *testing.T) {
	t.Parallel()

	s, err := NewSource(strings.NewReader("header\n1 2\n3 4\n5 6\n"), Options{XColumn: 0, YColumn: 1})
	require.NoError(t, err)
	require.NoError(t, s.Each(func(x, y float64) error { return nil }))
	assert.Equal(t, 3, s.Records())
}

func TestEachHeaderOnly(t *testing.T) {
	t.Parallel()

	got, err := collect(t, "just a header\n", Options{XColumn: 0, YColumn: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewSourceValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSource(strings.NewReader(""), Options{XColumn: -1, YColumn: 0})
	assert.Error(t, err)

	_, err = NewSource(strings.NewReader(""), Options{XColumn: 0, YColumn: 0, BufferSize: -5})
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("x y\n0.25 0.75\n"), 0644))

	s, err := Open(path, Options{XColumn: 0, YColumn: 1})
	require.NoError(t, err)
	defer s.Close()

	var got []pair
	require.NoError(t, s.Each(func(x, y float64) error {
		got = append(got, pair{x, y})
		return nil
	}))
	assert.Equal(t, []pair{{0.25, 0.75}}, got)
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "absent.txt"), Options{})
	assert.Error(t, err)
}

package indicator

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/trendline/internal/series"
)

var null = math.NaN()

// index returns 0..n-1 as x values.
func index(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func mustSeries(t testing.TB, ys ...float64) series.Series {
	t.Helper()
	s, err := series.FromNaN(index(len(ys)), ys)
	require.NoError(t, err)
	return s
}

// assertYs compares y values, with NaN standing for null.
func assertYs(t *testing.T, expected []float64, got series.Series) {
	t.Helper()
	require.Equal(t, len(expected), got.Len(), "series length mismatch")
	for i, want := range expected {
		if math.IsNaN(want) {
			assert.True(t, got.Y[i].IsNone(), "expected null at index %d, got %v", i, got.Y[i])
			continue
		}
		if assert.True(t, got.Y[i].IsSome(), "expected %v at index %d, got null", want, i) {
			assert.InDelta(t, want, got.Y[i].Unwrap(), 1e-9, "mismatch at index %d", i)
		}
	}
}

func compat() Options {
	return Options{Compat: true}
}

func standard() Options {
	return Options{}
}

func some(v float64) optional.Option[float64] {
	return optional.Some(v)
}

// wave is a deterministic, non-monotonic price series.
func wave(n int) []float64 {
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i%7) - 3
	}
	return ys
}

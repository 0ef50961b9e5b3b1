package indicator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/trendline/internal/series"
)

func TestLinear(t *testing.T) {
	t.Run("Perfect line", func(t *testing.T) {
		out, err := Linear(mustSeries(t, 2, 4, 6, 8, 10), 0, compat())
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 4}, out.X)
		assertYs(t, []float64{2, 10}, out)
	})

	t.Run("Left end pinned to the observed value", func(t *testing.T) {
		out, err := Linear(mustSeries(t, 1, 5, 3), 100, compat())
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 2}, out.X)
		// fitted line is y = x + 2, so x=0 would give 2
		assertYs(t, []float64{1, 4}, out)
	})

	t.Run("Timestamps as x", func(t *testing.T) {
		xs := []float64{1_700_000_000_000, 1_700_000_060_000, 1_700_000_120_000}
		in, err := series.New(xs, []float64{10, 11, 12})
		require.NoError(t, err)

		fit, err := FitLinear(in)
		require.NoError(t, err)
		assert.InDelta(t, 1.0/60_000, fit.Slope, 1e-12)

		out, err := Linear(in, 0, compat())
		require.NoError(t, err)
		assert.Equal(t, some(10), out.Y[0])
		assert.InDelta(t, fit.At(xs[2]), out.Y[1].Unwrap(), 1e-9)
	})
}

func TestFitLinear(t *testing.T) {
	fit, err := FitLinear(mustSeries(t, 2, 4, 6, 8, 10))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 2.0, fit.Intercept, 1e-12)
}

func TestLinearErrors(t *testing.T) {
	t.Run("Single point", func(t *testing.T) {
		_, err := Linear(mustSeries(t, 5), 0, compat())
		assert.True(t, errors.Is(err, ErrInsufficientData))
	})

	t.Run("All x equal", func(t *testing.T) {
		in, err := series.New([]float64{3, 3, 3}, []float64{1, 2, 3})
		require.NoError(t, err)
		_, err = Linear(in, 0, compat())
		assert.True(t, errors.Is(err, ErrDegenerateRegression))
	})

	t.Run("Gap", func(t *testing.T) {
		_, err := Linear(mustSeries(t, 1, null, 3), 0, compat())
		assert.True(t, errors.Is(err, ErrMissingValue))
	})

	t.Run("Mismatched lengths", func(t *testing.T) {
		in := series.Series{X: []float64{0}, Y: mustSeries(t, 1, 2).Y}
		_, err := Linear(in, 0, compat())
		assert.True(t, errors.Is(err, ErrMismatchedLengths))
	})
}

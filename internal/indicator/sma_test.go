package indicator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/trendline/internal/series"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name     string
		ys       []float64
		period   int
		expected []float64
	}{
		{
			name:     "Rising series",
			ys:       []float64{1, 2, 3, 4, 5},
			period:   3,
			expected: []float64{null, null, 2, 3, 4},
		},
		{
			name:     "Period one echoes input",
			ys:       []float64{4, 8, 15},
			period:   1,
			expected: []float64{4, 8, 15},
		},
		{
			name:     "Window equal to length",
			ys:       []float64{2, 4, 6, 8},
			period:   4,
			expected: []float64{null, null, null, 5},
		},
		{
			name:     "Gap nulls every window holding it",
			ys:       []float64{1, null, 3, 4, 5},
			period:   2,
			expected: []float64{null, null, null, 3.5, 4.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SMA(mustSeries(t, tt.ys...), tt.period, compat())
			require.NoError(t, err)
			assertYs(t, tt.expected, out)
			assert.Equal(t, index(len(tt.ys)), out.X)
		})
	}
}

func TestSMAWindowMean(t *testing.T) {
	ys := wave(60)
	period := 7
	out, err := SMA(mustSeries(t, ys...), period, compat())
	require.NoError(t, err)

	for i := period - 1; i < len(ys); i++ {
		sum := 0.0
		for _, v := range ys[i-period+1 : i+1] {
			sum += v
		}
		assert.InDelta(t, sum/float64(period), out.Y[i].Unwrap(), 1e-9, "index %d", i)
	}
}

func TestSMAErrors(t *testing.T) {
	t.Run("Invalid period", func(t *testing.T) {
		_, err := SMA(mustSeries(t, 1, 2, 3), 0, compat())
		assert.True(t, errors.Is(err, ErrInvalidPeriod))
	})

	t.Run("Insufficient data", func(t *testing.T) {
		_, err := SMA(mustSeries(t, 1, 2, 3), 4, compat())
		assert.True(t, errors.Is(err, ErrInsufficientData))
	})

	t.Run("Insufficient data allowed", func(t *testing.T) {
		out, err := SMA(mustSeries(t, 1, 2, 3), 4, Options{AllowShort: true})
		require.NoError(t, err)
		assertYs(t, []float64{null, null, null}, out)
	})

	t.Run("Mismatched lengths", func(t *testing.T) {
		in := series.Series{X: []float64{0, 1}, Y: mustSeries(t, 1).Y}
		_, err := SMA(in, 1, compat())
		assert.True(t, errors.Is(err, ErrMismatchedLengths))
	})
}

func BenchmarkSMA(b *testing.B) {
	in := mustSeries(b, wave(1000)...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = SMA(in, 20, compat())
	}
}

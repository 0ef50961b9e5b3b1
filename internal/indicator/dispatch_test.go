package indicator

import (
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	for _, name := range []string{"MACD", "signalLine", "histogram", "SMA", "EMA", "RSI", "linear"} {
		a, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, a.String())
	}

	_, err := ParseAlgorithm("sma")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	_, err = ParseAlgorithm("bollinger")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindTrendline, k)
	assert.Equal(t, AlgorithmLinear, k.DefaultAlgorithm())

	k, err = ParseKind("histogram")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmHistogram, k.DefaultAlgorithm())
	assert.True(t, k.Supports(AlgorithmHistogram))
	assert.False(t, k.Supports(AlgorithmSMA))

	assert.False(t, KindTrendline.Supports(AlgorithmHistogram))
	assert.False(t, KindTrendline.Supports(Algorithm(42)))

	_, err = ParseKind("candlestick")
	assert.Error(t, err)
}

func TestDispatcherResolve(t *testing.T) {
	d := NewDispatcher(DefaultOptions())

	t.Run("Default period", func(t *testing.T) {
		ind, err := d.Resolve(KindTrendline, "SMA", nil)
		require.NoError(t, err)
		assert.Equal(t, "SMA", ind.Name())
		assert.Equal(t, DefaultPeriod, ind.(*bound).period)
	})

	t.Run("Zero period falls back", func(t *testing.T) {
		ind, err := d.Resolve(KindTrendline, "EMA", []int{0})
		require.NoError(t, err)
		assert.Equal(t, DefaultPeriod, ind.(*bound).period)
	})

	t.Run("MACD periods", func(t *testing.T) {
		ind, err := d.Resolve(KindTrendline, "signalLine", []int{5, 0})
		require.NoError(t, err)
		assert.Equal(t, MACDPeriods{5, 26, 9}, ind.(*bound).macd)
	})

	t.Run("Kind defaults", func(t *testing.T) {
		ind, err := d.Resolve(KindTrendline, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "linear", ind.Name())

		ind, err = d.Resolve(KindHistogram, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "histogram", ind.Name())
	})

	t.Run("Histogram only on histogram series", func(t *testing.T) {
		_, err := d.Resolve(KindTrendline, "histogram", nil)
		assert.True(t, errors.Is(err, ErrUnknownAlgorithm))

		_, err = d.Resolve(KindHistogram, "RSI", nil)
		assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	})
}

func TestDispatcherRun(t *testing.T) {
	d := NewDispatcher(DefaultOptions())
	in := mustSeries(t, 1, 2, 3, 4, 5)

	t.Run("SMA", func(t *testing.T) {
		out, err := d.Run(Request{Algorithm: "SMA", Series: in, Periods: []int{3}})
		require.NoError(t, err)
		assertYs(t, []float64{null, null, 2, 3, 4}, out)
	})

	t.Run("Linear by default", func(t *testing.T) {
		out, err := d.Run(Request{Series: mustSeries(t, 2, 4, 6, 8, 10)})
		require.NoError(t, err)
		assertYs(t, []float64{2, 10}, out)
	})

	t.Run("MACD family agrees with MACD", func(t *testing.T) {
		prices := mustSeries(t, wave(60)...)
		res, err := MACD(prices, DefaultMACDPeriods(), DefaultOptions())
		require.NoError(t, err)

		line, err := d.Run(Request{Algorithm: "MACD", Series: prices})
		require.NoError(t, err)
		assert.Equal(t, res.MACD, line)

		signal, err := d.Run(Request{Algorithm: "signalLine", Series: prices, Periods: []int{0, 0, 0}})
		require.NoError(t, err)
		assert.Equal(t, res.Signal, signal)

		hist, err := d.Run(Request{Kind: KindHistogram, Series: prices})
		require.NoError(t, err)
		assert.Equal(t, res.Histogram, hist)
	})

	t.Run("Default period exceeds short series", func(t *testing.T) {
		_, err := d.Run(Request{Algorithm: "RSI", Series: in})
		assert.True(t, errors.Is(err, ErrInsufficientData))
	})

	t.Run("Unknown algorithm", func(t *testing.T) {
		_, err := d.Run(Request{Algorithm: "VWAP", Series: in})
		assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	})
}

func TestDispatcherConcurrent(t *testing.T) {
	d := NewDispatcher(DefaultOptions())
	in := mustSeries(t, wave(300)...)
	want, err := d.Run(Request{Algorithm: "RSI", Series: in, Periods: []int{14}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := d.Run(Request{Algorithm: "RSI", Series: in, Periods: []int{14}})
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestDispatcherTrace(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	d := NewDispatcher(Options{Compat: true, Logger: logger})
	_, err := d.Run(Request{Algorithm: "RSI", Series: mustSeries(t, 1, 2, 3, 2, 3, 4), Periods: []int{2}})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "RSI", entry.Data["indicator"])
	assert.Equal(t, 5, entry.Data["defined"])
	assert.Equal(t, 87.5, entry.Data["last"])
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/trendline/internal/candle"
	"github.com/amirphl/trendline/internal/config"
	"github.com/amirphl/trendline/internal/db"
	"github.com/amirphl/trendline/internal/indicator"
)

func csvConfig() config.Config {
	return config.Config{
		Kind:       "trendline",
		Source:     config.SourceCSV,
		CSVXColumn: "x",
		CSVYColumn: "y",
		Format:     config.FormatJSON,
		Compat:     true,
	}
}

func TestRunCSVToJSON(t *testing.T) {
	cfg := csvConfig()
	cfg.Algorithm = "SMA"
	cfg.Periods = []int{2}

	var out bytes.Buffer
	err := run(context.Background(), cfg, strings.NewReader("x,y\n0,1\n1,3\n2,5\n"), &out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"SMA","data":[[0,null],[1,2],[2,4]]}]`, out.String())
}

func TestRunDefaultLinearToCSV(t *testing.T) {
	cfg := csvConfig()
	cfg.Format = config.FormatCSV
	cfg.PlotName = "trend"

	var out bytes.Buffer
	err := run(context.Background(), cfg, strings.NewReader("x,y\n0,1\n1,3\n2,5\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "name,x,y\ntrend,0,1\ntrend,2,5\n", out.String())
}

func TestRunPropagatesIndicatorErrors(t *testing.T) {
	cfg := csvConfig()
	cfg.Algorithm = "RSI"
	cfg.Periods = []int{14}

	var out bytes.Buffer
	err := run(context.Background(), cfg, strings.NewReader("x,y\n0,1\n1,2\n"), &out)
	assert.ErrorIs(t, err, indicator.ErrInsufficientData)
	assert.Empty(t, out.String())
}

func TestLoadCandlesFromStorage(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	storage := db.NewMemory()

	var candles []candle.Candle
	for i, c := range []float64{10, 11, 12, 13, 14, 15} {
		candles = append(candles, candle.Candle{
			Symbol:    "BTCUSDT",
			Timeframe: "1m",
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1,
			Source:    "wallex",
		})
	}
	require.NoError(t, storage.SaveCandles(ctx, candles))

	cfg := config.Config{
		Symbol:    "BTCUSDT",
		Timeframe: "1m",
		From:      start,
		To:        start.Add(time.Hour),
		Field:     "close",
	}
	s, err := loadCandles(ctx, cfg, storage)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, float64(start.UnixMilli()), s.X[0])

	cfg.Aggregate = "5m"
	s, err = loadCandles(ctx, cfg, storage)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 14.0, s.Y[0].Unwrap())
	assert.Equal(t, 15.0, s.Y[1].Unwrap())
}

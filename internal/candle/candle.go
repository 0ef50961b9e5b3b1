// Package candle
package candle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amirphl/trendline/internal/series"
	"github.com/amirphl/trendline/internal/tfutils"
)

type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Source    string    `json:"source"`
}

// Storage is implemented by every candle store a series can be loaded from.
type Storage interface {
	SaveCandles(ctx context.Context, candles []Candle) error
	GetCandles(ctx context.Context, symbol, timeframe, source string, start, end time.Time) ([]Candle, error)
}

// Fetcher loads candles from a remote market.
type Fetcher interface {
	Name() string
	FetchCandles(ctx context.Context, symbol, timeframe string, start, end time.Time) ([]Candle, error)
}

// Validate checks if a candle has valid data
func (c *Candle) Validate() error {
	if c.Timestamp.IsZero() {
		return errors.New("candle timestamp is zero")
	}
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return errors.New("candle prices must be positive")
	}
	if c.High < c.Low {
		return errors.New("candle high cannot be less than low")
	}
	if c.Open < c.Low || c.Open > c.High {
		return errors.New("candle open price must be between high and low")
	}
	if c.Close < c.Low || c.Close > c.High {
		return errors.New("candle close price must be between high and low")
	}
	if c.Volume < 0 {
		return errors.New("candle volume cannot be negative")
	}
	if c.Symbol == "" {
		return errors.New("candle symbol cannot be empty")
	}
	if !tfutils.IsValidTimeframe(c.Timeframe) {
		return fmt.Errorf("candle timeframe %q is not supported", c.Timeframe)
	}
	return nil
}

// Field selects which candle value becomes the y of a series.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// ParseField accepts a field name case-insensitively; empty means close.
func ParseField(name string) (Field, error) {
	switch f := Field(strings.ToLower(name)); f {
	case "":
		return FieldClose, nil
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return f, nil
	default:
		return "", fmt.Errorf("unknown candle field %q", name)
	}
}

// Value returns the selected field.
func (c Candle) Value(f Field) float64 {
	switch f {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	case FieldVolume:
		return c.Volume
	default:
		return c.Close
	}
}

// ToSeries projects candles onto a series: x is the open time in Unix
// milliseconds and y the selected field. Candles are ordered by timestamp
// and the input slice is left untouched.
func ToSeries(candles []Candle, f Field) (series.Series, error) {
	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, c := range sorted {
		if i > 0 && !c.Timestamp.After(sorted[i-1].Timestamp) {
			return series.Series{}, fmt.Errorf("duplicate candle at %s", c.Timestamp.Format(time.RFC3339))
		}
		xs[i] = float64(c.Timestamp.UnixMilli())
		ys[i] = c.Value(f)
	}
	return series.New(xs, ys)
}

package exchange

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	wallex "github.com/wallexchange/wallex-go"

	"github.com/amirphl/trendline/internal/candle"
	"github.com/amirphl/trendline/internal/tfutils"
	"github.com/amirphl/trendline/internal/utils"
)

// candleClient is the slice of the Wallex client used for chart history.
type candleClient interface {
	Candles(symbol, resolution string, from, to time.Time) ([]*wallex.Candle, error)
}

type WallexExchange struct {
	client   candleClient
	attempts int
	delay    time.Duration
}

var _ candle.Fetcher = (*WallexExchange)(nil)

func NewWallexExchange(apiKey string) *WallexExchange {
	return &WallexExchange{
		client:   wallex.New(wallex.ClientOptions{APIKey: apiKey}),
		attempts: 3,
		delay:    2 * time.Second,
	}
}

func (w *WallexExchange) Name() string {
	return "wallex"
}

func (w *WallexExchange) FetchCandles(ctx context.Context, symbol string, timeframe string, start, end time.Time) ([]candle.Candle, error) {
	if !tfutils.IsValidTimeframe(timeframe) {
		return nil, fmt.Errorf("unsupported timeframe: %s", timeframe)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("empty range %s..%s", start, end)
	}

	normalizedTimeframe := NormalizedTimeframe(timeframe)
	normalizedSymbol := NormalizeSymbol(symbol)
	log := utils.GetLogger().WithField("exchange", w.Name())

	var wallexCandles []*wallex.Candle

	select {
	case <-ctx.Done():
		log.Warn("FetchCandles cancelled")
		return nil, ctx.Err()

	default:
		err := retry(w.attempts, w.delay, func() error {
			var err error
			wallexCandles, err = w.client.Candles(normalizedSymbol, normalizedTimeframe, start, end)
			if err != nil {
				return fmt.Errorf("fetching candles: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("FetchCandles failed: %w", err)
		}
	}

	candles := make([]candle.Candle, 0, len(wallexCandles))
	skipped := 0
	for _, wc := range wallexCandles {
		if wc == nil {
			continue
		}
		c := candle.Candle{
			Timestamp: wc.Timestamp.UTC().Truncate(time.Minute),
			Open:      parseNumber(wc.Open),
			High:      parseNumber(wc.High),
			Low:       parseNumber(wc.Low),
			Close:     parseNumber(wc.Close),
			Volume:    parseNumber(wc.Volume),
			Symbol:    symbol,
			Timeframe: timeframe,
			Source:    w.Name(),
		}

		if err := c.Validate(); err != nil {
			skipped++
			continue
		}

		candles = append(candles, c)
	}

	log.WithFields(logrus.Fields{
		"symbol":  symbol,
		"fetched": len(candles),
		"skipped": skipped,
	}).Debug("candles fetched")

	return candles, nil
}

// FetchLatestCandles fetches the most recent candles for a symbol and timeframe
func (w *WallexExchange) FetchLatestCandles(ctx context.Context, symbol string, timeframe string, count int) ([]candle.Candle, error) {
	end := time.Now().UTC()
	duration := tfutils.GetTimeframeDuration(timeframe)
	if duration == 0 {
		return nil, fmt.Errorf("invalid timeframe: %s", timeframe)
	}

	start := end.Add(-duration * time.Duration(count))

	return w.FetchCandles(ctx, symbol, timeframe, start, end)
}

func parseNumber(n wallex.Number) float64 {
	out, _ := strconv.ParseFloat(string(n), 64)
	return out
}

package candle

import (
	"fmt"
	"sort"
	"time"

	"github.com/amirphl/trendline/internal/tfutils"
)

// Aggregate resamples candles of one symbol and timeframe into a larger
// timeframe. Each bucket is stamped with its start time; buckets with no
// source candles are simply absent.
func Aggregate(candles []Candle, timeframe string) ([]Candle, error) {
	if len(candles) == 0 {
		return nil, nil
	}

	dur, err := tfutils.ParseTimeframe(timeframe)
	if err != nil {
		return nil, fmt.Errorf("invalid timeframe %s: %w", timeframe, err)
	}

	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	symbol := sorted[0].Symbol
	sourceTf := sorted[0].Timeframe
	if tfutils.GetTimeframeDuration(sourceTf) >= dur {
		return nil, fmt.Errorf("source timeframe %s must be smaller than target timeframe %s", sourceTf, timeframe)
	}

	buckets := make(map[time.Time][]Candle)
	for i, c := range sorted {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid candle at index %d: %w", i, err)
		}
		if c.Symbol != symbol {
			return nil, fmt.Errorf("candle at index %d has different symbol: %s, expected: %s", i, c.Symbol, symbol)
		}
		if c.Timeframe != sourceTf {
			return nil, fmt.Errorf("candle at index %d has different timeframe: %s, expected: %s", i, c.Timeframe, sourceTf)
		}
		bucket := c.Timestamp.UTC().Truncate(dur)
		buckets[bucket] = append(buckets[bucket], c)
	}

	result := make([]Candle, 0, len(buckets))
	for bucket, group := range buckets {
		agg := Candle{
			Timestamp: bucket,
			Open:      group[0].Open,
			High:      group[0].High,
			Low:       group[0].Low,
			Close:     group[len(group)-1].Close,
			Symbol:    symbol,
			Timeframe: timeframe,
			Source:    "constructed",
		}
		for _, c := range group {
			agg.High = max(agg.High, c.High)
			agg.Low = min(agg.Low, c.Low)
			agg.Volume += c.Volume
		}
		result = append(result, agg)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

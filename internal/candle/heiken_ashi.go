// Package candle
package candle

// GenerateHeikenAshiCandles generates Heiken Ashi candles from raw candles.
// Input candles must be sorted by timestamp ascending.
func GenerateHeikenAshiCandles(rawCandles []Candle) []Candle {
	if len(rawCandles) == 0 {
		return nil
	}

	haCandles := make([]Candle, len(rawCandles))
	var prev *Candle
	for i, c := range rawCandles {
		haCandles[i] = GenerateNextHeikenAshiCandle(prev, c)
		prev = &haCandles[i]
	}
	return haCandles
}

// GenerateNextHeikenAshiCandle generates the next Heiken Ashi candle given the previous Heiken Ashi candle and a new raw candle.
// prevHA can be nil for the first candle.
func GenerateNextHeikenAshiCandle(prevHA *Candle, raw Candle) Candle {
	ha := raw // copy base fields
	ha.Close = (raw.Open + raw.High + raw.Low + raw.Close) / 4
	if prevHA == nil {
		ha.Open = (raw.Open + raw.Close) / 2
	} else {
		ha.Open = (prevHA.Open + prevHA.Close) / 2
	}
	ha.High = max(raw.High, ha.Open, ha.Close)
	ha.Low = min(raw.Low, ha.Open, ha.Close)
	ha.Source = "heiken_ashi"
	return ha
}

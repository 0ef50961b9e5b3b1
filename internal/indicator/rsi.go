package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"gonum.org/v1/gonum/floats"

	"github.com/amirphl/trendline/internal/series"
)

// compatRSIUnset is emitted in Compat mode at index period-1, before any
// average exists; the chart plugin's unset averages make the ratio 1.
const compatRSIUnset = 50

// RSI computes the Relative Strength Index with Wilder smoothing.
// Deltas are rounded to six decimals. The first period gains and losses seed
// the averages with their mean; later averages use
// avg = (prev*(period-1) + current) / period.
func RSI(in series.Series, period int, opts Options) (series.Series, error) {
	if err := checkInput("RSI", in, period); err != nil {
		return series.Series{}, err
	}
	if err := checkGapFree("RSI", in); err != nil {
		return series.Series{}, err
	}
	if in.Len() < period+1 {
		return short("RSI", in, period+1, opts)
	}

	out := series.Nulls(in.X)
	gains := make([]float64, 0, period)
	losses := make([]float64, 0, period)

	var avgGain, avgLoss, prevGain, prevLoss float64
	gainSet, lossSet, prevSet := false, false, false
	filled := 0

	for i := range in.Y {
		filled++

		if i > 0 {
			delta := roundDelta(in.Y[i].Unwrap() - in.Y[i-1].Unwrap())
			gain := math.Max(delta, 0)
			loss := math.Max(-delta, 0)

			if !prevSet {
				if len(gains) < period {
					gains = append(gains, gain)
				}
				if len(losses) < period {
					losses = append(losses, loss)
				}
				if len(gains) == period {
					avgGain = floats.Sum(gains) / float64(period)
					gainSet = true
				}
				if len(losses) == period {
					avgLoss = floats.Sum(losses) / float64(period)
					lossSet = true
				}
			} else {
				avgGain = (prevGain*float64(period-1) + gain) / float64(period)
				avgLoss = (prevLoss*float64(period-1) + loss) / float64(period)
			}
		}

		if filled < period {
			continue
		}

		switch {
		case gainSet && lossSet:
			out.Y[i] = optional.Some(rsiValue(avgGain, avgLoss))
		case opts.Compat:
			out.Y[i] = optional.Some(float64(compatRSIUnset))
		}

		filled--
		prevGain, prevLoss = avgGain, avgLoss
		prevSet = gainSet && lossSet
	}

	opts.trace("RSI", period, out)
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgGain == 0 {
		return 0
	}
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

func roundDelta(d float64) float64 {
	return math.Round(d*1e6) / 1e6
}

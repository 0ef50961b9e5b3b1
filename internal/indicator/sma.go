package indicator

import (
	"github.com/moznion/go-optional"
	"gonum.org/v1/gonum/floats"

	"github.com/amirphl/trendline/internal/series"
)

// SMA computes the simple moving average over a trailing window of period samples.
// Positions before the window fills are null. A window that holds a null
// produces a null rather than a mean over fewer samples.
func SMA(in series.Series, period int, opts Options) (series.Series, error) {
	if err := checkInput("SMA", in, period); err != nil {
		return series.Series{}, err
	}
	if in.Len() < period {
		return short("SMA", in, period, opts)
	}

	out := series.Nulls(in.X)
	window := make([]optional.Option[float64], 0, period)
	values := make([]float64, period)
	for i, y := range in.Y {
		window = append(window, y)
		if len(window) < period {
			continue
		}

		complete := true
		for j, w := range window {
			if w.IsNone() {
				complete = false
				break
			}
			values[j] = w.Unwrap()
		}
		if complete {
			out.Y[i] = optional.Some(floats.Sum(values) / float64(period))
		}

		// Drop the oldest sample.
		window = append(window[:0], window[1:]...)
	}

	opts.trace("SMA", period, out)
	return out, nil
}

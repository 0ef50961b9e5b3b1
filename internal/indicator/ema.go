package indicator

import (
	"github.com/moznion/go-optional"
	"gonum.org/v1/gonum/floats"

	"github.com/amirphl/trendline/internal/series"
)

// EMA computes the exponential moving average with k = 2/(period+1).
//
// Samples are collected into a seed buffer; when it first holds period
// values their mean is emitted as the seed, and every later emission applies
// EMA(t) = y(t)*k + EMA(t-1)*(1-k). In Compat mode a sample is admitted only
// when the previous y is set and non-zero, so the first sample never enters
// the seed and gaps delay the buffer by one extra position.
func EMA(in series.Series, period int, opts Options) (series.Series, error) {
	if err := checkInput("EMA", in, period); err != nil {
		return series.Series{}, err
	}
	need := period
	if opts.Compat {
		need = period + 1
	}
	if in.Len() < need {
		return short("EMA", in, need, opts)
	}

	k := 2.0 / float64(period+1)
	out := series.Nulls(in.X)
	buf := make([]float64, 0, period)
	var prev float64
	seeded := false
	for i, y := range in.Y {
		if admit(in, i, opts.Compat) {
			buf = append(buf, y.Unwrap())
		}
		if len(buf) != period {
			continue
		}

		if !seeded {
			prev = floats.Sum(buf) / float64(period)
			seeded = true
		} else {
			prev = y.Unwrap()*k + prev*(1-k)
		}
		out.Y[i] = optional.Some(prev)

		buf = append(buf[:0], buf[1:]...)
	}

	opts.trace("EMA", period, out)
	return out, nil
}

// admit decides whether y[i] enters the EMA buffer.
func admit(in series.Series, i int, compat bool) bool {
	if in.Y[i].IsNone() {
		return false
	}
	if !compat {
		return true
	}
	if i == 0 || in.Y[i-1].IsNone() {
		return false
	}
	return in.Y[i-1].Unwrap() != 0
}

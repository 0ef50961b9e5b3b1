package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/pkg/errors"

	"github.com/amirphl/trendline/internal/series"
)

const (
	DefaultMACDShort  = 12
	DefaultMACDLong   = 26
	DefaultMACDSignal = 9
)

// MACDPeriods holds the (short, long, signal) EMA periods.
type MACDPeriods struct {
	Short  int
	Long   int
	Signal int
}

func DefaultMACDPeriods() MACDPeriods {
	return MACDPeriods{Short: DefaultMACDShort, Long: DefaultMACDLong, Signal: DefaultMACDSignal}
}

// ResolveMACDPeriods applies overrides positionally; a zero or missing entry
// keeps that position's default and entries past the third are ignored.
func ResolveMACDPeriods(overrides []int) MACDPeriods {
	p := DefaultMACDPeriods()
	if len(overrides) >= 1 && overrides[0] != 0 {
		p.Short = overrides[0]
	}
	if len(overrides) >= 2 && overrides[1] != 0 {
		p.Long = overrides[1]
	}
	if len(overrides) >= 3 && overrides[2] != 0 {
		p.Signal = overrides[2]
	}
	return p
}

// Validate requires positive periods with both short and signal below long.
func (p MACDPeriods) Validate() error {
	if p.Short <= 0 || p.Long <= 0 || p.Signal <= 0 {
		return errors.Wrapf(ErrInvalidPeriod, "MACD: periods must be positive, got %d/%d/%d", p.Short, p.Long, p.Signal)
	}
	if p.Short >= p.Long {
		return errors.Wrapf(ErrInvalidPeriod, "MACD: short period %d must be below long period %d", p.Short, p.Long)
	}
	if p.Signal >= p.Long {
		return errors.Wrapf(ErrInvalidPeriod, "MACD: signal period %d must be below long period %d", p.Signal, p.Long)
	}
	return nil
}

// MACDResult holds the three MACD outputs, each aligned to the input x values.
type MACDResult struct {
	MACD      series.Series
	Signal    series.Series
	Histogram series.Series
}

// MACD computes the MACD line (short EMA - long EMA), its signal line (an EMA
// of the MACD line, leading nulls included) and the histogram (MACD - signal).
func MACD(in series.Series, p MACDPeriods, opts Options) (MACDResult, error) {
	if err := in.Validate(); err != nil {
		return MACDResult{}, errors.Wrap(err, "MACD")
	}
	if err := p.Validate(); err != nil {
		return MACDResult{}, err
	}

	shortEMA, err := EMA(in, p.Short, opts)
	if err != nil {
		return MACDResult{}, errors.Wrap(err, "MACD short EMA")
	}
	longEMA, err := EMA(in, p.Long, opts)
	if err != nil {
		return MACDResult{}, errors.Wrap(err, "MACD long EMA")
	}

	line := series.Nulls(in.X)
	for i := range line.Y {
		if longEMA.Y[i].IsNone() || shortEMA.Y[i].IsNone() {
			continue
		}
		line.Y[i] = optional.Some(shortEMA.Y[i].Unwrap() - longEMA.Y[i].Unwrap())
	}

	signal, err := EMA(line, p.Signal, opts)
	if err != nil {
		return MACDResult{}, errors.Wrap(err, "MACD signal EMA")
	}

	hist := series.Nulls(line.X)
	for i, m := range line.Y {
		if m.IsNone() {
			continue
		}
		s := signal.Y[i]
		switch {
		case s.IsSome():
			hist.Y[i] = optional.Some(m.Unwrap() - s.Unwrap())
		case opts.Compat:
			// a warming signal counts as zero
			hist.Y[i] = m
		}
	}

	opts.logger("MACD").
		WithField("periods", p).
		WithField("defined", hist.Defined()).
		Debug("MACD computed")

	return MACDResult{MACD: line, Signal: signal, Histogram: hist}, nil
}

// Package indicator turns a raw x/y series into derived technical-analysis series.
//
// Every function here is a pure computation over its arguments: inputs are
// never retained or mutated and no state survives between calls, so callers
// may share a Dispatcher across goroutines.
package indicator

import (
	"github.com/sirupsen/logrus"

	"github.com/amirphl/trendline/internal/series"
)

// Indicator is the interface for all technical indicators bound to their parameters.
type Indicator interface {
	Name() string
	Calculate(in series.Series) (series.Series, error)
}

// Options tunes behaviour shared by all indicators.
type Options struct {
	// Compat reproduces the numeric output of the chart plugin it replaces,
	// including its EMA seed-window offset, the RSI value emitted before the
	// averages are established and the MACD histogram during signal warm-up.
	Compat bool

	// AllowShort makes series shorter than the warm-up window yield all-null
	// output instead of ErrInsufficientData.
	AllowShort bool

	// Logger receives debug traces. Nil falls back to the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultOptions keeps output compatible with the chart plugin.
func DefaultOptions() Options {
	return Options{Compat: true}
}

func (o Options) logger(name string) logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger.WithField("indicator", name)
	}
	return logrus.WithField("indicator", name)
}

// trace logs a computed series at debug level.
func (o Options) trace(name string, period int, out series.Series) {
	log := o.logger(name)
	entry := log.WithFields(logrus.Fields{
		"period":  period,
		"points":  out.Len(),
		"defined": out.Defined(),
	})
	if n := out.Len(); n > 0 && out.Y[n-1].IsSome() {
		entry = entry.WithField("last", out.Y[n-1].Unwrap())
	}
	entry.Debug("series computed")
}

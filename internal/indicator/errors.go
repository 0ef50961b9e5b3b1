package indicator

import (
	"github.com/pkg/errors"

	"github.com/amirphl/trendline/internal/series"
)

var (
	// ErrInvalidPeriod is returned for non-positive periods and for MACD
	// periods whose warm-up ordering makes no sense.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInsufficientData is returned when the series is shorter than the warm-up window.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateRegression is returned when every x is identical.
	ErrDegenerateRegression = errors.New("degenerate regression: all x values are equal")

	// ErrMismatchedLengths is returned when x and y differ in length.
	ErrMismatchedLengths = series.ErrMismatchedLengths

	// ErrUnknownAlgorithm is returned by the dispatcher for names it cannot map.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrMissingValue is returned by indicators that need a gap-free series.
	ErrMissingValue = errors.New("missing value")
)

// checkInput validates the length invariant and the period.
func checkInput(name string, in series.Series, period int) error {
	if err := in.Validate(); err != nil {
		return errors.Wrap(err, name)
	}
	if period <= 0 {
		return errors.Wrapf(ErrInvalidPeriod, "%s: period must be positive, got %d", name, period)
	}
	return nil
}

// checkGapFree rejects series with null y values.
func checkGapFree(name string, in series.Series) error {
	for i, y := range in.Y {
		if y.IsNone() {
			return errors.Wrapf(ErrMissingValue, "%s: y[%d] is null", name, i)
		}
	}
	return nil
}

// short handles a series below the warm-up window.
func short(name string, in series.Series, need int, opts Options) (series.Series, error) {
	if opts.AllowShort {
		return series.Nulls(in.X), nil
	}
	return series.Series{}, errors.Wrapf(ErrInsufficientData, "%s: need %d points, have %d", name, need, in.Len())
}

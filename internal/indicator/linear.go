package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/amirphl/trendline/internal/series"
)

// LinearFit is an ordinary least-squares line y = Slope*x + Intercept.
type LinearFit struct {
	Slope     float64
	Intercept float64
}

func (f LinearFit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// FitLinear fits a line through every point of the series.
func FitLinear(in series.Series) (LinearFit, error) {
	if err := in.Validate(); err != nil {
		return LinearFit{}, errors.Wrap(err, "linear")
	}
	if err := checkGapFree("linear", in); err != nil {
		return LinearFit{}, err
	}
	if in.Len() < 2 {
		return LinearFit{}, errors.Wrapf(ErrInsufficientData, "linear: need 2 points, have %d", in.Len())
	}

	xs := in.X
	ys := in.Values()
	if floats.Max(xs) == floats.Min(xs) {
		return LinearFit{}, errors.Wrapf(ErrDegenerateRegression, "linear: x=%v", xs[0])
	}

	// Centred least squares; algebraically the same as
	// (n*Sxy - Sx*Sy) / (n*Sxx - Sx^2) without the cancellation on large x.
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return LinearFit{Slope: slope, Intercept: intercept}, nil
}

// Linear returns the two-point trend line of the whole series. The left end is
// pinned to the first observed point; the right end is the fitted value at
// the last x. period is accepted for a uniform signature and ignored.
func Linear(in series.Series, period int, opts Options) (series.Series, error) {
	fit, err := FitLinear(in)
	if err != nil {
		return series.Series{}, err
	}

	last := in.Len() - 1
	out := series.Series{
		X: []float64{in.X[0], in.X[last]},
		Y: []optional.Option[float64]{in.Y[0], optional.Some(fit.At(in.X[last]))},
	}

	opts.logger("linear").
		WithField("slope", fit.Slope).
		WithField("intercept", fit.Intercept).
		Debug("trend line fitted")
	return out, nil
}

package indicator

import (
	"github.com/pkg/errors"

	"github.com/amirphl/trendline/internal/series"
)

// DefaultPeriod is used for non-MACD algorithms when no period is given.
const DefaultPeriod = 100

// Algorithm identifies one of the supported computations.
type Algorithm int

const (
	AlgorithmMACD Algorithm = iota + 1
	AlgorithmSignalLine
	AlgorithmHistogram
	AlgorithmSMA
	AlgorithmEMA
	AlgorithmRSI
	AlgorithmLinear
)

var algorithmNames = map[Algorithm]string{
	AlgorithmMACD:       "MACD",
	AlgorithmSignalLine: "signalLine",
	AlgorithmHistogram:  "histogram",
	AlgorithmSMA:        "SMA",
	AlgorithmEMA:        "EMA",
	AlgorithmRSI:        "RSI",
	AlgorithmLinear:     "linear",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlgorithm maps an algorithm name to its identifier. Names are case sensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if n == name {
			return a, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
}

// Kind is the style of output series an algorithm is requested for.
type Kind int

const (
	KindTrendline Kind = iota
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindTrendline:
		return "trendline"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// ParseKind accepts "trendline" and "histogram"; empty means trendline.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "trendline":
		return KindTrendline, nil
	case "histogram":
		return KindHistogram, nil
	default:
		return 0, errors.Errorf("unknown series kind %q", name)
	}
}

// DefaultAlgorithm is used when a request names no algorithm.
func (k Kind) DefaultAlgorithm() Algorithm {
	if k == KindHistogram {
		return AlgorithmHistogram
	}
	return AlgorithmLinear
}

// Supports reports whether the algorithm can be requested for this kind of series.
func (k Kind) Supports(a Algorithm) bool {
	switch k {
	case KindTrendline:
		_, known := algorithmNames[a]
		return known && a != AlgorithmHistogram
	case KindHistogram:
		return a == AlgorithmHistogram
	default:
		return false
	}
}

// Request describes one computation.
type Request struct {
	Kind      Kind
	Algorithm string // empty selects Kind.DefaultAlgorithm
	Series    series.Series
	// Periods holds the period for single-window algorithms, or up to three
	// positional overrides (short, long, signal) for the MACD family.
	Periods []int
}

// Dispatcher resolves requests to indicators. It holds no mutable state.
type Dispatcher struct {
	opts Options
}

func NewDispatcher(opts Options) *Dispatcher {
	return &Dispatcher{opts: opts}
}

// Resolve binds an algorithm and its periods into an Indicator.
func (d *Dispatcher) Resolve(kind Kind, name string, periods []int) (Indicator, error) {
	alg := kind.DefaultAlgorithm()
	if name != "" {
		var err error
		alg, err = ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
	}
	if !kind.Supports(alg) {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%s is not available for %s series", alg, kind)
	}

	b := &bound{alg: alg, opts: d.opts}
	switch alg {
	case AlgorithmMACD, AlgorithmSignalLine, AlgorithmHistogram:
		b.macd = ResolveMACDPeriods(periods)
	default:
		b.period = DefaultPeriod
		if len(periods) > 0 && periods[0] != 0 {
			b.period = periods[0]
		}
	}
	return b, nil
}

// Run resolves the request and computes its output series.
func (d *Dispatcher) Run(req Request) (series.Series, error) {
	ind, err := d.Resolve(req.Kind, req.Algorithm, req.Periods)
	if err != nil {
		return series.Series{}, err
	}
	d.opts.logger("dispatcher").
		WithField("algorithm", ind.Name()).
		WithField("points", req.Series.Len()).
		Debug("running indicator")
	return ind.Calculate(req.Series)
}

type bound struct {
	alg    Algorithm
	period int
	macd   MACDPeriods
	opts   Options
}

func (b *bound) Name() string {
	return b.alg.String()
}

func (b *bound) Calculate(in series.Series) (series.Series, error) {
	switch b.alg {
	case AlgorithmSMA:
		return SMA(in, b.period, b.opts)
	case AlgorithmEMA:
		return EMA(in, b.period, b.opts)
	case AlgorithmRSI:
		return RSI(in, b.period, b.opts)
	case AlgorithmLinear:
		return Linear(in, b.period, b.opts)
	case AlgorithmMACD, AlgorithmSignalLine, AlgorithmHistogram:
		res, err := MACD(in, b.macd, b.opts)
		if err != nil {
			return series.Series{}, err
		}
		switch b.alg {
		case AlgorithmMACD:
			return res.MACD, nil
		case AlgorithmSignalLine:
			return res.Signal, nil
		default:
			return res.Histogram, nil
		}
	default:
		return series.Series{}, errors.Wrapf(ErrUnknownAlgorithm, "%d", int(b.alg))
	}
}

// Package series holds the paired x/y shape every indicator consumes and produces.
package series

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/pkg/errors"
)

// ErrMismatchedLengths is returned when the x and y arrays differ in length.
var ErrMismatchedLengths = errors.New("mismatched x/y lengths")

// Point is a single sample. A None Y marks warm-up or a data gap.
type Point struct {
	X float64
	Y optional.Option[float64]
}

// Series is an ordered pair of equal-length x and y arrays.
// X is expected to be strictly increasing; that is a caller contract and is not checked.
type Series struct {
	X []float64
	Y []optional.Option[float64]
}

// New builds a gap-free series from plain values.
func New(xs, ys []float64) (Series, error) {
	if len(xs) != len(ys) {
		return Series{}, errors.Wrapf(ErrMismatchedLengths, "x=%d y=%d", len(xs), len(ys))
	}
	s := Series{
		X: make([]float64, len(xs)),
		Y: make([]optional.Option[float64], len(ys)),
	}
	copy(s.X, xs)
	for i, v := range ys {
		s.Y[i] = optional.Some(v)
	}
	return s, nil
}

// FromOptional builds a series whose y values may contain gaps.
func FromOptional(xs []float64, ys []optional.Option[float64]) (Series, error) {
	if len(xs) != len(ys) {
		return Series{}, errors.Wrapf(ErrMismatchedLengths, "x=%d y=%d", len(xs), len(ys))
	}
	s := Series{
		X: make([]float64, len(xs)),
		Y: make([]optional.Option[float64], len(ys)),
	}
	copy(s.X, xs)
	copy(s.Y, ys)
	return s, nil
}

// FromNaN treats NaN y values as gaps.
func FromNaN(xs, ys []float64) (Series, error) {
	if len(xs) != len(ys) {
		return Series{}, errors.Wrapf(ErrMismatchedLengths, "x=%d y=%d", len(xs), len(ys))
	}
	opts := make([]optional.Option[float64], len(ys))
	for i, v := range ys {
		if math.IsNaN(v) {
			opts[i] = optional.None[float64]()
			continue
		}
		opts[i] = optional.Some(v)
	}
	return FromOptional(xs, opts)
}

// Nulls returns a series aligned to xs with every y unset.
func Nulls(xs []float64) Series {
	s := Series{
		X: make([]float64, len(xs)),
		Y: make([]optional.Option[float64], len(xs)),
	}
	copy(s.X, xs)
	for i := range s.Y {
		s.Y[i] = optional.None[float64]()
	}
	return s
}

// Validate checks the length invariant.
func (s Series) Validate() error {
	if len(s.X) != len(s.Y) {
		return errors.Wrapf(ErrMismatchedLengths, "x=%d y=%d", len(s.X), len(s.Y))
	}
	return nil
}

func (s Series) Len() int {
	return len(s.X)
}

func (s Series) At(i int) Point {
	return Point{X: s.X[i], Y: s.Y[i]}
}

func (s Series) Points() []Point {
	points := make([]Point, len(s.X))
	for i := range s.X {
		points[i] = s.At(i)
	}
	return points
}

// Values returns the y values with gaps rendered as NaN.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Y))
	for i, y := range s.Y {
		if y.IsNone() {
			out[i] = math.NaN()
			continue
		}
		out[i] = y.Unwrap()
	}
	return out
}

// HasGaps reports whether any y value is unset.
func (s Series) HasGaps() bool {
	for _, y := range s.Y {
		if y.IsNone() {
			return true
		}
	}
	return false
}

// Defined counts the y values that are set.
func (s Series) Defined() int {
	n := 0
	for _, y := range s.Y {
		if y.IsSome() {
			n++
		}
	}
	return n
}

func (s Series) Clone() Series {
	c := Series{
		X: make([]float64, len(s.X)),
		Y: make([]optional.Option[float64], len(s.Y)),
	}
	copy(c.X, s.X)
	copy(c.Y, s.Y)
	return c
}

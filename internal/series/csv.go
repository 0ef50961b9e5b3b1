package series

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/pkg/errors"
)

// ReadCSV loads a series from a CSV stream with a header row.
// An empty or "null" y cell becomes a gap; x cells must be numeric.
func ReadCSV(r io.Reader, xColumn, yColumn string) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Series{}, errors.Wrap(err, "read header")
	}
	xi, yi := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case xColumn:
			xi = i
		case yColumn:
			yi = i
		}
	}
	if xi < 0 || yi < 0 {
		return Series{}, errors.Errorf("columns %q and %q must both be present in header %v", xColumn, yColumn, header)
	}

	var (
		xs []float64
		ys []optional.Option[float64]
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, errors.Wrapf(err, "line %d", line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[xi]), 64)
		if err != nil {
			return Series{}, errors.Wrapf(err, "line %d: x", line)
		}
		xs = append(xs, x)

		cell := strings.TrimSpace(rec[yi])
		if cell == "" || strings.EqualFold(cell, "null") {
			ys = append(ys, optional.None[float64]())
			continue
		}
		y, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Series{}, errors.Wrapf(err, "line %d: y", line)
		}
		ys = append(ys, optional.Some(y))
	}
	return FromOptional(xs, ys)
}

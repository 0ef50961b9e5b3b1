// Package plot encodes computed series for charting front ends.
package plot

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/amirphl/trendline/internal/series"
)

// PlotData is one named line of a chart.
type PlotData struct {
	Name   string
	Series series.Series
}

func New(name string, s series.Series) PlotData {
	return PlotData{Name: name, Series: s}
}

type jsonPlot struct {
	Name string        `json:"name"`
	Data [][2]*float64 `json:"data"`
}

// MarshalJSON renders the series as [[x, y], ...] pairs with null for gaps.
func (p PlotData) MarshalJSON() ([]byte, error) {
	if err := p.Series.Validate(); err != nil {
		return nil, err
	}
	out := jsonPlot{Name: p.Name, Data: make([][2]*float64, p.Series.Len())}
	for i, pt := range p.Series.Points() {
		x := pt.X
		out.Data[i][0] = &x
		if pt.Y.IsSome() {
			y := pt.Y.Unwrap()
			out.Data[i][1] = &y
		}
	}
	return json.Marshal(out)
}

// WriteJSON writes the plots as a JSON array.
func WriteJSON(w io.Writer, plots ...PlotData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plots); err != nil {
		return errors.Wrap(err, "encode plots")
	}
	return nil
}

// WriteCSV writes name,x,y rows. Gaps leave y empty.
func WriteCSV(w io.Writer, plots ...PlotData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "x", "y"}); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, p := range plots {
		if err := p.Series.Validate(); err != nil {
			return errors.Wrapf(err, "plot %s", p.Name)
		}
		for _, pt := range p.Series.Points() {
			y := ""
			if pt.Y.IsSome() {
				y = formatFloat(pt.Y.Unwrap())
			}
			if err := cw.Write([]string{p.Name, formatFloat(pt.X), y}); err != nil {
				return errors.Wrapf(err, "plot %s", p.Name)
			}
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

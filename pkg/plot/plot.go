// Package plot renders a BDF table for visual inspection: one line
// series per non-time column, in row order, which for BDF tables is
// time order. Purely presentational, not part of the conversion
// pipeline.
package plot

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

// Options controls chart geometry.
type Options struct {
	Width  int // default 100
	Height int // default 10
}

// Render draws every column except the time axes as an ascii chart.
// Null cells repeat the previous value so a ragged row cannot break a
// series.
func Render(w io.Writer, f *bdf.Frame, opt Options) error {
	if opt.Width <= 0 {
		opt.Width = 100
	}
	if opt.Height <= 0 {
		opt.Height = 10
	}
	if f.Rows() == 0 {
		return fmt.Errorf("plot: empty table")
	}
	for _, cs := range f.Schema().Columns {
		if cs.Name == bdf.ColTestTime || cs.Name == bdf.ColUnixTime {
			continue
		}
		series, err := floatValues(f, cs)
		if err != nil {
			return err
		}
		chart := asciigraph.Plot(series,
			asciigraph.Width(opt.Width),
			asciigraph.Height(opt.Height),
			asciigraph.Caption(cs.Name),
		)
		fmt.Fprintln(w, chart)
		fmt.Fprintln(w)
	}
	return nil
}

func floatValues(f *bdf.Frame, cs bdf.ColumnSchema) ([]float64, error) {
	col, _ := f.Column(cs.Name)
	out := make([]float64, 0, f.Rows())
	last := 0.0
	switch c := col.(type) {
	case *bdf.FloatSeries:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				last = v
			}
			out = append(out, last)
		}
	case *bdf.IntSeries:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				last = float64(v)
			}
			out = append(out, last)
		}
	default:
		return nil, fmt.Errorf("plot: column %q is not numeric", cs.Name)
	}
	return out, nil
}

// Package profile computes per-column statistics of a bdf table and
// renders them as a console table, for sanity-checking converted
// output.
package profile

import (
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

// ColumnStats summarizes one column.
type ColumnStats struct {
	Name  string
	Kind  bdf.Kind
	Count int
	Nulls int
	Min   float64
	Max   float64
	Mean  float64
}

// Collect profiles every column of the frame. String columns only get
// count/null totals.
func Collect(f *bdf.Frame) []ColumnStats {
	stats := make([]ColumnStats, 0, len(f.Schema().Columns))
	for _, cs := range f.Schema().Columns {
		st := ColumnStats{Name: cs.Name, Kind: cs.Type, Min: math.Inf(1), Max: math.Inf(-1)}
		col, _ := f.Column(cs.Name)
		switch c := col.(type) {
		case *bdf.FloatSeries:
			sum := 0.0
			for i := 0; i < c.Len(); i++ {
				v, ok := c.Get(i)
				if !ok {
					st.Nulls++
					continue
				}
				st.Count++
				sum += v
				if v < st.Min {
					st.Min = v
				}
				if v > st.Max {
					st.Max = v
				}
			}
			if st.Count > 0 {
				st.Mean = sum / float64(st.Count)
			}
		case *bdf.IntSeries:
			sum := 0.0
			for i := 0; i < c.Len(); i++ {
				v, ok := c.Get(i)
				if !ok {
					st.Nulls++
					continue
				}
				st.Count++
				fv := float64(v)
				sum += fv
				if fv < st.Min {
					st.Min = fv
				}
				if fv > st.Max {
					st.Max = fv
				}
			}
			if st.Count > 0 {
				st.Mean = sum / float64(st.Count)
			}
		case *bdf.StringSeries:
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					st.Nulls++
				} else {
					st.Count++
				}
			}
		}
		stats = append(stats, st)
	}
	return stats
}

// Render writes the statistics as an aligned table.
func Render(w io.Writer, stats []ColumnStats) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Column", "Kind", "Count", "Nulls", "Min", "Max", "Mean"})
	tw.SetAutoFormatHeaders(false)
	for _, st := range stats {
		row := []string{
			st.Name,
			st.Kind.String(),
			strconv.Itoa(st.Count),
			strconv.Itoa(st.Nulls),
			"", "", "",
		}
		if st.Kind != bdf.KindString && st.Count > 0 {
			row[4] = strconv.FormatFloat(st.Min, 'g', 6, 64)
			row[5] = strconv.FormatFloat(st.Max, 'g', 6, 64)
			row[6] = strconv.FormatFloat(st.Mean, 'g', 6, 64)
		}
		tw.Append(row)
	}
	tw.Render()
}

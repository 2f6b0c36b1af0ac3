// Package fixtures generates synthetic cycler export files for tests.
package fixtures

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// HeaderColumns is the column set of the synthetic export, matching
// what the test hardware emits.
var HeaderColumns = []string{
	"Rec#", "Cyc#", "Step", "Test(Sec)", "DPt-Time",
	"Amps", "Volts", "State", "Amp-hr",
}

// Export describes a synthetic cycler export.
type Export struct {
	// PreambleLines of free-text metadata before the header.
	PreambleLines int
	// Rows of data.
	Rows int
	// Start is the wall-clock time of the first row; one second per
	// row after that.
	Start time.Time
	// SpacedHeader joins header tokens with spaces instead of tabs,
	// exercising the space-to-tab collapse.
	SpacedHeader bool
	// RaggedEvery truncates every n-th row to three fields (0 = never).
	RaggedEvery int
}

// WriteFile writes the export to path.
func (e Export) WriteFile(path string) error {
	var b strings.Builder
	for i := 0; i < e.PreambleLines; i++ {
		fmt.Fprintf(&b, "Metadata line %d: channel 4, schedule GITT_discharge\n", i+1)
	}
	sep := "\t"
	if e.SpacedHeader {
		sep = " "
	}
	b.WriteString(strings.Join(HeaderColumns, sep))
	b.WriteString("\n")

	start := e.Start
	if start.IsZero() {
		start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	for i := 0; i < e.Rows; i++ {
		ts := start.Add(time.Duration(i) * time.Second).Format("2006-01-02 15:04:05")
		if e.RaggedEvery > 0 && i > 0 && i%e.RaggedEvery == 0 {
			fmt.Fprintf(&b, "%d\t%d\t%d\n", i+1, 1+i/10, 1)
			continue
		}
		fmt.Fprintf(&b, "%d\t%d\t%d\t%d\t%s\t%.4f\t%.4f\t%s\t%.5f\n",
			i+1, 1+i/10, 1+i%3, i, ts,
			0.5-float64(i%2), 3.2+0.001*float64(i), "D", 0.0005*float64(i))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

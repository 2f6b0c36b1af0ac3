package bdf

// Raw column names as they appear in cycler export headers.
const (
	RawTestSec = "Test(Sec)"
	RawDPtTime = "DPt-Time"
	RawAmps    = "Amps"
	RawVolts   = "Volts"
	RawCycle   = "Cyc#"
	RawStep    = "Step"
	RawAmpHr   = "Amp-hr"
)

// BDF output column names, units embedded in the label.
const (
	ColTestTime = "Test Time / s"
	ColUnixTime = "Unix Time / s"
	ColCurrent  = "Current / A"
	ColVoltage  = "Voltage / V"
	ColCycle    = "Cycle Count / 1"
	ColStep     = "Step Index / 1"
	ColCapacity = "Cumulative Capacity / Ah"
)

// DefaultZone is the IANA zone the raw DPt-Time strings are assumed to
// be wall-clock times in. The exports carry no zone or DST metadata, so
// this stays configurable rather than baked into the transform.
const DefaultZone = "CET"

// TimeLayout is the fixed DPt-Time format.
const TimeLayout = "2006-01-02 15:04:05"

// OutputSchema returns the fixed seven-column BDF schema, in order.
func OutputSchema() Schema {
	return Schema{Columns: []ColumnSchema{
		{Name: ColTestTime, Type: KindFloat},
		{Name: ColUnixTime, Type: KindFloat},
		{Name: ColCurrent, Type: KindFloat},
		{Name: ColVoltage, Type: KindFloat},
		{Name: ColCycle, Type: KindInt},
		{Name: ColStep, Type: KindInt},
		{Name: ColCapacity, Type: KindFloat},
	}}
}

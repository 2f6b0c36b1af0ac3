package bdf

import (
	"fmt"
	"time"
)

// Normalize projects a raw cycler table onto the fixed BDF schema:
//
//   - Test Time / s: running maximum of Test(Sec), guarding against
//     counter resets and out-of-order rows.
//   - Unix Time / s: DPt-Time parsed as wall-clock time in zone,
//     converted to UTC epoch milliseconds over 1000.
//   - the remaining five columns are unit renames.
//
// A missing source column or an unparseable timestamp fails the whole
// table; null cells from ragged rows stay null. Ambiguous or
// nonexistent wall-clock times around a DST transition resolve to
// whatever time.ParseInLocation picks, since the source carries no
// disambiguating metadata.
func Normalize(raw *Frame, zone string) (*Frame, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", zone, err)
	}

	out := NewFrame(OutputSchema())

	testSec, err := numericColumn(raw, RawTestSec)
	if err != nil {
		return nil, err
	}
	dpt, err := raw.Str(RawDPtTime)
	if err != nil {
		return nil, err
	}
	amps, err := numericColumn(raw, RawAmps)
	if err != nil {
		return nil, err
	}
	volts, err := numericColumn(raw, RawVolts)
	if err != nil {
		return nil, err
	}
	cyc, err := integerColumn(raw, RawCycle)
	if err != nil {
		return nil, err
	}
	step, err := integerColumn(raw, RawStep)
	if err != nil {
		return nil, err
	}
	ampHr, err := numericColumn(raw, RawAmpHr)
	if err != nil {
		return nil, err
	}

	testTime, _ := out.Float(ColTestTime)
	unixTime, _ := out.Float(ColUnixTime)
	current, _ := out.Float(ColCurrent)
	voltage, _ := out.Float(ColVoltage)
	cycle, _ := out.Int(ColCycle)
	stepIdx, _ := out.Int(ColStep)
	capacity, _ := out.Float(ColCapacity)

	runMax := 0.0
	haveMax := false
	for i := 0; i < raw.Rows(); i++ {
		if v, ok := testSec(i); ok {
			if !haveMax || v > runMax {
				runMax = v
				haveMax = true
			}
			testTime.Append(runMax)
		} else {
			testTime.AppendNull()
		}

		if s, ok := dpt.Get(i); ok {
			t, err := time.ParseInLocation(TimeLayout, s, loc)
			if err != nil {
				return nil, fmt.Errorf("row %d: parse %s %q: %w", i, RawDPtTime, s, err)
			}
			unixTime.Append(float64(t.UTC().UnixMilli()) / 1000)
		} else {
			unixTime.AppendNull()
		}

		appendFloat(current, amps, i)
		appendFloat(voltage, volts, i)
		appendInt(cycle, cyc, i)
		appendInt(stepIdx, step, i)
		appendFloat(capacity, ampHr, i)
	}
	out.nrows = raw.Rows()
	return out, nil
}

func appendFloat(dst *FloatSeries, src func(int) (float64, bool), i int) {
	if v, ok := src(i); ok {
		dst.Append(v)
	} else {
		dst.AppendNull()
	}
}

func appendInt(dst *IntSeries, src func(int) (int64, bool), i int) {
	if v, ok := src(i); ok {
		dst.Append(v)
	} else {
		dst.AppendNull()
	}
}

// numericColumn adapts a float or int source column to a float getter.
// Kind inference may type a whole-number column as int, so both are
// accepted wherever the schema wants a float.
func numericColumn(f *Frame, name string) (func(int) (float64, bool), error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, &MissingFieldError{Column: name}
	}
	switch col := c.(type) {
	case *FloatSeries:
		return col.Get, nil
	case *IntSeries:
		return func(i int) (float64, bool) {
			v, ok := col.Get(i)
			return float64(v), ok
		}, nil
	default:
		return nil, fmt.Errorf("column %q is %s, want numeric", name, c.Kind())
	}
}

func integerColumn(f *Frame, name string) (func(int) (int64, bool), error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, &MissingFieldError{Column: name}
	}
	switch col := c.(type) {
	case *IntSeries:
		return col.Get, nil
	case *FloatSeries:
		return func(i int) (int64, bool) {
			v, ok := col.Get(i)
			return int64(v), ok
		}, nil
	default:
		return nil, fmt.Errorf("column %q is %s, want integer", name, c.Kind())
	}
}

// Package golearn converts bdf frames into golearn DenseInstances so
// converted battery data can feed downstream modeling (capacity fade,
// cycle-life regression) without another export step.
package golearn

import (
	"github.com/sjwhitworth/golearn/base"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

// ToDenseInstances converts a frame into golearn DenseInstances.
// Numeric columns become float attributes, string columns categorical.
// Null cells surface as NaN in float attributes.
func ToDenseInstances(f *bdf.Frame) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		switch cs.Type {
		case bdf.KindFloat, bdf.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range f.Schema().Columns {
			col, _ := f.Column(cs.Name)
			switch cs.Type {
			case bdf.KindFloat:
				if v, ok := col.(*bdf.FloatSeries).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				} else {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], "NaN"))
				}
			case bdf.KindInt:
				if v, ok := col.(*bdf.IntSeries).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				} else {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], "NaN"))
				}
			default:
				if v, ok := col.(*bdf.StringSeries).Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			}
		}
	}
	return inst, nil
}

// Package bdf holds the columnar table container and the battery data
// format (BDF) schema: the fixed seven-column projection produced from
// raw cycler exports.
package bdf

import "fmt"

// Kind enumerates the logical column types a cycler table can carry.
type Kind int

const (
	KindInvalid Kind = iota
	KindFloat
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Schema describes the logical shape of a table.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name string
	Type Kind
}

// Series is a typed, nullable column.
type Series interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
}

type FloatSeries struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatSeries(name string) *FloatSeries { return &FloatSeries{name: name} }

func (s *FloatSeries) Name() string              { return s.name }
func (s *FloatSeries) Kind() Kind                { return KindFloat }
func (s *FloatSeries) Len() int                  { return len(s.data) }
func (s *FloatSeries) IsNull(i int) bool         { return s.nulls[i] }
func (s *FloatSeries) Get(i int) (float64, bool) { return s.data[i], !s.nulls[i] }
func (s *FloatSeries) Append(v float64) {
	s.data = append(s.data, v)
	s.nulls = append(s.nulls, false)
}
func (s *FloatSeries) AppendNull() {
	s.data = append(s.data, 0)
	s.nulls = append(s.nulls, true)
}

type IntSeries struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntSeries(name string) *IntSeries { return &IntSeries{name: name} }

func (s *IntSeries) Name() string            { return s.name }
func (s *IntSeries) Kind() Kind              { return KindInt }
func (s *IntSeries) Len() int                { return len(s.data) }
func (s *IntSeries) IsNull(i int) bool       { return s.nulls[i] }
func (s *IntSeries) Get(i int) (int64, bool) { return s.data[i], !s.nulls[i] }
func (s *IntSeries) Append(v int64) {
	s.data = append(s.data, v)
	s.nulls = append(s.nulls, false)
}
func (s *IntSeries) AppendNull() {
	s.data = append(s.data, 0)
	s.nulls = append(s.nulls, true)
}

type StringSeries struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringSeries(name string) *StringSeries { return &StringSeries{name: name} }

func (s *StringSeries) Name() string             { return s.name }
func (s *StringSeries) Kind() Kind               { return KindString }
func (s *StringSeries) Len() int                 { return len(s.data) }
func (s *StringSeries) IsNull(i int) bool        { return s.nulls[i] }
func (s *StringSeries) Get(i int) (string, bool) { return s.data[i], !s.nulls[i] }
func (s *StringSeries) Append(v string) {
	s.data = append(s.data, v)
	s.nulls = append(s.nulls, false)
}
func (s *StringSeries) AppendNull() {
	s.data = append(s.data, "")
	s.nulls = append(s.nulls, true)
}

// Frame is a columnar table. Column order follows the schema.
type Frame struct {
	schema Schema
	cols   []Series
	index  map[string]int
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Series, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindFloat:
			f.cols[i] = NewFloatSeries(cs.Name)
		case KindInt:
			f.cols[i] = NewIntSeries(cs.Name)
		case KindString:
			f.cols[i] = NewStringSeries(cs.Name)
		default:
			panic("bdf: invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

// Column returns the series with the given name.
func (f *Frame) Column(name string) (Series, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Float returns the named column as a FloatSeries.
func (f *Frame) Float(name string) (*FloatSeries, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, &MissingFieldError{Column: name}
	}
	s, ok := c.(*FloatSeries)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, want float", name, c.Kind())
	}
	return s, nil
}

// Int returns the named column as an IntSeries.
func (f *Frame) Int(name string) (*IntSeries, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, &MissingFieldError{Column: name}
	}
	s, ok := c.(*IntSeries)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, want int", name, c.Kind())
	}
	return s, nil
}

// Str returns the named column as a StringSeries.
func (f *Frame) Str(name string) (*StringSeries, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, &MissingFieldError{Column: name}
	}
	s, ok := c.(*StringSeries)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, want string", name, c.Kind())
	}
	return s, nil
}

// AppendNullRow appends a row with every column null.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *FloatSeries:
			col.AppendNull()
		case *IntSeries:
			col.AppendNull()
		case *StringSeries:
			col.AppendNull()
		}
	}
	f.nrows++
}

// SetCell sets a single cell by column name. The row must already exist.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return &MissingFieldError{Column: name}
	}
	switch col := f.cols[i].(type) {
	case *FloatSeries:
		switch t := v.(type) {
		case float64:
			col.data[row], col.nulls[row] = t, false
		case int64:
			col.data[row], col.nulls[row] = float64(t), false
		default:
			return fmt.Errorf("column %q expects float64", name)
		}
	case *IntSeries:
		switch t := v.(type) {
		case int64:
			col.data[row], col.nulls[row] = t, false
		case int:
			col.data[row], col.nulls[row] = int64(t), false
		case float64:
			col.data[row], col.nulls[row] = int64(t), false
		default:
			return fmt.Errorf("column %q expects int64", name)
		}
	case *StringSeries:
		t, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %q expects string", name)
		}
		col.data[row], col.nulls[row] = t, false
	}
	return nil
}

// AppendFrame appends all rows of other to f. Schemas must match by
// name, kind, and order.
func (f *Frame) AppendFrame(other *Frame) error {
	if len(f.schema.Columns) != len(other.schema.Columns) {
		return fmt.Errorf("append: schema mismatch: %d vs %d columns",
			len(f.schema.Columns), len(other.schema.Columns))
	}
	for i, cs := range f.schema.Columns {
		ocs := other.schema.Columns[i]
		if cs.Name != ocs.Name || cs.Type != ocs.Type {
			return fmt.Errorf("append: column %d mismatch: %s/%s vs %s/%s",
				i, cs.Name, cs.Type, ocs.Name, ocs.Type)
		}
	}
	for i := range f.cols {
		switch dst := f.cols[i].(type) {
		case *FloatSeries:
			src := other.cols[i].(*FloatSeries)
			dst.data = append(dst.data, src.data...)
			dst.nulls = append(dst.nulls, src.nulls...)
		case *IntSeries:
			src := other.cols[i].(*IntSeries)
			dst.data = append(dst.data, src.data...)
			dst.nulls = append(dst.nulls, src.nulls...)
		case *StringSeries:
			src := other.cols[i].(*StringSeries)
			dst.data = append(dst.data, src.data...)
			dst.nulls = append(dst.nulls, src.nulls...)
		}
	}
	f.nrows += other.nrows
	return nil
}

// MissingFieldError reports a column the table does not carry.
type MissingFieldError struct {
	Column string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %q", e.Column)
}

package dataset

import (
	"strconv"
	"strings"
)

// Kind is the declared scalar type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindTemporal
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	case KindBool:
		return "boolean"
	default:
		return "text"
	}
}

// Column is an ordered sequence of raw cell values of a single declared kind.
// An empty cell marks a missing value.
type Column struct {
	Name   string
	Kind   Kind
	Values []string
}

// NonMissing returns the column's non-empty cells in row order.
func (c *Column) NonMissing() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Floats parses the column's non-missing cells as float64.
// ok is false when any non-missing cell fails to parse.
func (c *Column) Floats() (vals []float64, ok bool) {
	for _, v := range c.Values {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		vals = append(vals, f)
	}
	return vals, true
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	return &Column{
		Name:   c.Name,
		Kind:   c.Kind,
		Values: append([]string(nil), c.Values...),
	}
}

// Frame is an ordered collection of named, equal-length columns.
// Frames are treated as immutable snapshots: derived frames never share
// backing slices with their source.
type Frame struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a frame from the given columns, validating the shape.
// Columns are deep-copied so later mutation of the inputs cannot leak in.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c.Name == "" {
			return nil, &InvalidInputError{Reason: "column without a name"}
		}
		if _, dup := f.index[c.Name]; dup {
			return nil, &DuplicateColumnError{Name: c.Name}
		}
		if i == 0 {
			f.rows = len(c.Values)
		} else if len(c.Values) != f.rows {
			return nil, &ShapeError{Column: c.Name, Got: len(c.Values), Want: f.rows}
		}
		f.index[c.Name] = i
		f.cols = append(f.cols, c.Clone())
	}
	return f, nil
}

// Rows returns the uniform row count.
func (f *Frame) Rows() int { return f.rows }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.cols) }

// Names returns the column names in declaration order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether the frame holds a column with the given name.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the named column, or false when absent.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Columns returns the columns in declaration order.
func (f *Frame) Columns() []*Column { return f.cols }

// Select builds a new frame from the named columns plus any extras appended
// verbatim, preserving row order. Unknown names fail with UnknownColumnError.
func (f *Frame) Select(names []string, extra ...*Column) (*Frame, error) {
	picked := make([]*Column, 0, len(names)+len(extra))
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return nil, &UnknownColumnError{Name: name}
		}
		picked = append(picked, c)
	}
	picked = append(picked, extra...)
	return New(picked...)
}

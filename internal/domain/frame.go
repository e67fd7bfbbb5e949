package domain

import "time"

// Column is one named output series.
type Column struct {
	Name   string
	Values []float64
}

// Frame holds the indicator output for one symbol, aligned with the input series.
type Frame struct {
	Symbol   string
	Interval string
	Times    []time.Time
	Columns  []Column
}

// Add appends a column to the frame.
func (f *Frame) Add(name string, values []float64) {
	f.Columns = append(f.Columns, Column{Name: name, Values: values})
}

// Column returns the values of the named column and whether it exists.
func (f *Frame) Column(name string) ([]float64, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c.Values, true
		}
	}
	return nil, false
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

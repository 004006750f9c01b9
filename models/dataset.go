package models

// LineType is the role tag of a plotted series. Any other tag marks the shared axis column.
const LineType = "line"

type Dataset struct {
	// columns in the order they were supplied.
	columns []*Column
	// types maps a column name to its role tag.
	types map[string]string
	// colors maps a line column name to a CSS colour string.
	colors map[string]string
}

// NewDataset builds a dataset and checks its invariants, so controllers never
// end up drawing geometry derived from a malformed input.
func NewDataset(columns []*Column, types map[string]string, colors map[string]string) (*Dataset, error) {
	d := &Dataset{
		columns,
		types,
		colors,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dataset) Columns() []*Column {
	return d.columns
}

func (d *Dataset) Type(name string) string {
	return d.types[name]
}

func (d *Dataset) Color(name string) string {
	return d.colors[name]
}

func (d *Dataset) IsLine(c *Column) bool {
	return d.types[c.Name()] == LineType
}

// Lines returns the plotted series in column order.
func (d *Dataset) Lines() []*Column {
	lines := make([]*Column, 0, len(d.columns))
	for _, c := range d.columns {
		if d.IsLine(c) {
			lines = append(lines, c)
		}
	}
	return lines
}

// Axis returns the first column that is not a line, or nil.
func (d *Dataset) Axis() *Column {
	for _, c := range d.columns {
		if !d.IsLine(c) {
			return c
		}
	}
	return nil
}

// SampleCount is the number of samples per column.
func (d *Dataset) SampleCount() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Len()
}

// Slice returns a view over samples [from, to) of every column. Types and colours are shared.
func (d *Dataset) Slice(from, to int) *Dataset {
	n := d.SampleCount()
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from > to {
		from = to
	}
	columns := make([]*Column, len(d.columns))
	for i, c := range d.columns {
		columns[i] = c.Slice(from, to)
	}
	return &Dataset{
		columns,
		d.types,
		d.colors,
	}
}

func (d *Dataset) Validate() error {
	seen := make(map[string]bool, len(d.columns))
	var axis *Column
	lineSamples := 0
	for _, c := range d.columns {
		if seen[c.Name()] {
			return &ValidationError{c.Name(), ErrDuplicateColumn}
		}
		seen[c.Name()] = true

		if !d.IsLine(c) {
			if axis != nil {
				return &ValidationError{c.Name(), ErrMultipleAxisColumns}
			}
			axis = c
			continue
		}
		if d.colors[c.Name()] == "" {
			return &ValidationError{c.Name(), ErrMissingColor}
		}
		lineSamples += c.Len()
	}

	if lineSamples == 0 {
		return &ValidationError{"", ErrEmptyDataset}
	}
	if axis == nil {
		return &ValidationError{"", ErrNoAxisColumn}
	}
	for _, c := range d.columns {
		if c.Len() != axis.Len() {
			return &ValidationError{c.Name(), ErrLengthMismatch}
		}
	}
	return nil
}

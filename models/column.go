package models

type Column struct {
	// name is the identifier of the column, in the raw columnar form it is the first element.
	name string
	// values holds the samples. For the axis column these are epoch timestamps in milliseconds.
	values []float64
}

func NewColumn(name string, values []float64) *Column {
	return &Column{
		name,
		values,
	}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) Values() []float64 {
	return c.values
}

func (c *Column) Len() int {
	return len(c.values)
}

// Slice returns a column sharing the samples in [from, to).
func (c *Column) Slice(from, to int) *Column {
	return &Column{
		c.name,
		c.values[from:to],
	}
}

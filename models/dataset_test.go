package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	d, err := NewDataset(
		[]*Column{
			NewColumn("x", []float64{1542412800000, 1542499200000, 1542585600000, 1542672000000}),
			NewColumn("y0", []float64{37, 20, 32, 39}),
			NewColumn("y1", []float64{22, 12, 30, 40}),
		},
		map[string]string{"x": "x", "y0": LineType, "y1": LineType},
		map[string]string{"y0": "#3DC23F", "y1": "#F34C44"},
	)
	require.NoError(t, err)
	return d
}

func TestDataset_Roles(t *testing.T) {
	d := testDataset(t)

	require.NotNil(t, d.Axis())
	assert.Equal(t, "x", d.Axis().Name())

	lines := d.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "y0", lines[0].Name())
	assert.Equal(t, "y1", lines[1].Name())
	assert.Equal(t, 4, d.SampleCount())
	assert.Equal(t, "#F34C44", d.Color("y1"))
}

func TestDataset_Slice(t *testing.T) {
	d := testDataset(t)

	s := d.Slice(1, 3)
	assert.Equal(t, 2, s.SampleCount())
	assert.Equal(t, []float64{20, 32}, s.Lines()[0].Values())
	assert.Equal(t, "#3DC23F", s.Color("y0"))

	// Out of range bounds are clamped rather than panicking.
	assert.Equal(t, 4, d.Slice(-3, 99).SampleCount())
	assert.Equal(t, 0, d.Slice(3, 1).SampleCount())
}

func TestNewDataset_Invalid(t *testing.T) {
	types := map[string]string{"x": "x", "y0": LineType, "y1": LineType}
	colors := map[string]string{"y0": "red", "y1": "blue"}

	tests := []struct {
		name    string
		columns []*Column
		types   map[string]string
		colors  map[string]string
		want    error
		column  string
	}{
		{
			name:    "no columns",
			columns: nil,
			types:   types,
			colors:  colors,
			want:    ErrEmptyDataset,
		},
		{
			name:    "no line column",
			columns: []*Column{NewColumn("x", []float64{1, 2})},
			types:   types,
			colors:  colors,
			want:    ErrEmptyDataset,
		},
		{
			name:    "no axis column",
			columns: []*Column{NewColumn("y0", []float64{1, 2})},
			types:   types,
			colors:  colors,
			want:    ErrNoAxisColumn,
		},
		{
			name: "two axis columns",
			columns: []*Column{
				NewColumn("x", []float64{1}),
				NewColumn("t", []float64{1}),
				NewColumn("y0", []float64{1}),
			},
			types:  types,
			colors: colors,
			want:   ErrMultipleAxisColumns,
			column: "t",
		},
		{
			name: "length mismatch",
			columns: []*Column{
				NewColumn("x", []float64{1, 2, 3}),
				NewColumn("y0", []float64{1, 2}),
			},
			types:  types,
			colors: colors,
			want:   ErrLengthMismatch,
			column: "y0",
		},
		{
			name: "duplicate name",
			columns: []*Column{
				NewColumn("x", []float64{1}),
				NewColumn("y0", []float64{1}),
				NewColumn("y0", []float64{2}),
			},
			types:  types,
			colors: colors,
			want:   ErrDuplicateColumn,
			column: "y0",
		},
		{
			name: "missing colour",
			columns: []*Column{
				NewColumn("x", []float64{1}),
				NewColumn("y1", []float64{1}),
			},
			types:  types,
			colors: map[string]string{"y0": "red"},
			want:   ErrMissingColor,
			column: "y1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataset(tt.columns, tt.types, tt.colors)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.column, verr.Column)
		})
	}
}

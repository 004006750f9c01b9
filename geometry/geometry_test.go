package geometry

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgchart/models"
)

func dataset(t *testing.T, lines map[string][]float64) *models.Dataset {
	t.Helper()
	n := 0
	for _, v := range lines {
		n = len(v)
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(1542412800000 + i*86400000)
	}
	columns := []*models.Column{models.NewColumn("x", xs)}
	types := map[string]string{"x": "x"}
	colors := map[string]string{}
	for name, v := range lines {
		columns = append(columns, models.NewColumn(name, v))
		types[name] = models.LineType
		colors[name] = "#000"
	}
	d, err := models.NewDataset(columns, types, colors)
	require.NoError(t, err)
	return d
}

func TestValueRange_SingleLine(t *testing.T) {
	d := dataset(t, map[string][]float64{"y0": {10, 20, 10}})

	min, max, err := ValueRange(d)
	require.NoError(t, err)
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 20.0, max)

	// A ratio derived from this range is finite.
	assert.Equal(t, 32.0, YRatio(320, min, max))
}

func TestValueRange_SharedAcrossSeries(t *testing.T) {
	d := dataset(t, map[string][]float64{
		"y0": {5, 6, 7},
		"y1": {-3, 40, 1},
	})

	min, max, err := ValueRange(d)
	require.NoError(t, err)
	assert.Equal(t, -3.0, min)
	assert.Equal(t, 40.0, max)
}

func TestValueRange_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 20; run++ {
		y0 := make([]float64, 30)
		y1 := make([]float64, 30)
		for i := range y0 {
			y0[i] = rng.Float64()*200 - 100
			y1[i] = rng.Float64()*1000 - 10
		}
		d := dataset(t, map[string][]float64{"y0": y0, "y1": y1})

		min, max, err := ValueRange(d)
		require.NoError(t, err)
		for _, c := range d.Lines() {
			for _, v := range c.Values() {
				assert.LessOrEqual(t, min, v)
				assert.GreaterOrEqual(t, max, v)
			}
		}
	}
}

func TestValueRange_Empty(t *testing.T) {
	d := dataset(t, map[string][]float64{"y0": {1}}).Slice(0, 0)

	_, _, err := ValueRange(d)
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}

func TestRatios_ZeroDivisor(t *testing.T) {
	assert.Equal(t, 1.0, YRatio(320, 7, 7))
	assert.Equal(t, 1.0, XRatio(1200, 1))
	assert.Equal(t, 1.0, XRatio(1200, 0))
	assert.Equal(t, 600.0, XRatio(1200, 3))
}

func TestToPixelCoords(t *testing.T) {
	col := models.NewColumn("y0", []float64{0, 10, 20})

	coords := ToPixelCoords(600, 16, 400, 40, 0)(col)
	assert.Equal(t, []Point{
		{0, 360},
		{600, 200},
		{1200, 40},
	}, coords)
}

func TestToPixelCoords_BaselineOffset(t *testing.T) {
	col := models.NewColumn("y0", []float64{10, 20})

	coords := ToPixelCoords(1.5, 8, 80, -5, 10)(col)
	assert.Equal(t, Point{0, 85}, coords[0])
	assert.Equal(t, Point{1, 5}, coords[1])
}

func TestToPixelCoords_MonotonicX(t *testing.T) {
	values := make([]float64, 113)
	for i := range values {
		values[i] = float64(i % 17)
	}
	coords := ToPixelCoords(1200.0/112, 3.3, 400, 40, 0)(models.NewColumn("y", values))

	for i := 1; i < len(coords); i++ {
		assert.GreaterOrEqual(t, coords[i].X, coords[i-1].X)
	}
}

func TestIsOverIndex(t *testing.T) {
	// 10 samples over 1200px: slot 120px wide, hit band +-60px.
	assert.False(t, IsOverIndex(nil, 100, 10, 1200))
	assert.True(t, IsOverIndex(&Pointer{X: 100}, 100, 10, 1200))
	assert.True(t, IsOverIndex(&Pointer{X: 159}, 100, 10, 1200))
	assert.False(t, IsOverIndex(&Pointer{X: 160}, 100, 10, 1200))
	assert.False(t, IsOverIndex(&Pointer{X: 100}, 100, 0, 1200))
}

func TestIsOverIndex_Symmetric(t *testing.T) {
	for _, d := range []float64{0, 10, 59.9, 60, 61, 300} {
		left := IsOverIndex(&Pointer{X: 500 - d}, 500, 10, 1200)
		right := IsOverIndex(&Pointer{X: 500 + d}, 500, 10, 1200)
		assert.Equal(t, left, right, "distance %v", d)
	}
}

func TestDateLabelIn(t *testing.T) {
	ts := float64(time.Date(2018, time.November, 17, 0, 0, 0, 0, time.UTC).UnixMilli())
	assert.Equal(t, "Nov 17", DateLabelIn(ts, time.UTC))

	ts = float64(time.Date(2019, time.January, 3, 23, 0, 0, 0, time.UTC).UnixMilli())
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "Jan 4", DateLabelIn(ts, tokyo))
}

func TestDateLabel_UsesLocalTime(t *testing.T) {
	ts := float64(time.Date(2019, time.March, 9, 12, 0, 0, 0, time.UTC).UnixMilli())
	local := time.UnixMilli(int64(ts)).Local()

	want := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}[local.Month()-1] +
		" " + strconv.Itoa(local.Day())
	assert.Equal(t, want, DateLabel(ts))
	assert.Equal(t, DateLabel(ts), DateLabelIn(ts, nil))
}

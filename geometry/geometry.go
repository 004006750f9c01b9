// Package geometry maps dataset values into device-pixel space. Everything in
// here is a pure function of its arguments.
package geometry

import (
	"math"
	"strconv"
	"time"

	"tgchart/models"
)

// Point is a position in device pixels, origin at the top-left of the canvas.
type Point struct {
	X float64
	Y float64
}

// Pointer is the position of the input device over a canvas, in device pixels.
// A nil *Pointer means the device is not over the canvas.
type Pointer struct {
	X float64
}

var shortMonths = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ValueRange returns the minimum and maximum over every sample of every line
// column combined. All series share one vertical scale.
func ValueRange(d *models.Dataset) (min, max float64, err error) {
	found := false
	for _, c := range d.Lines() {
		for _, v := range c.Values() {
			if !found {
				min, max = v, v
				found = true
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !found {
		return 0, 0, models.ErrEmptyDataset
	}
	return min, max, nil
}

// XRatio is the horizontal distance between two neighbouring samples.
func XRatio(viewWidth float64, sampleCount int) float64 {
	if sampleCount < 2 {
		return 1
	}
	return viewWidth / float64(sampleCount-1)
}

// YRatio scales a value span to the view height. A flat range yields 1.
func YRatio(viewHeight, min, max float64) float64 {
	if max == min {
		return 1
	}
	return viewHeight / (max - min)
}

// ToPixelCoords returns a mapper from a column to its polyline. Sample j (zero
// based) lands at x = floor(j*xRatio) and
// y = floor(canvasHeight - paddingBottom - (value-baselineOffset)*yRatio).
func ToPixelCoords(xRatio, yRatio, canvasHeight, paddingBottom, baselineOffset float64) func(*models.Column) []Point {
	return func(c *models.Column) []Point {
		coords := make([]Point, c.Len())
		for j, v := range c.Values() {
			coords[j] = Point{
				X: math.Floor(float64(j) * xRatio),
				Y: math.Floor(canvasHeight - paddingBottom - (v-baselineOffset)*yRatio),
			}
		}
		return coords
	}
}

// IsOverIndex reports whether the pointer is within half a sample slot of candidateX.
func IsOverIndex(p *Pointer, candidateX float64, sampleCount int, canvasWidth float64) bool {
	if p == nil || sampleCount <= 0 {
		return false
	}
	width := canvasWidth / float64(sampleCount)
	return math.Abs(candidateX-p.X) < width/2
}

// DateLabel formats an epoch millisecond timestamp as "Jan 2" in local time.
func DateLabel(timestamp float64) string {
	return DateLabelIn(timestamp, time.Local)
}

// DateLabelIn is DateLabel in loc. A nil loc means local time.
func DateLabelIn(timestamp float64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t := time.UnixMilli(int64(timestamp)).In(loc)
	return shortMonths[t.Month()-1] + " " + strconv.Itoa(t.Day())
}

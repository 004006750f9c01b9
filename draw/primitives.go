package draw

import (
	"math"
	"time"

	"tgchart/geometry"
	"tgchart/models"
	"tgchart/utils"
)

const (
	LineWidth    = 4
	CircleRadius = 8
	GridWidth    = 1
	GridColor    = "#bbb"
	LabelColor   = "#96a2aa"
	LabelFont    = "normal 20px Helvetica, sans-serif"
	CircleFill   = "#fff"
)

// Polyline strokes one connected path through coords.
func Polyline(ctx Context, coords []geometry.Point, color string) {
	ctx.BeginPath()
	ctx.SetLineWidth(LineWidth)
	ctx.SetStrokeStyle(color)
	for _, p := range coords {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.Stroke()
	ctx.ClosePath()
}

// HighlightCircle draws the hover marker: a white disc with a coloured outline.
func HighlightCircle(ctx Context, p geometry.Point, color string) {
	ctx.BeginPath()
	ctx.SetStrokeStyle(color)
	ctx.SetFillStyle(CircleFill)
	ctx.Arc(p.X, p.Y, CircleRadius, 0, math.Pi*2)
	ctx.Fill()
	ctx.Stroke()
	ctx.ClosePath()
}

type YAxisOptions struct {
	// Rows is the number of gridlines, 5 when zero.
	Rows       int
	Width      float64
	ViewHeight float64
	PaddingTop float64
}

// YAxis draws evenly spaced horizontal gridlines with a rounded value label
// above each, top to bottom.
func YAxis(ctx Context, min, max float64, o YAxisOptions) {
	rows := o.Rows
	if rows <= 0 {
		rows = 5
	}
	step := o.ViewHeight / float64(rows)
	textStep := (max - min) / float64(rows)

	ctx.BeginPath()
	ctx.SetLineWidth(GridWidth)
	ctx.SetStrokeStyle(GridColor)
	ctx.SetFont(LabelFont)
	ctx.SetFillStyle(LabelColor)

	for i := 1; i <= rows; i++ {
		y := step*float64(i) + o.PaddingTop
		text := utils.FormatNumber(utils.Round(max - textStep*float64(i)))
		ctx.FillText(text, 5, y-10)
		ctx.MoveTo(0, y)
		ctx.LineTo(o.Width, y)
	}

	ctx.Stroke()
	ctx.ClosePath()
}

type XAxisOptions struct {
	// Labels is the target number of date labels, 6 when zero.
	Labels  int
	Width   float64
	Height  float64
	Padding float64
	// Location for date labels, local time when nil.
	Location *time.Location
}

// XAxis draws date labels along the bottom edge and a vertical guideline at
// the sample under the pointer.
func XAxis(ctx Context, x *models.Column, xRatio float64, p *geometry.Pointer, o XAxisOptions) {
	labels := o.Labels
	if labels <= 0 {
		labels = 6
	}
	n := x.Len()
	step := int(utils.Round(float64(n) / float64(labels)))
	if step < 1 {
		step = 1
	}

	ctx.BeginPath()
	ctx.SetLineWidth(GridWidth)
	ctx.SetStrokeStyle(GridColor)
	ctx.SetFillStyle(LabelColor)
	for j, ts := range x.Values() {
		px := math.Floor(float64(j) * xRatio)

		if j%step == 0 {
			ctx.FillText(geometry.DateLabelIn(ts, o.Location), px, o.Height-10)
		}

		if geometry.IsOverIndex(p, px, n, o.Width) {
			ctx.MoveTo(px, o.Padding/2)
			ctx.LineTo(px, o.Height-o.Padding)
		}
	}
	ctx.Stroke()
	ctx.ClosePath()
}

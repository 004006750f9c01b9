// Package draw holds the canvas-2D drawing surface abstraction, the primitive
// chart routines drawn onto it and the backends that implement it.
package draw

// Context is the subset of the HTML canvas 2D context the charts draw with.
// Path semantics follow the canvas: Stroke and Fill keep the current path,
// BeginPath discards it, and LineTo without a current point acts as MoveTo.
type Context interface {
	ClearRect(x, y, width, height float64)
	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Stroke()
	Fill()
	FillText(text string, x, y float64)
	Save()
	Restore()
	SetLineWidth(width float64)
	SetStrokeStyle(style string)
	SetFillStyle(style string)
	SetFont(font string)
}

// Resizer is implemented by contexts whose backing store follows the size of
// the element they draw into.
type Resizer interface {
	Resize(cssWidth, cssHeight, width, height int)
}

// Package chart implements the interactive line chart bound to one canvas.
package chart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tgchart/dom"
	"tgchart/draw"
	"tgchart/events"
	"tgchart/frame"
	"tgchart/geometry"
	"tgchart/models"
)

type Config struct {
	// Width and Height of the canvas box in CSS pixels.
	Width  int
	Height int
	// PixelRatio scales the CSS box to the backing store.
	PixelRatio int
	// Padding above and below the plot area, in device pixels.
	Padding int
	// Rows is the number of Y gridlines.
	Rows int
	// Labels is the target number of X date labels.
	Labels int
	// FitRange offsets series by the range minimum so they line up with the
	// gridline labels. Off, values are scaled from zero.
	FitRange bool
	// Location for date labels, local time when nil.
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		Width:      600,
		Height:     200,
		PixelRatio: 2,
		Padding:    40,
		Rows:       5,
		Labels:     6,
	}
}

type Chart struct {
	canvas *dom.Canvas
	ctx    draw.Context
	data   *models.Dataset
	cfg    Config
	loop   *frame.Loop

	// pointer is the hovered device-pixel position, nil when the pointer is off the canvas.
	pointer *geometry.Pointer
	// window is the visible sample range as left and right percentages.
	window [2]float64
	// raf is the id of the pending frame request, 0 when none.
	raf uint64

	moveID    int
	leaveID   int
	destroyed bool
}

// New sizes the canvas and starts listening for pointer movement. The dataset
// is validated up front so nothing is ever drawn from malformed input.
func New(canvas *dom.Canvas, data *models.Dataset, cfg Config, loop *frame.Loop) (*Chart, error) {
	if canvas == nil || loop == nil {
		return nil, errors.New("chart needs a canvas and a frame loop")
	}
	if data == nil {
		return nil, &models.ValidationError{Err: models.ErrEmptyDataset}
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("chart size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}

	c := &Chart{
		canvas: canvas,
		ctx:    canvas.Context(),
		data:   data,
		cfg:    cfg,
		loop:   loop,
		window: [2]float64{0, 100},
	}
	canvas.Resize(cfg.Width, cfg.Height, cfg.Width*cfg.PixelRatio, cfg.Height*cfg.PixelRatio)

	c.moveID = canvas.Events().AddListener(events.PointerMove, c.onPointerMove)
	c.leaveID = canvas.Events().AddListener(events.PointerLeave, c.onPointerLeave)
	return c, nil
}

// Init paints the first frame straight away so the chart shows before any interaction.
func (c *Chart) Init() {
	c.Paint()
}

// Destroy cancels a pending repaint and stops listening. Calling it again is a no-op.
func (c *Chart) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.loop.Cancel(c.raf)
	c.raf = 0
	c.canvas.Events().RemoveListener(c.moveID)
	c.canvas.Events().RemoveListener(c.leaveID)
}

func (c *Chart) Pointer() *geometry.Pointer {
	return c.pointer
}

func (c *Chart) Window() [2]float64 {
	return c.window
}

// RepaintPending reports whether a frame has been requested and not yet run.
func (c *Chart) RepaintPending() bool {
	return c.raf != 0
}

func (c *Chart) onPointerMove(e *events.Event) {
	x := (e.ClientX - c.canvas.Left()) * float64(c.cfg.PixelRatio)
	c.SetPointer(&geometry.Pointer{X: x})
}

func (c *Chart) onPointerLeave(*events.Event) {
	c.SetPointer(nil)
}

// SetPointer updates the hover position and schedules a repaint.
func (c *Chart) SetPointer(p *geometry.Pointer) {
	c.pointer = p
	c.requestPaint()
}

// SetWindow limits the painted samples to the given percentage range and
// schedules a repaint.
func (c *Chart) SetWindow(left, right float64) {
	left = math.Max(0, math.Min(100, left))
	right = math.Max(0, math.Min(100, right))
	if left > right {
		left, right = right, left
	}
	c.window = [2]float64{left, right}
	c.requestPaint()
}

// requestPaint asks for one frame unless one is already pending, so any
// number of updates within a frame produce a single paint.
func (c *Chart) requestPaint() {
	if c.destroyed || c.raf != 0 {
		return
	}
	c.raf = c.loop.Request(func(time.Time) {
		c.raf = 0
		c.Paint()
	})
}

// Paint redraws the whole chart: axes first so the gridlines sit behind the series.
func (c *Chart) Paint() {
	width := float64(c.canvas.Width())
	height := float64(c.canvas.Height())
	padding := float64(c.cfg.Padding)
	viewHeight := height - padding*2

	c.ctx.ClearRect(0, 0, width, height)

	data := c.visible()
	min, max, err := geometry.ValueRange(data)
	if err != nil {
		return
	}
	yRatio := geometry.YRatio(viewHeight, min, max)
	xRatio := geometry.XRatio(width, data.SampleCount())

	draw.YAxis(c.ctx, min, max, draw.YAxisOptions{
		Rows:       c.cfg.Rows,
		Width:      width,
		ViewHeight: viewHeight,
		PaddingTop: padding,
	})
	draw.XAxis(c.ctx, data.Axis(), xRatio, c.pointer, draw.XAxisOptions{
		Labels:   c.cfg.Labels,
		Width:    width,
		Height:   height,
		Padding:  padding,
		Location: c.cfg.Location,
	})

	baseline := 0.0
	if c.cfg.FitRange {
		baseline = min
	}
	toCoords := geometry.ToPixelCoords(xRatio, yRatio, height, padding, baseline)
	for _, line := range data.Lines() {
		color := data.Color(line.Name())
		coords := toCoords(line)
		draw.Polyline(c.ctx, coords, color)

		if p, ok := c.hovered(coords, width); ok {
			draw.HighlightCircle(c.ctx, p, color)
		}
	}
}

// hovered returns the first point of a series under the pointer. Only one
// point per series is ever highlighted.
func (c *Chart) hovered(coords []geometry.Point, width float64) (geometry.Point, bool) {
	if c.pointer == nil {
		return geometry.Point{}, false
	}
	for _, p := range coords {
		if geometry.IsOverIndex(c.pointer, p.X, len(coords), width) {
			return p, true
		}
	}
	return geometry.Point{}, false
}

// visible returns the part of the dataset inside the window, never fewer than two samples.
func (c *Chart) visible() *models.Dataset {
	n := c.data.SampleCount()
	if c.window == [2]float64{0, 100} || n < 2 {
		return c.data
	}
	from := int(math.Floor(c.window[0] / 100 * float64(n)))
	to := int(math.Ceil(c.window[1] / 100 * float64(n)))
	if to-from < 2 {
		to = from + 2
		if to > n {
			to = n
			from = n - 2
		}
	}
	return c.data.Slice(from, to)
}

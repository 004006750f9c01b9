// Package slider implements the range selection control: a static miniature
// of every series under three draggable regions (left mask, window, right
// mask) that together pick a proportion of the full series.
package slider

import (
	"errors"
	"fmt"

	"tgchart/dom"
	"tgchart/draw"
	"tgchart/events"
	"tgchart/geometry"
	"tgchart/models"
	"tgchart/utils"
)

type HandleType string

const (
	Left   HandleType = "left"
	Right  HandleType = "right"
	Window HandleType = "window"
)

type Config struct {
	// Width and Height of the track in CSS pixels.
	Width  int
	Height int
	// PixelRatio scales the CSS box to the canvas backing store.
	PixelRatio int
	// MinWindow is the smallest window as a fraction of the track width.
	MinWindow float64
	// DefaultWindow is the initial window as a fraction of the track width, anchored left.
	DefaultWindow float64
	// Baseline is the bottom padding of the miniature in device pixels.
	Baseline float64
}

func DefaultConfig() Config {
	return Config{
		Width:         600,
		Height:        40,
		PixelRatio:    2,
		MinWindow:     0.05,
		DefaultWindow: 0.3,
		Baseline:      -5,
	}
}

// Validate reports settings the slider cannot lay out.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("slider size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.MinWindow < 0 || c.MinWindow > 1 {
		return fmt.Errorf("slider minimum window must be within [0, 1], got %v", c.MinWindow)
	}
	if c.DefaultWindow < c.MinWindow || c.DefaultWindow > 1 {
		return fmt.Errorf("slider default window must be within [%v, 1], got %v", c.MinWindow, c.DefaultWindow)
	}
	return nil
}

// Subscriber receives the window as [left%, right%] of the track.
type Subscriber func(window [2]float64)

type drag struct {
	handle HandleType
	startX float64
	// left, right and width of the window when the drag started.
	left  float64
	right float64
	width float64
}

type Slider struct {
	root     *dom.Element
	document *dom.Element
	canvas   *dom.Canvas
	leftEl   *dom.Element
	rightEl  *dom.Element
	windowEl *dom.Element
	data     *models.Dataset
	cfg      Config

	width    float64
	minWidth float64
	next     Subscriber

	pressID int
	drag    *drag
	moveID  int
	upID    int
}

// NewRoot builds the element tree the slider expects: a root with a nested
// canvas and children tagged left, right and window.
func NewRoot(id string, ctx draw.Context) *dom.Element {
	root := dom.NewElement(id)
	root.SetCanvas(dom.NewCanvas(id+"-canvas", ctx))
	for _, tag := range []HandleType{Left, Right, Window} {
		root.Append(string(tag), dom.NewElement(id+"-"+string(tag)))
	}
	return root
}

// New lays out the initial window, paints the miniature once and starts
// listening for presses on root. Moves and releases are taken from document
// while a drag is active.
func New(root *dom.Element, document *dom.Element, data *models.Dataset, cfg Config) (*Slider, error) {
	if root == nil || document == nil {
		return nil, errors.New("slider needs a root element and a document")
	}
	if data == nil {
		return nil, &models.ValidationError{Err: models.ErrEmptyDataset}
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}

	s := &Slider{
		root:     root,
		document: document,
		canvas:   root.Canvas(),
		leftEl:   root.Query(string(Left)),
		rightEl:  root.Query(string(Right)),
		windowEl: root.Query(string(Window)),
		data:     data,
		cfg:      cfg,
		width:    float64(cfg.Width),
		minWidth: float64(cfg.Width) * cfg.MinWindow,
	}
	if s.canvas == nil {
		return nil, fmt.Errorf("slider root %q has no canvas", root.ID())
	}
	for tag, el := range map[HandleType]*dom.Element{Left: s.leftEl, Right: s.rightEl, Window: s.windowEl} {
		if el == nil {
			return nil, fmt.Errorf("slider root %q has no %s element", root.ID(), tag)
		}
	}

	defaultWidth := s.width * cfg.DefaultWindow
	if !s.setPosition(0, s.width-defaultWidth) {
		return nil, fmt.Errorf("slider default window %v is narrower than the minimum %v", cfg.DefaultWindow, cfg.MinWindow)
	}

	s.canvas.Resize(cfg.Width, cfg.Height, cfg.Width*cfg.PixelRatio, cfg.Height*cfg.PixelRatio)
	s.pressID = root.Events().AddListener(events.PointerDown, s.onPress)

	s.paint()
	return s, nil
}

// Subscribe makes fn the only subscriber and calls it with the current window.
func (s *Slider) Subscribe(fn Subscriber) {
	if fn == nil {
		s.next = nil
		return
	}
	s.next = fn
	fn(s.Window())
}

// Window returns the selected range as [left%, right%] of the track.
func (s *Slider) Window() [2]float64 {
	left := s.leftEl.Style().Width
	right := s.width - s.rightEl.Style().Width
	return [2]float64{utils.Percent(left, s.width), utils.Percent(right, s.width)}
}

// Handles returns the inline styles of the left mask, the window and the right mask.
func (s *Slider) Handles() (left, window, right dom.Style) {
	return *s.leftEl.Style(), *s.windowEl.Style(), *s.rightEl.Style()
}

// Dragging returns the handle being dragged, or "" when idle.
func (s *Slider) Dragging() HandleType {
	if s.drag == nil {
		return ""
	}
	return s.drag.handle
}

// Destroy stops listening, ending any drag in progress.
func (s *Slider) Destroy() {
	s.endDrag()
	s.root.Events().RemoveListener(s.pressID)
}

// paint draws the miniature. It runs once; the dataset never changes.
func (s *Slider) paint() {
	ctx := s.canvas.Context()
	width := float64(s.canvas.Width())
	height := float64(s.canvas.Height())

	min, max, err := geometry.ValueRange(s.data)
	if err != nil {
		return
	}
	yRatio := geometry.YRatio(height, min, max)
	xRatio := geometry.XRatio(width, s.data.SampleCount())

	toCoords := geometry.ToPixelCoords(xRatio, yRatio, height, s.cfg.Baseline, min)
	for _, line := range s.data.Lines() {
		draw.Polyline(ctx, toCoords(line), s.data.Color(line.Name()))
	}
}

func (s *Slider) onPress(e *events.Event) {
	handle := HandleType(e.TargetType)
	if handle != Left && handle != Right && handle != Window {
		return
	}
	s.endDrag()

	w := s.windowEl.Style()
	s.drag = &drag{
		handle: handle,
		startX: e.PageX,
		left:   w.Left,
		right:  w.Right,
		width:  w.Width,
	}
	s.moveID = s.document.Events().AddListener(events.PointerMove, s.onMove)
	s.upID = s.document.Events().AddListener(events.PointerUp, s.onRelease)
}

func (s *Slider) onMove(e *events.Event) {
	d := s.drag
	if d == nil {
		return
	}
	delta := d.startX - e.PageX
	if delta == 0 {
		return
	}

	var left, right float64
	switch d.handle {
	case Window:
		left = d.left - delta
		if left < 0 {
			left = 0
		}
		if left+d.width > s.width {
			left = s.width - d.width
		}
		right = s.width - left - d.width
	case Left:
		right = d.right
		left = s.width - (d.width + delta) - d.right
		if left < 0 {
			left = 0
		}
	case Right:
		left = d.left
		right = s.width - (d.width - delta) - d.left
		if right < 0 {
			right = 0
		}
	}

	if s.setPosition(left, right) {
		s.notify()
	}
}

func (s *Slider) onRelease(*events.Event) {
	s.endDrag()
}

func (s *Slider) endDrag() {
	if s.drag == nil {
		return
	}
	s.document.Events().RemoveListener(s.moveID)
	s.document.Events().RemoveListener(s.upID)
	s.drag = nil
}

// setPosition applies a window with the given distances from the track
// edges. A window narrower than the minimum is dropped and the last valid
// geometry kept.
// TODO: clamp to the minimum width instead of dropping, a fast drag currently stops short of it.
func (s *Slider) setPosition(left, right float64) bool {
	w := s.width - right - left
	if w < s.minWidth {
		return false
	}

	*s.windowEl.Style() = dom.Style{Width: w, Left: left, Right: right}
	s.leftEl.Style().Width = left
	s.rightEl.Style().Width = right
	return true
}

func (s *Slider) notify() {
	if s.next != nil {
		s.next(s.Window())
	}
}

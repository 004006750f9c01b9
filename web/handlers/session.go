package handlers

import (
	"sync"
	"time"

	"tgchart/chart"
	"tgchart/config"
	"tgchart/dom"
	"tgchart/draw"
	"tgchart/events"
	"tgchart/frame"
	"tgchart/models"
	"tgchart/slider"
)

const (
	CHART_ID  = "chart"
	SLIDER_ID = "slider"
)

type sliderView struct {
	ID     string
	Left   dom.Style
	Window dom.Style
	Right  dom.Style
}

// session is one page's chart and slider. Pointer handlers and the tick
// stream run on different goroutines, so every access goes through mu.
type session struct {
	mu sync.Mutex

	loop     *frame.Loop
	document *dom.Element

	chartCanvas  *dom.Canvas
	chartScript  *draw.Script
	sliderRoot   *dom.Element
	sliderScript *draw.Script

	chart  *chart.Chart
	slider *slider.Slider

	// handlesDirty is set when the window moved and the handles haven't been patched yet.
	handlesDirty bool
	lastSeen     time.Time

	// sliderSeq is the sequence number of the last applied slider event.
	sliderSeq int
	// pressed is the press that started the current drag.
	pressed press
}

func newSession(data *models.Dataset, cfg *config.Config, now time.Time) (*session, error) {
	s := &session{
		loop:         frame.NewLoop(),
		document:     dom.NewDocument(),
		chartScript:  draw.NewScript(CHART_ID),
		sliderScript: draw.NewScript(SLIDER_ID + "-canvas"),
		lastSeen:     now,
	}
	s.chartCanvas = dom.NewCanvas(CHART_ID, s.chartScript)
	s.sliderRoot = slider.NewRoot(SLIDER_ID, s.sliderScript)

	var err error
	s.chart, err = chart.New(s.chartCanvas, data, cfg.ChartOptions(), s.loop)
	if err != nil {
		return nil, err
	}
	s.slider, err = slider.New(s.sliderRoot, s.document, data, cfg.SliderOptions())
	if err != nil {
		s.chart.Destroy()
		return nil, err
	}

	s.chart.Init()
	s.slider.Subscribe(func(window [2]float64) {
		s.handlesDirty = true
		s.chart.SetWindow(window[0], window[1])
	})
	return s, nil
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// pointChart forwards a pointer event over the main canvas. left is the
// canvas offset reported by the page.
func (s *session) pointChart(e *events.Event, left float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chartCanvas.SetLeft(left)
	s.chartCanvas.Events().Dispatch(e)
}

// sliderInput is one slider event as posted by the page. Seq increases with
// every event the page sends; StartX and Target describe the press that began
// the drag, so moves and releases can be applied even if they overtake it.
type sliderInput struct {
	Type   events.Type
	Seq    int
	PageX  float64
	StartX float64
	Target string
}

type press struct {
	startX float64
	target string
}

// pointSlider forwards a slider event. Presses land on the slider root,
// moves and releases on the document. Events older than the last applied one
// are dropped, and it reports whether this one was applied.
func (s *session) pointSlider(in sliderInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Seq <= s.sliderSeq {
		return false
	}
	s.sliderSeq = in.Seq

	if in.Type == events.PointerDown {
		s.pressSlider(press{in.PageX, in.Target})
		return true
	}

	current := press{in.StartX, in.Target}
	if in.Target != "" && (s.slider.Dragging() == "" || s.pressed != current) {
		s.pressSlider(current)
	}
	s.document.Events().Dispatch(&events.Event{Type: events.PointerMove, PageX: in.PageX})
	if in.Type == events.PointerUp {
		s.document.Events().Dispatch(&events.Event{Type: events.PointerUp, PageX: in.PageX})
	}
	return true
}

func (s *session) pressSlider(p press) {
	if s.slider.Dragging() != "" {
		s.document.Events().Dispatch(&events.Event{Type: events.PointerUp})
	}
	s.pressed = p
	s.sliderRoot.Events().Dispatch(&events.Event{Type: events.PointerDown, PageX: p.startX, TargetType: p.target})
}

// frame runs the queued animation frames and returns the canvas programs
// drawn since the last call, plus the handle layout when it changed.
func (s *session) frame(now time.Time) ([]string, *sliderView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loop.Run(now)

	var scripts []string
	for _, script := range []*draw.Script{s.chartScript, s.sliderScript} {
		if program := script.Flush(); program != "" {
			scripts = append(scripts, program)
		}
	}

	if !s.handlesDirty {
		return scripts, nil
	}
	s.handlesDirty = false
	view := s.handles()
	return scripts, &view
}

// replay returns programs that redraw both canvases from scratch, for a
// freshly connected page. Anything pending is folded into the replay.
func (s *session) replay() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var scripts []string
	for _, script := range []*draw.Script{s.chartScript, s.sliderScript} {
		script.Flush()
		if program := script.Replay(); program != "" {
			scripts = append(scripts, program)
		}
	}
	return scripts
}

func (s *session) view() sliderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handles()
}

func (s *session) handles() sliderView {
	left, window, right := s.slider.Handles()
	return sliderView{SLIDER_ID, left, window, right}
}

func (s *session) window() [2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chart.Window()
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slider.Destroy()
	s.chart.Destroy()
}

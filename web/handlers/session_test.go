package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgchart/config"
	"tgchart/events"
	"tgchart/store"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	s, err := newSession(store.SampleDataset(), cfg, time.Now())
	require.NoError(t, err)
	return s
}

func TestNewSession_StartsOnDefaultWindow(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, [2]float64{0, 30}, s.window())
	assert.Equal(t, 180.0, s.view().Window.Width)
}

func TestSessionFrame_FlushesOnlyNewDrawing(t *testing.T) {
	s := newTestSession(t)

	scripts, handles := s.frame(time.Now())
	assert.Len(t, scripts, 2)
	require.NotNil(t, handles)
	assert.Equal(t, SLIDER_ID, handles.ID)

	scripts, handles = s.frame(time.Now())
	assert.Empty(t, scripts)
	assert.Nil(t, handles)

	s.pointChart(&events.Event{Type: events.PointerMove, ClientX: 50}, 0)
	scripts, handles = s.frame(time.Now())
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], `getElementById("chart")`)
	assert.Nil(t, handles)
}

func TestSessionReplay_DropsPendingCalls(t *testing.T) {
	s := newTestSession(t)

	replay := s.replay()
	require.Len(t, replay, 2)
	assert.Contains(t, replay[0], "e.style.width")

	// The chart still owes the frame requested by the initial window.
	scripts, _ := s.frame(time.Now())
	assert.Len(t, scripts, 1)
}

func TestSessionClose_StopsListening(t *testing.T) {
	s := newTestSession(t)
	s.close()

	s.pointChart(&events.Event{Type: events.PointerMove, ClientX: 50}, 0)

	assert.Nil(t, s.chart.Pointer())
}

func TestPointSlider_MoveOvertakesPress(t *testing.T) {
	s := newTestSession(t)

	assert.True(t, s.pointSlider(sliderInput{Type: events.PointerMove, Seq: 2, PageX: 200, StartX: 100, Target: "window"}))
	assert.False(t, s.pointSlider(sliderInput{Type: events.PointerDown, Seq: 1, PageX: 100, Target: "window"}))
	assert.Equal(t, "window", string(s.slider.Dragging()))

	assert.True(t, s.pointSlider(sliderInput{Type: events.PointerUp, Seq: 3, PageX: 250, StartX: 100, Target: "window"}))

	assert.Equal(t, [2]float64{25, 55}, s.slider.Window())
	assert.Empty(t, s.slider.Dragging())
}

func TestPointSlider_ReleaseOvertakesMove(t *testing.T) {
	s := newTestSession(t)

	s.pointSlider(sliderInput{Type: events.PointerDown, Seq: 1, PageX: 100, Target: "window"})
	s.pointSlider(sliderInput{Type: events.PointerMove, Seq: 2, PageX: 150, StartX: 100, Target: "window"})
	assert.True(t, s.pointSlider(sliderInput{Type: events.PointerUp, Seq: 4, PageX: 250, StartX: 100, Target: "window"}))
	assert.False(t, s.pointSlider(sliderInput{Type: events.PointerMove, Seq: 3, PageX: 200, StartX: 100, Target: "window"}))

	assert.Equal(t, [2]float64{25, 55}, s.slider.Window())
	assert.Empty(t, s.slider.Dragging())
}

func TestPointSlider_NewDragReplacesUnfinishedOne(t *testing.T) {
	s := newTestSession(t)

	s.pointSlider(sliderInput{Type: events.PointerDown, Seq: 1, PageX: 100, Target: "window"})
	// The release of the first drag (seq 3) and the second press (seq 4) are still in flight.
	s.pointSlider(sliderInput{Type: events.PointerMove, Seq: 5, PageX: 320, StartX: 300, Target: "right"})
	assert.False(t, s.pointSlider(sliderInput{Type: events.PointerUp, Seq: 3, PageX: 100, StartX: 100, Target: "window"}))

	window := s.slider.Window()
	assert.Equal(t, 0.0, window[0])
	assert.InDelta(t, 100.0/3, window[1], 1e-9)
	assert.Equal(t, "right", string(s.slider.Dragging()))
}

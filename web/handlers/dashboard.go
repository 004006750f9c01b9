package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	ds "github.com/starfederation/datastar-go/datastar"

	"tgchart/chart"
	"tgchart/config"
	"tgchart/events"
	"tgchart/models"
	"tgchart/web"
)

// SESSION_TTL is how long a page's session outlives its last request.
const SESSION_TTL = 30 * time.Minute

type Dashboard struct {
	templates *template.Template
	data      *models.Dataset
	cfg       *config.Config
	log       logrus.FieldLogger

	mu       sync.Mutex
	sessions map[string]*session // pageID -> session
}

type pointerSig struct {
	Page    string `json:"page"`
	Pointer struct {
		Type    string  `json:"type"`
		ClientX float64 `json:"clientX"`
		Left    float64 `json:"left"`
	} `json:"pointer"`
}

type sliderSig struct {
	Page   string `json:"page"`
	Slider struct {
		Type   string  `json:"type"`
		Seq    int     `json:"seq"`
		PageX  float64 `json:"pageX"`
		StartX float64 `json:"startX"`
		Target string  `json:"target"`
	} `json:"slider"`
}

var pointerTypes = map[string]events.Type{
	"move":  events.PointerMove,
	"leave": events.PointerLeave,
	"down":  events.PointerDown,
	"up":    events.PointerUp,
}

func NewDashboard(data *models.Dataset, cfg *config.Config, logger logrus.FieldLogger) (dashboard *Dashboard, err error) {
	if data == nil {
		return nil, &models.ValidationError{Err: models.ErrEmptyDataset}
	}
	if err = data.Validate(); err != nil {
		return nil, err
	}
	dashboard = &Dashboard{
		data:     data,
		cfg:      cfg,
		log:      logger,
		sessions: make(map[string]*session),
	}
	dashboard.templates, err = template.New("").ParseFS(web.Templates, "templates/*.gohtml")
	return dashboard, err
}

func (d *Dashboard) Templates() *template.Template {
	return d.templates
}

func (d *Dashboard) Handlers() map[string]func(w http.ResponseWriter, r *http.Request) {
	return map[string]func(w http.ResponseWriter, r *http.Request){
		"/chart/pointer":  d.ChartPointerHandler,
		"/slider/pointer": d.SliderPointerHandler,
		"/chart.png":      d.SnapshotHandler,
	}
}

func (d *Dashboard) Data(pageID string) (map[string]interface{}, error) {
	s, err := d.session(pageID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"page":   pageID,
		"chart":  CHART_ID,
		"slider": s.view(),
	}, nil
}

// OnConnect redraws both canvases on a page that just opened its stream.
func (d *Dashboard) OnConnect(sse *ds.ServerSentEventGenerator, pageID string) error {
	s, err := d.session(pageID)
	if err != nil {
		return err
	}
	for _, script := range s.replay() {
		if err := sse.ExecuteScript(script); err != nil {
			return err
		}
	}
	return nil
}

// OnTick runs the page's animation frame and ships whatever it drew.
func (d *Dashboard) OnTick(sse *ds.ServerSentEventGenerator, now time.Time, pageID string) error {
	s, err := d.session(pageID)
	if err != nil {
		return err
	}
	scripts, handles := s.frame(now)

	for _, script := range scripts {
		if err := sse.ExecuteScript(script); err != nil {
			return err
		}
	}

	if handles != nil {
		writer := strings.Builder{}
		if err := d.templates.ExecuteTemplate(&writer, "slider.handles", handles); err != nil {
			d.log.WithError(err).Error("error executing slider.handles template")
			return nil
		}
		if err := sse.PatchElements(writer.String()); err != nil {
			return err
		}
	}

	return nil
}

// ChartPointerHandler receives mousemove and mouseleave from the main canvas.
func (d *Dashboard) ChartPointerHandler(w http.ResponseWriter, r *http.Request) {
	var sig pointerSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		d.log.WithError(err).Warn("error reading signals")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	eventType, ok := pointerTypes[sig.Pointer.Type]
	if !ok || (eventType != events.PointerMove && eventType != events.PointerLeave) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s := d.existingSession(sig.Page)
	if s == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.pointChart(&events.Event{Type: eventType, ClientX: sig.Pointer.ClientX}, sig.Pointer.Left)
	w.WriteHeader(http.StatusNoContent)
}

// SliderPointerHandler receives presses on the slider and the document moves
// and releases that follow them.
func (d *Dashboard) SliderPointerHandler(w http.ResponseWriter, r *http.Request) {
	var sig sliderSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		d.log.WithError(err).Warn("error reading signals")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	eventType, ok := pointerTypes[sig.Slider.Type]
	if !ok || eventType == events.PointerLeave {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s := d.existingSession(sig.Page)
	if s == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.pointSlider(sliderInput{
		Type:   eventType,
		Seq:    sig.Slider.Seq,
		PageX:  sig.Slider.PageX,
		StartX: sig.Slider.StartX,
		Target: sig.Slider.Target,
	})
	w.WriteHeader(http.StatusNoContent)
}

// SnapshotHandler renders a page's current window as a PNG, or the whole
// dataset when no page is given.
func (d *Dashboard) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	window := [2]float64{0, 100}
	if s := d.existingSession(r.URL.Query().Get("page")); s != nil {
		window = s.window()
	}

	var buf bytes.Buffer
	if err := chart.Snapshot(&buf, d.data, d.cfg.ChartOptions(), window); err != nil {
		d.log.WithError(err).Error("couldn't render snapshot")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		d.log.WithError(err).Warn("couldn't write snapshot")
	}
}

func (d *Dashboard) existingSession(pageID string) *session {
	if pageID == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessions[pageID]
}

// session returns the page's session, creating it on first use. Creating
// one also drops sessions that have been idle for longer than SESSION_TTL.
func (d *Dashboard) session(pageID string) (*session, error) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.sessions[pageID]; ok {
		s.touch(now)
		return s, nil
	}

	for id, s := range d.sessions {
		if s.idleSince(now) > SESSION_TTL {
			s.close()
			delete(d.sessions, id)
			d.log.WithField("page", id).Debug("session expired")
		}
	}

	s, err := newSession(d.data, d.cfg, now)
	if err != nil {
		return nil, err
	}
	d.sessions[pageID] = s
	d.log.WithField("page", pageID).Debug("session opened")
	return s, nil
}

func (d *Dashboard) sessionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	ds "github.com/starfederation/datastar-go/datastar"

	"tgchart/frame"
	"tgchart/web"
)

// pageSig is sent with every request a page makes.
type pageSig struct {
	Page string `json:"page"`
}

type Server struct {
	renderer Renderer
	handler  *http.ServeMux
	log      logrus.FieldLogger
	interval time.Duration
}

func NewServer(renderer Renderer, framerate int, logger logrus.FieldLogger) *Server {
	s := &Server{
		renderer: renderer,
		log:      logger,
		interval: frame.Interval(framerate),
	}

	handler := http.NewServeMux()
	handler.HandleFunc("/", s.IndexHandler)
	handler.HandleFunc("/tick", s.TickHandler)
	handler.Handle("/static/", http.FileServer(http.FS(web.Static)))

	for path, uiHandler := range renderer.Handlers() {
		handler.HandleFunc(path, uiHandler)
	}

	s.handler = handler

	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("listening")
	return http.ListenAndServe(addr, s.handler)
}

// IndexHandler is the main entrypoint for the UI
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	clientID := getClientID(w, r)
	pageID := newPageID()
	data, err := s.renderer.Data(pageID)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"client": clientID, "page": pageID}).Error("couldn't build index data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = s.renderer.Templates().ExecuteTemplate(w, "index", data)
	if err != nil {
		s.log.WithError(err).Error("couldn't execute template for index")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// TickHandler streams canvas updates to one page, one frame per tick.
func (s *Server) TickHandler(w http.ResponseWriter, r *http.Request) {
	var sig pageSig
	if err := ds.ReadSignals(r, &sig); err != nil || sig.Page == "" {
		s.log.WithError(err).Warn("tick stream without a page id")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	clientID := getClientID(w, r)
	sse := ds.NewSSE(w, r)
	log := s.log.WithFields(logrus.Fields{"client": clientID, "page": sig.Page})

	if err := s.renderer.OnConnect(sse, sig.Page); err != nil {
		log.WithError(err).Error("error replaying canvases")
		return
	}
	log.Debug("tick stream opened")

	ctx := r.Context()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("tick stream closed")
			return
		case tick := <-ticker.C:
			err := s.renderer.OnTick(sse, tick, sig.Page)
			if err != nil {
				log.WithError(err).Error("error running renderer on tick")
				return
			}
		}
	}
}

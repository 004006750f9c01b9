package handlers

import (
	"html/template"
	"net/http"
	"time"

	ds "github.com/starfederation/datastar-go/datastar"
)

type Renderer interface {
	Templates() *template.Template
	Handlers() map[string]func(w http.ResponseWriter, r *http.Request)
	Data(pageID string) (map[string]interface{}, error)
	// OnConnect runs once when a page opens its tick stream.
	OnConnect(sse *ds.ServerSentEventGenerator, pageID string) error
	OnTick(sse *ds.ServerSentEventGenerator, now time.Time, pageID string) error
}

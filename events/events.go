package events

import (
	"slices"
	"sync"
)

type Type string

const (
	PointerMove  Type = "mousemove"
	PointerLeave Type = "mouseleave"
	PointerDown  Type = "mousedown"
	PointerUp    Type = "mouseup"
)

type Event struct {
	Type Type
	// ClientX is the pointer x relative to the viewport, in CSS pixels.
	ClientX float64
	// PageX is the pointer x relative to the document, in CSS pixels.
	PageX float64
	// TargetType is the data-type of the element under the pointer, if any.
	TargetType string
}

type Listener func(*Event)

type registration struct {
	eventType Type
	listener  Listener
}

// Target keeps listeners per event type and dispatches events to them in
// registration order. Listeners are identified by the id returned from
// AddListener since funcs cannot be compared.
type Target struct {
	mu   sync.Mutex
	subs map[int]registration
	next int
}

func NewTarget() *Target {
	return &Target{subs: map[int]registration{}}
}

func (t *Target) AddListener(eventType Type, listener Listener) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.next
	t.next++
	t.subs[id] = registration{eventType, listener}
	return id
}

// RemoveListener drops the listener with the given id. Unknown ids are ignored.
func (t *Target) RemoveListener(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, id)
}

// Dispatch calls every listener registered for the event's type. Listeners may
// add or remove listeners while being called.
func (t *Target) Dispatch(event *Event) {
	t.mu.Lock()
	ids := make([]int, 0, len(t.subs))
	for id, reg := range t.subs {
		if reg.eventType == event.Type {
			ids = append(ids, id)
		}
	}
	t.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		t.mu.Lock()
		reg, ok := t.subs[id]
		t.mu.Unlock()
		if ok {
			reg.listener(event)
		}
	}
}

// Len returns the number of listeners registered for eventType.
func (t *Target) Len(eventType Type) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, reg := range t.subs {
		if reg.eventType == eventType {
			n++
		}
	}
	return n
}

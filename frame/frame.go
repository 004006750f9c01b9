// Package frame schedules work for the next display refresh, the way
// requestAnimationFrame does in a browser.
package frame

import (
	"sync"
	"time"
)

type Callback func(now time.Time)

// Loop queues callbacks until the next Run. Callbacks requested while a frame
// is running are deferred to the following frame.
type Loop struct {
	mu      sync.Mutex
	next    uint64
	order   []uint64
	pending map[uint64]Callback
	frames  int
}

func NewLoop() *Loop {
	return &Loop{pending: map[uint64]Callback{}}
}

// Request queues cb for the next frame and returns a non-zero id for Cancel.
func (l *Loop) Request(cb Callback) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	id := l.next
	l.pending[id] = cb
	l.order = append(l.order, id)
	return id
}

// Cancel drops a queued callback. Zero and unknown ids are ignored.
func (l *Loop) Cancel(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
}

// Pending returns the number of callbacks waiting for a frame.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frames returns how many frames have run.
func (l *Loop) Frames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Run executes the callbacks queued before it was called and returns how many ran.
func (l *Loop) Run(now time.Time) int {
	l.mu.Lock()
	batch := l.order
	l.order = nil
	l.frames++
	l.mu.Unlock()

	ran := 0
	for _, id := range batch {
		l.mu.Lock()
		cb, ok := l.pending[id]
		delete(l.pending, id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

// Interval returns the frame period for the given framerate.
func Interval(framerate int) time.Duration {
	if framerate <= 0 {
		framerate = 60
	}
	return time.Second / time.Duration(framerate)
}

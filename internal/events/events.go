// Package events carries acquisition lifecycle events from the coordinator
// to its observers. The stream is pure fan-out: observers never influence
// coordinator decisions.
package events

import (
	"sync"
	"time"
)

// Kind identifies the lifecycle stage an event reports.
type Kind string

// Event kinds. Every acquisition that reaches the installer publishes
// Started followed by exactly one terminal kind.
const (
	KindStarted         Kind = "started"
	KindCompleted       Kind = "completed"
	KindInstallError    Kind = "install-error"
	KindScriptError     Kind = "script-error"
	KindUnexpectedError Kind = "unexpected-error"
)

// Terminal reports whether the kind ends an acquisition.
func (k Kind) Terminal() bool {
	return k != KindStarted
}

// Event describes one lifecycle transition of an acquisition.
type Event struct {
	Kind      Kind
	RequestID string
	Version   string
	// Path is the installed artifact path; set on KindCompleted only.
	Path string
	// Detail carries the diagnostic payload for error kinds.
	Detail string
	At     time.Time
}

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not block.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Stream fans events out to subscribed handlers in subscription order.
// The zero value is not usable; call NewStream.
type Stream struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

// NewStream returns an empty event stream.
func NewStream() *Stream {
	return &Stream{}
}

// Subscribe registers a handler and returns a cancel func that removes it.
// A nil handler is ignored and the returned cancel is a no-op.
func (s *Stream) Subscribe(h Handler) func() {
	if h == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscription{id: id, handler: h})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every subscribed handler. A zero At is stamped
// with the current time.
func (s *Stream) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	s.mu.Lock()
	handlers := make([]Handler, len(s.subs))
	for i, sub := range s.subs {
		handlers[i] = sub.handler
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}

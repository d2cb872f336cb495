// Package watch fans appended entries out to live viewers. Subscriptions
// are scoped to one (user, day) bucket, matching the viewer's realtime
// listener on a single day collection.
package watch

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mapmysteps/location-backend-go/internal/models"
)

// Scope identifies one (user, day) bucket
type Scope struct {
	UserID string
	Day    string
}

// Subscriber receives entries appended to one scope. Entries is buffered;
// a subscriber that falls behind has updates dropped rather than blocking
// the writer.
type Subscriber struct {
	Entries chan models.LogEntry

	scope   Scope
	dropped uint64
}

// Dropped returns how many entries were dropped because the subscriber's
// channel was full
func (s *Subscriber) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

// Hub routes appended entries to the subscribers of their scope
type Hub struct {
	mu     sync.Mutex
	subs   map[Scope]map[*Subscriber]bool
	logger zerolog.Logger
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs:   make(map[Scope]map[*Subscriber]bool),
		logger: log.With().Str("module", "watch").Logger(),
	}
}

// Subscribe registers a new subscriber for the given scope
func (h *Hub) Subscribe(scope Scope) *Subscriber {
	sub := &Subscriber{
		Entries: make(chan models.LogEntry, 16),
		scope:   scope,
	}

	h.mu.Lock()
	set, ok := h.subs[scope]
	if !ok {
		set = make(map[*Subscriber]bool)
		h.subs[scope] = set
	}
	set[sub] = true
	h.mu.Unlock()

	return sub
}

// Unsubscribe detaches a subscriber. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[sub.scope]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.scope)
		}
	}
	h.mu.Unlock()
}

// Publish delivers an entry to every subscriber of the scope. The push is
// non-blocking: a full subscriber channel drops the entry.
func (h *Hub) Publish(scope Scope, entry models.LogEntry) {
	h.mu.Lock()
	for sub := range h.subs[scope] {
		select {
		case sub.Entries <- entry:
		default:
			atomic.AddUint64(&sub.dropped, 1)
			h.logger.Warn().Str("user", scope.UserID).Str("day", scope.Day).Msg("slow watch subscriber, entry dropped")
		}
	}
	h.mu.Unlock()
}

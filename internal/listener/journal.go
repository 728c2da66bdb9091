package listener

import (
	"context"
	"sync"

	"github.com/phrazzld/roster-api/internal/events"
)

// DefaultJournalSize is used when NewEventJournal gets a non-positive size.
const DefaultJournalSize = 256

// EventJournal keeps the most recent events in a fixed-size ring.
type EventJournal struct {
	mu    sync.RWMutex
	ring  []events.DomainEvent
	next  int
	count int
}

// NewEventJournal creates a journal holding at most size events.
func NewEventJournal(size int) *EventJournal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &EventJournal{ring: make([]events.DomainEvent, size)}
}

// Handle implements events.Handler.
func (j *EventJournal) Handle(_ context.Context, event events.DomainEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.ring[j.next] = event
	j.next = (j.next + 1) % len(j.ring)
	if j.count < len(j.ring) {
		j.count++
	}
	return nil
}

// Recent returns up to limit events, newest first. A limit of zero or less
// returns everything retained.
func (j *EventJournal) Recent(limit int) []events.DomainEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := j.count
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]events.DomainEvent, 0, n)
	for i := 1; i <= n; i++ {
		idx := (j.next - i + len(j.ring)) % len(j.ring)
		out = append(out, j.ring[idx])
	}
	return out
}

// Len returns the number of retained events.
func (j *EventJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.count
}

// Capacity returns the maximum number of retained events.
func (j *EventJournal) Capacity() int {
	return len(j.ring)
}

package listener

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// IdempotencyStore remembers which keys were already handled so a redelivered
// event does not notify twice.
type IdempotencyStore interface {
	// Claim returns true the first time key is seen within the retention
	// window and false afterwards.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets a claim so a later redelivery can retry the send.
	Release(ctx context.Context, key string) error
}

// DefaultIdempotencyCapacity bounds MemoryIdempotencyStore.
const DefaultIdempotencyCapacity = 10_000

type claimed struct {
	key     string
	expires time.Time
}

// MemoryIdempotencyStore is a process-local IdempotencyStore. Keys expire
// after ttl; past capacity the oldest claims are forgotten first.
type MemoryIdempotencyStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	order    *list.List
	index    map[string]*list.Element
	now      func() time.Time
}

// NewMemoryIdempotencyStore creates a MemoryIdempotencyStore. A capacity of
// zero or less means DefaultIdempotencyCapacity.
func NewMemoryIdempotencyStore(ttl time.Duration, capacity int) *MemoryIdempotencyStore {
	if capacity <= 0 {
		capacity = DefaultIdempotencyCapacity
	}
	return &MemoryIdempotencyStore{
		ttl:      ttl,
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Claim implements IdempotencyStore.
func (s *MemoryIdempotencyStore) Claim(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	if _, ok := s.index[key]; ok {
		return false, nil
	}

	s.index[key] = s.order.PushBack(claimed{key: key, expires: now.Add(s.ttl)})
	for s.order.Len() > s.capacity {
		s.remove(s.order.Front())
	}
	return true, nil
}

// Release implements IdempotencyStore.
func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.index[key]; ok {
		s.remove(e)
	}
	return nil
}

// Len returns the number of remembered keys.
func (s *MemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// evictExpired drops claims from the front while they are expired. Claims
// are appended in time order with one ttl, so the front expires first.
func (s *MemoryIdempotencyStore) evictExpired(now time.Time) {
	for e := s.order.Front(); e != nil; e = s.order.Front() {
		if now.Before(e.Value.(claimed).expires) {
			return
		}
		s.remove(e)
	}
}

func (s *MemoryIdempotencyStore) remove(e *list.Element) {
	delete(s.index, e.Value.(claimed).key)
	s.order.Remove(e)
}

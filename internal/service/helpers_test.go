package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/platform/memory"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// inlineScheduler runs released async jobs on the caller's goroutine.
type inlineScheduler struct{}

func (inlineScheduler) Submit(job func()) { job() }

// eventLog records what a subscriber saw.
type eventLog struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (l *eventLog) handler(_ context.Context, e events.DomainEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *eventLog) types() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.EventType())
	}
	return out
}

func (l *eventLog) last() events.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return nil
	}
	return l.events[len(l.events)-1]
}

type fixture struct {
	store  *memory.Store
	bus    *events.Bus
	sync   *eventLog
	async  *eventLog
	people service.PersonService
	orgs   service.OrganizationService
	jobs   service.JobService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(testLogger()),
		bus:   events.NewBus(testLogger(), events.WithScheduler(inlineScheduler{})),
		sync:  &eventLog{},
		async: &eventLog{},
	}
	f.bus.SubscribeAll("sync-recorder", events.Sync, f.sync.handler)
	f.bus.SubscribeAll("async-recorder", events.Async, f.async.handler)

	var err error
	f.people, err = service.NewPersonService(f.store, f.bus, testLogger())
	require.NoError(t, err)
	f.orgs, err = service.NewOrganizationService(f.store, f.bus, testLogger())
	require.NoError(t, err)
	f.jobs, err = service.NewJobService(f.bus, testLogger())
	require.NoError(t, err)
	return f
}

func ptr[T any](v T) *T { return &v }

// requireSuccess unwraps a successful result.
func requireSuccess[T any](t *testing.T, r result.Result[T]) T {
	t.Helper()
	require.True(t, r.IsSuccess(), "expected success, got %v", r.Reason())
	return r.GetOrZero()
}

// requireFailure unwraps a failed result.
func requireFailure[T any](t *testing.T, r result.Result[T]) failure.Reason {
	t.Helper()
	require.True(t, r.IsFailure(), "expected failure, got success")
	return r.Reason()
}

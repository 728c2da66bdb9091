package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/roster-api/internal/redact"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrRecursivePublish is returned when a synchronous handler publishes while
// its own dispatch is still running.
var ErrRecursivePublish = errors.New("publish called from inside a synchronous handler")

// ErrHandlerPanic wraps a panic recovered from a handler.
var ErrHandlerPanic = errors.New("event handler panicked")

// Mode selects how a subscriber is invoked.
type Mode int

const (
	// Sync handlers run on the publishing goroutine before Publish returns.
	Sync Mode = iota
	// Async handlers run on the worker pool and are not awaited.
	Async
)

func (m Mode) String() string {
	if m == Async {
		return "async"
	}
	return "sync"
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, event DomainEvent) error

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	PublishAll(ctx context.Context, events ...DomainEvent) error
}

// Subscriber is what listeners register against.
type Subscriber interface {
	SubscribeAll(name string, mode Mode, handler Handler)
	SubscribeFamily(family Family, name string, mode Mode, handler Handler)
	SubscribeType(eventType string, name string, mode Mode, handler Handler)
}

// HandlerError is returned by Publish when a synchronous handler fails.
type HandlerError struct {
	Subscriber string
	EventType  string
	Err        error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("subscriber %s failed on %s: %v", e.Subscriber, e.EventType, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Metrics receives dispatch measurements.
type Metrics interface {
	EventPublished(eventType string)
	HandlerFailed(subscriber string, mode Mode)
	ObserveDispatch(eventType string, d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) EventPublished(string)                  {}
func (nopMetrics) HandlerFailed(string, Mode)             {}
func (nopMetrics) ObserveDispatch(string, time.Duration) {}

// Scheduler runs async deliveries. *WorkerPool implements it.
type Scheduler interface {
	Submit(job func())
}

type goScheduler struct{}

func (goScheduler) Submit(job func()) { go job() }

type subscription struct {
	name    string
	mode    Mode
	handler Handler
}

type dispatchingKey struct{}

// Bus is an in-process Publisher. Subscriptions are static: there is no
// unsubscribe. It is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	generic  []subscription
	families map[Family][]subscription
	types    map[string][]subscription

	scheduler Scheduler
	metrics   Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithScheduler sets where async handlers run. Defaults to a new goroutine per delivery.
func WithScheduler(s Scheduler) BusOption {
	return func(b *Bus) { b.scheduler = s }
}

// WithMetrics sets the dispatch metrics sink.
func WithMetrics(m Metrics) BusOption {
	return func(b *Bus) { b.metrics = m }
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) BusOption {
	return func(b *Bus) { b.tracer = t }
}

// NewBus creates an empty Bus.
func NewBus(logger *slog.Logger, opts ...BusOption) *Bus {
	b := &Bus{
		families:  make(map[Family][]subscription),
		types:     make(map[string][]subscription),
		scheduler: goScheduler{},
		metrics:   nopMetrics{},
		tracer:    otel.Tracer("github.com/phrazzld/roster-api/internal/events"),
		logger:    logger.With("component", "event_bus"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SubscribeAll registers handler for every event.
func (b *Bus) SubscribeAll(name string, mode Mode, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generic = append(b.generic, subscription{name: name, mode: mode, handler: handler})
	b.logger.Debug("registered subscriber", "subscriber", name, "channel", "all", "mode", mode.String())
}

// SubscribeFamily registers handler for every event of family.
func (b *Bus) SubscribeFamily(family Family, name string, mode Mode, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.families[family] = append(b.families[family], subscription{name: name, mode: mode, handler: handler})
	b.logger.Debug("registered subscriber", "subscriber", name, "channel", string(family), "mode", mode.String())
}

// SubscribeType registers handler for a single event type tag.
func (b *Bus) SubscribeType(eventType string, name string, mode Mode, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types[eventType] = append(b.types[eventType], subscription{name: name, mode: mode, handler: handler})
	b.logger.Debug("registered subscriber", "subscriber", name, "channel", eventType, "mode", mode.String())
}

// Publish delivers event to the generic, family and type channels in that
// order, each in registration order. It returns the first synchronous
// handler failure as a *HandlerError; later handlers are skipped.
func (b *Bus) Publish(ctx context.Context, event DomainEvent) error {
	if ctx.Value(dispatchingKey{}) != nil {
		return ErrRecursivePublish
	}

	ctx, span := b.tracer.Start(ctx, "events.Publish", trace.WithAttributes(
		attribute.String("event.type", event.EventType()),
		attribute.String("event.id", event.EventID().String()),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		b.metrics.ObserveDispatch(event.EventType(), time.Since(start))
	}()
	b.metrics.EventPublished(event.EventType())

	b.mu.RLock()
	channels := [][]subscription{
		copySubs(b.generic),
		copySubs(b.families[event.Family()]),
		copySubs(b.types[event.EventType()]),
	}
	b.mu.RUnlock()

	syncCtx := context.WithValue(ctx, dispatchingKey{}, event.EventID())
	asyncCtx := detach(ctx)
	pending := pendingFrom(ctx)

	for _, subs := range channels {
		for _, sub := range subs {
			if sub.mode == Async {
				b.enqueue(asyncCtx, pending, sub, event)
				continue
			}
			if err := b.invoke(syncCtx, sub, event); err != nil {
				b.metrics.HandlerFailed(sub.name, Sync)
				span.RecordError(err)
				span.SetStatus(codes.Error, "synchronous subscriber failed")
				return &HandlerError{Subscriber: sub.name, EventType: event.EventType(), Err: err}
			}
		}
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// PublishAll publishes events one at a time in order and stops at the first error.
func (b *Bus) PublishAll(ctx context.Context, events ...DomainEvent) error {
	for _, event := range events {
		if err := b.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) invoke(ctx context.Context, sub subscription, event DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return sub.handler(ctx, event)
}

func (b *Bus) enqueue(ctx context.Context, pending *PendingAsync, sub subscription, event DomainEvent) {
	job := func() {
		if err := b.invoke(ctx, sub, event); err != nil {
			b.metrics.HandlerFailed(sub.name, Async)
			b.logger.Error("async subscriber failed",
				"error", redact.Error(err),
				"subscriber", sub.name,
				"event_id", event.EventID(),
				"event_type", event.EventType())
		}
	}

	if pending != nil && pending.hold(b.scheduler, job) {
		return
	}
	b.scheduler.Submit(job)
}

// detach builds the context async handlers run with: values are kept,
// cancellation and any async deferral are dropped.
func detach(ctx context.Context) context.Context {
	ctx = context.WithoutCancel(ctx)
	return context.WithValue(ctx, pendingKey{}, (*PendingAsync)(nil))
}

func copySubs(subs []subscription) []subscription {
	if len(subs) == 0 {
		return nil
	}
	out := make([]subscription, len(subs))
	copy(out, subs)
	return out
}

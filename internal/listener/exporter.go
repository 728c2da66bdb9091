package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/phrazzld/roster-api/internal/events"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the outward form of an event.
type Envelope struct {
	EventID     uuid.UUID       `json:"event_id"`
	EventType   string          `json:"event_type"`
	Family      events.Family   `json:"family"`
	AggregateID string          `json:"aggregate_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEnvelope encodes event into an Envelope.
func NewEnvelope(event events.DomainEvent) (Envelope, error) {
	payload, err := codec.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}
	agg, _ := aggregateID(event)
	return Envelope{
		EventID:     event.EventID(),
		EventType:   event.EventType(),
		Family:      event.Family(),
		AggregateID: agg,
		OccurredAt:  event.OccurredAt(),
		Payload:     payload,
	}, nil
}

// Key returns the partitioning key: the aggregate when there is one,
// otherwise the event id.
func (e Envelope) Key() string {
	if e.AggregateID != "" {
		return e.AggregateID
	}
	return e.EventID.String()
}

// Sink receives exported envelopes.
type Sink interface {
	Export(ctx context.Context, env Envelope) error
}

// Exporter forwards every event to a Sink.
type Exporter struct {
	sink   Sink
	logger *slog.Logger
}

// NewExporter creates an Exporter.
func NewExporter(sink Sink, l *slog.Logger) *Exporter {
	return &Exporter{sink: sink, logger: l.With("component", "exporter")}
}

// Handle implements events.Handler.
func (x *Exporter) Handle(ctx context.Context, event events.DomainEvent) error {
	env, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	if err := x.sink.Export(ctx, env); err != nil {
		return fmt.Errorf("export %s: %w", env.EventID, err)
	}
	return nil
}

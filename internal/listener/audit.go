package listener

import (
	"context"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/platform/logger"
)

// AuditLogger writes one structured line per published event. It logs
// identity only, never payload fields.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger.
func NewAuditLogger(l *slog.Logger) *AuditLogger {
	if l == nil {
		l = slog.Default()
	}
	return &AuditLogger{logger: l.With("component", "audit")}
}

// Handle implements events.Handler.
func (a *AuditLogger) Handle(ctx context.Context, event events.DomainEvent) error {
	attrs := []any{
		"event_id", event.EventID().String(),
		"event_type", event.EventType(),
		"family", string(event.Family()),
		"occurred_at", event.OccurredAt(),
	}
	if agg, ok := aggregateID(event); ok {
		attrs = append(attrs, "aggregate_id", agg)
	}
	logger.FromContextOrDefault(ctx, a.logger).Info("domain event", attrs...)
	return nil
}

func aggregateID(event events.DomainEvent) (string, bool) {
	switch e := event.(type) {
	case events.PersonEvent:
		return e.AggregateID().String(), true
	case events.OrganizationEvent:
		return e.AggregateID().String(), true
	default:
		return "", false
	}
}

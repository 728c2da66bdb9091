package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/listener"
)

// EventSource returns recently published events, newest first.
type EventSource interface {
	Recent(limit int) []events.DomainEvent
}

// EventHandler serves the event journal.
type EventHandler struct {
	source EventSource
	logger *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(source EventSource, logger *slog.Logger) *EventHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EventHandler")
	}
	return &EventHandler{source: source, logger: logger.With(slog.String("component", "event_handler"))}
}

// ListEvents handles GET /api/events?limit=&type=. Events are rendered as
// export envelopes, newest first.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var fields domain.FieldErrors
	limit := queryInt(r, "limit", &fields)
	if limit < 0 {
		fields.Add("limit", domain.NewValidationError("limit", "", "limit cannot be negative"))
	}
	if !fields.Empty() {
		shared.RespondWithFailure(w, r, failure.Invalid(fields))
		return
	}
	eventType := r.URL.Query().Get("type")

	recent := h.source.Recent(0)
	items := make([]listener.Envelope, 0, len(recent))
	for _, e := range recent {
		if eventType != "" && e.EventType() != eventType {
			continue
		}
		if limit > 0 && len(items) == limit {
			break
		}
		env, err := listener.NewEnvelope(e)
		if err != nil {
			shared.RespondWithFailure(w, r, failure.Internal(err))
			return
		}
		items = append(items, env)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse[listener.Envelope]{Items: items, Limit: limit})
}

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports whether every dependency answers.
type HealthHandler struct {
	checks []HealthCheck
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler running checks in order.
func NewHealthHandler(logger *slog.Logger, checks ...HealthCheck) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{checks: checks, logger: logger.With(slog.String("component", "health"))}
}

// Health handles GET /health. Failing probes answer 503; their errors are
// only logged.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for _, c := range h.checks {
		if err := c.Probe(ctx); err != nil {
			log.Warn("health check failed", "check", c.Name, "error", redact.Error(err))
			resp.Checks[c.Name] = "unavailable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	shared.RespondWithJSON(w, r, status, resp)
}

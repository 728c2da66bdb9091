package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/service"
)

// JobHandler accepts completion reports from scheduled jobs.
type JobHandler struct {
	jobs   service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobs service.JobService, logger *slog.Logger) *JobHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for JobHandler")
	}
	return &JobHandler{jobs: jobs, logger: logger.With(slog.String("component", "job_handler"))}
}

// RecordCompletion handles POST /api/jobs/completions. The response is the
// published JobCompleted event.
func (h *JobHandler) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	var req JobCompletionRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	respond(w, r, h.jobs.RecordJobCompletion(r.Context(), req.toReport()), http.StatusAccepted, identity[events.JobCompleted])
}

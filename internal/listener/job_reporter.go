package listener

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/platform/logger"
)

// JobMetrics records the outcome of job runs.
type JobMetrics interface {
	ObserveJob(name string, success bool, processed, failed int, duration time.Duration)
	ObserveStartup(version string, at time.Time)
}

type nopJobMetrics struct{}

func (nopJobMetrics) ObserveJob(string, bool, int, int, time.Duration) {}
func (nopJobMetrics) ObserveStartup(string, time.Time)                 {}

// JobReporter logs system events and keeps last-run gauges current.
type JobReporter struct {
	metrics JobMetrics
	logger  *slog.Logger
}

// NewJobReporter creates a JobReporter. A nil metrics sink is allowed.
func NewJobReporter(m JobMetrics, l *slog.Logger) *JobReporter {
	if m == nil {
		m = nopJobMetrics{}
	}
	return &JobReporter{metrics: m, logger: l.With("component", "job_reporter")}
}

// Handle implements the system family handler.
func (r *JobReporter) Handle(ctx context.Context, event events.SystemEvent) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	switch e := event.(type) {
	case events.JobCompleted:
		r.metrics.ObserveJob(e.JobName, e.Success, e.Processed, e.Failed, e.Duration)
		level := slog.LevelInfo
		if !e.Success {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "job completed",
			"job_name", e.JobName,
			"processed", e.Processed,
			"failed", e.Failed,
			"success", e.Success,
			"duration_ms", e.Duration.Milliseconds())
	case events.ApplicationStarted:
		r.metrics.ObserveStartup(e.Version, e.OccurredAt())
		log.Info("application started", "version", e.Version)
	}
	return nil
}

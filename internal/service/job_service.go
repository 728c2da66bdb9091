package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/result"
)

// JobService records the outcome of scheduled jobs. It has no persistence;
// a completion is only announced as a JobCompleted event.
type JobService interface {
	RecordJobCompletion(ctx context.Context, report JobReport) result.Result[events.JobCompleted]
}

type jobServiceImpl struct {
	publisher events.Publisher
	logger    *slog.Logger
}

// NewJobService creates a JobService.
func NewJobService(publisher events.Publisher, logger *slog.Logger) (JobService, error) {
	if publisher == nil {
		return nil, fmt.Errorf("%w: publisher", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &jobServiceImpl{
		publisher: publisher,
		logger:    logger.With(slog.String("component", "job_service")),
	}, nil
}

// RecordJobCompletion implements JobService.RecordJobCompletion
func (s *jobServiceImpl) RecordJobCompletion(ctx context.Context, report JobReport) result.Result[events.JobCompleted] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var fields domain.FieldErrors
	if strings.TrimSpace(report.Name) == "" {
		fields.Add("job_name", errors.New("job_name cannot be empty"))
	}
	if report.Processed < 0 {
		fields.Add("processed", errors.New("processed cannot be negative"))
	}
	if report.Failed < 0 {
		fields.Add("failed", errors.New("failed cannot be negative"))
	}
	if report.Duration < 0 {
		fields.Add("duration", errors.New("duration cannot be negative"))
	}
	if !fields.Empty() {
		return result.Failure[events.JobCompleted](failure.Invalid(fields))
	}

	event := events.NewJobCompleted(
		strings.TrimSpace(report.Name),
		report.Processed,
		report.Failed,
		report.Success,
		report.Message,
		report.Duration,
	)

	ctx, async := events.DeferAsync(ctx)
	if err := s.publisher.Publish(ctx, event); err != nil {
		async.Discard()
		return unexpected[events.JobCompleted](log, "record_job_completion", err)
	}
	async.Release()

	log.Info("job completion recorded",
		slog.String("job_name", event.JobName),
		slog.Bool("success", event.Success))
	return result.Success(event)
}

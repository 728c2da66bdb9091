package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCompletion(t *testing.T) {
	t.Parallel()

	h := newHandlers(nil)
	var got service.JobReport
	h.jobs.RecordJobCompletionFn = func(_ context.Context, report service.JobReport) result.Result[events.JobCompleted] {
		got = report
		return result.Success(events.NewJobCompleted(report.Name, report.Processed, report.Failed, report.Success, report.Message, report.Duration))
	}

	w := h.do(t, http.MethodPost, "/api/jobs/completions",
		`{"job_name":"nightly-sync","processed":40,"failed":2,"success":false,"message":"partial","duration_ms":1500}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	assert.Equal(t, service.JobReport{
		Name:      "nightly-sync",
		Processed: 40,
		Failed:    2,
		Message:   "partial",
		Duration:  1500 * time.Millisecond,
	}, got)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "nightly-sync", body["job_name"])
	assert.NotEmpty(t, body["event_id"])

	w = h.do(t, http.MethodPost, "/api/jobs/completions", `{"job_name":"x","processed":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w).FieldErrors, "processed")
}

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Events(t *testing.T) {
	m := metrics.New()

	m.EventPublished(events.TypePersonCreated)
	m.EventPublished(events.TypePersonCreated)
	m.HandlerFailed("welcome_notifier", events.Async)
	m.ObserveDispatch(events.TypePersonCreated, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(events.TypePersonCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HandlerFailures.WithLabelValues("welcome_notifier", "async")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DispatchSeconds))
}

func TestMetrics_Jobs(t *testing.T) {
	m := metrics.New()

	m.ObserveJob("cleanup", false, 10, 2, 1500*time.Millisecond)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.JobLastSuccess.WithLabelValues("cleanup")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.JobProcessed.WithLabelValues("cleanup")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobFailed.WithLabelValues("cleanup")))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.JobDuration.WithLabelValues("cleanup")))
	assert.Positive(t, testutil.ToFloat64(m.JobLastRun.WithLabelValues("cleanup")))

	m.ObserveJob("cleanup", true, 3, 0, time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobLastSuccess.WithLabelValues("cleanup")))

	started := time.Unix(1_700_000_000, 0)
	m.ObserveStartup("1.0.0", started)
	assert.Equal(t, float64(started.Unix()), testutil.ToFloat64(m.StartTime.WithLabelValues("1.0.0")))
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.EventPublished(events.TypeMemberAdded)
	m.ObserveRequest(http.MethodGet, "/api/people/{id}", http.StatusNotFound, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `roster_events_published_total{event_type="organization.member_added"} 1`)
	assert.Contains(t, body, `roster_http_requests_total{method="GET",route="/api/people/{id}",status="404"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()
	a.EventPublished(events.TypePersonDeleted)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EventsPublished.WithLabelValues(events.TypePersonDeleted)))
}

// Package metrics holds the Prometheus collectors of the service. One
// Metrics value feeds the event bus, the job reporter and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roster"

// Metrics holds all collectors.
type Metrics struct {
	registry *prometheus.Registry

	EventsPublished *prometheus.CounterVec
	HandlerFailures *prometheus.CounterVec
	DispatchSeconds *prometheus.HistogramVec

	JobLastRun       *prometheus.GaugeVec
	JobLastSuccess   *prometheus.GaugeVec
	JobProcessed     *prometheus.GaugeVec
	JobFailed        *prometheus.GaugeVec
	JobDuration      *prometheus.GaugeVec
	StartTime        *prometheus.GaugeVec
	HTTPRequests     *prometheus.CounterVec
	HTTPRequestTimes *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Number of domain events published, by type.",
		}, []string{"event_type"}),
		HandlerFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_handler_failures_total",
			Help:      "Number of failed event handler invocations, by subscriber and mode.",
		}, []string{"subscriber", "mode"}),
		DispatchSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_dispatch_seconds",
			Help:      "Time spent in synchronous dispatch, by event type.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"event_type"}),
		JobLastRun: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_run_timestamp_seconds",
			Help:      "Unix time of the last reported run, by job.",
		}, []string{"job"}),
		JobLastSuccess: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_run_success",
			Help:      "1 if the last reported run succeeded, else 0.",
		}, []string{"job"}),
		JobProcessed: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_run_processed",
			Help:      "Items processed in the last reported run.",
		}, []string{"job"}),
		JobFailed: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_run_failed",
			Help:      "Items that failed in the last reported run.",
		}, []string{"job"}),
		JobDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_run_duration_seconds",
			Help:      "Duration of the last reported run.",
		}, []string{"job"}),
		StartTime: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "start_time_seconds",
			Help:      "Unix time the application reported itself started, by version.",
		}, []string{"version"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestTimes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// EventPublished implements events.Metrics.
func (m *Metrics) EventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// HandlerFailed implements events.Metrics.
func (m *Metrics) HandlerFailed(subscriber string, mode events.Mode) {
	m.HandlerFailures.WithLabelValues(subscriber, mode.String()).Inc()
}

// ObserveDispatch implements events.Metrics.
func (m *Metrics) ObserveDispatch(eventType string, d time.Duration) {
	m.DispatchSeconds.WithLabelValues(eventType).Observe(d.Seconds())
}

// ObserveJob records the outcome of a job run.
func (m *Metrics) ObserveJob(name string, success bool, processed, failed int, duration time.Duration) {
	m.JobLastRun.WithLabelValues(name).SetToCurrentTime()
	m.JobLastSuccess.WithLabelValues(name).Set(boolGauge(success))
	m.JobProcessed.WithLabelValues(name).Set(float64(processed))
	m.JobFailed.WithLabelValues(name).Set(float64(failed))
	m.JobDuration.WithLabelValues(name).Set(duration.Seconds())
}

// ObserveStartup records when the application started.
func (m *Metrics) ObserveStartup(version string, at time.Time) {
	m.StartTime.WithLabelValues(version).Set(float64(at.Unix()))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestTimes.WithLabelValues(method, route).Observe(d.Seconds())
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

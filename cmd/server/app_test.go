package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", ShutdownTimeoutSeconds: 5},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Auth:     config.AuthConfig{TokenLifetimeMinutes: 60},
		Events:   config.EventsConfig{AsyncWorkers: 2, AsyncQueueSize: 16, JournalSize: 64},
		Redis:    config.RedisConfig{IdempotencyTTLMinutes: 60},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { app.cleanup(context.Background()) })
	return app
}

func send(t *testing.T, srv *httptest.Server, method, path, body, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type eventList struct {
	Items []struct {
		EventType   string `json:"event_type"`
		AggregateID string `json:"aggregate_id"`
	} `json:"items"`
}

func TestApplication_PersonLifecycle(t *testing.T) {
	app := newTestApp(t, testConfig())
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp := send(t, srv, http.MethodPost, "/api/people", `{"name":"Ada Lovelace","email":"ada@example.com"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	created := decode[struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}](t, resp)
	assert.Equal(t, "ada@example.com", created.Email)

	resp = send(t, srv, http.MethodGet, "/api/people/"+created.ID, "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, srv, http.MethodPost, "/api/people", `{"name":"Impostor","email":"ada@example.com"}`, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "email_already_exists", body["code"])

	resp = send(t, srv, http.MethodPost, "/api/people/"+created.ID+"/verify-email", `{"email":"ada@example.com"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list eventList
	require.Eventually(t, func() bool {
		resp, err := srv.Client().Get(srv.URL + "/api/events?type=" + events.TypePersonCreated)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&list) != nil {
			return false
		}
		return len(list.Items) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, created.ID, list.Items[0].AggregateID)

	resp = send(t, srv, http.MethodDelete, "/api/people/"+created.ID, "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = send(t, srv, http.MethodGet, "/api/people/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApplication_Membership(t *testing.T) {
	app := newTestApp(t, testConfig())
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp := send(t, srv, http.MethodPost, "/api/people", `{"name":"Grace","email":"grace@example.com"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	person := decode[struct {
		ID string `json:"id"`
	}](t, resp)

	resp = send(t, srv, http.MethodPost, "/api/organizations", `{"name":"Navy","country":"US"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	org := decode[struct {
		ID string `json:"id"`
	}](t, resp)

	member := `{"person_id":"` + person.ID + `","role":"admin"}`
	resp = send(t, srv, http.MethodPost, "/api/organizations/"+org.ID+"/members", member, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = send(t, srv, http.MethodPost, "/api/organizations/"+org.ID+"/members", member, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = send(t, srv, http.MethodGet, "/api/organizations/"+org.ID+"/members", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	members := decode[struct {
		Items []map[string]any `json:"items"`
	}](t, resp)
	assert.Len(t, members.Items, 1)
}

func TestApplication_AuthProtectsMutations(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.JWTSecret = strings.Repeat("s", 32)
	app := newTestApp(t, cfg)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	payload := `{"name":"Ada","email":"ada@example.com"}`

	resp := send(t, srv, http.MethodPost, "/api/people", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	readOnly, err := app.jwtService.GenerateToken(context.Background(), "reader", nil)
	require.NoError(t, err)
	resp = send(t, srv, http.MethodPost, "/api/people", payload, readOnly)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = send(t, srv, http.MethodGet, "/api/events", "", readOnly)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	writer, err := app.jwtService.GenerateToken(context.Background(), "ops-bot", []string{auth.ScopeWrite})
	require.NoError(t, err)
	resp = send(t, srv, http.MethodPost, "/api/people", payload, writer)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = send(t, srv, http.MethodGet, "/api/people", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApplication_HealthAndMetrics(t *testing.T) {
	app := newTestApp(t, testConfig())
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp := send(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, srv, http.MethodPost, "/api/jobs/completions",
		`{"job_name":"nightly-sync","success":true,"processed":10,"failed":0,"duration_ms":1500}`, "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = send(t, srv, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, `roster_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, text, `roster_job_last_run_processed{job="nightly-sync"} 10`)
	assert.Contains(t, text, `roster_events_published_total{event_type="system.job_completed"} 1`)
}

func TestNewApplication_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Driver = "sqlite"

	_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestServeListener_AnnouncesStartupAndShutsDown(t *testing.T) {
	app := newTestApp(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serveListener(ctx, ln, app.routes()) }()

	require.Eventually(t, func() bool {
		for _, e := range app.listeners.Journal.Recent(0) {
			if e.EventType() == events.TypeApplicationStarted {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

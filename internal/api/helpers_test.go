package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/roster-api/internal/api"
	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type handlers struct {
	people *mocks.MockPersonService
	orgs   *mocks.MockOrganizationService
	jobs   *mocks.MockJobService
	router chi.Router
}

func newHandlers(source api.EventSource) *handlers {
	h := &handlers{
		people: &mocks.MockPersonService{},
		orgs:   &mocks.MockOrganizationService{},
		jobs:   &mocks.MockJobService{},
	}
	ph := api.NewPersonHandler(h.people, testLogger())
	oh := api.NewOrganizationHandler(h.orgs, testLogger())
	jh := api.NewJobHandler(h.jobs, testLogger())

	r := chi.NewRouter()
	r.Post("/api/people", ph.CreatePerson)
	r.Get("/api/people", ph.ListPeople)
	r.Get("/api/people/{id}", ph.GetPerson)
	r.Patch("/api/people/{id}", ph.UpdatePerson)
	r.Delete("/api/people/{id}", ph.DeletePerson)
	r.Post("/api/people/{id}/verify-email", ph.VerifyEmail)
	r.Post("/api/people/{id}/verify-phone", ph.VerifyPhone)
	r.Post("/api/organizations", oh.CreateOrganization)
	r.Get("/api/organizations/{id}", oh.GetOrganization)
	r.Post("/api/organizations/{id}/members", oh.AddMember)
	r.Get("/api/organizations/{id}/members", oh.ListMembers)
	r.Post("/api/jobs/completions", jh.RecordCompletion)
	if source != nil {
		r.Get("/api/events", api.NewEventHandler(source, testLogger()).ListEvents)
	}
	h.router = r
	return h
}

func (h *handlers) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decode[shared.ErrorResponse](t, w)
}

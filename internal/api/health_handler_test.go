package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/roster-api/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	ok := api.HealthCheck{Name: "database", Probe: func(context.Context) error { return nil }}
	down := api.HealthCheck{Name: "redis", Probe: func(context.Context) error {
		return errors.New("dial redis://:secret@cache:6379 refused")
	}}

	tests := []struct {
		name       string
		checks     []api.HealthCheck
		wantStatus int
		want       api.HealthResponse
	}{
		{name: "no checks", wantStatus: http.StatusOK, want: api.HealthResponse{Status: "ok"}},
		{
			name:       "all healthy",
			checks:     []api.HealthCheck{ok},
			wantStatus: http.StatusOK,
			want:       api.HealthResponse{Status: "ok", Checks: map[string]string{"database": "ok"}},
		},
		{
			name:       "one failing",
			checks:     []api.HealthCheck{ok, down},
			wantStatus: http.StatusServiceUnavailable,
			want: api.HealthResponse{
				Status: "unavailable",
				Checks: map[string]string{"database": "ok", "redis": "unavailable"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			api.NewHealthHandler(testLogger(), tc.checks...).Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.want, decode[api.HealthResponse](t, w))
			assert.NotContains(t, w.Body.String(), "secret")
		})
	}
}

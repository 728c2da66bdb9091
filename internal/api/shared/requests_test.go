package shared_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressBody struct {
	City string `json:"city" validate:"required"`
}

type createBody struct {
	Name    string       `json:"name" validate:"required,max=5"`
	ID      string       `json:"id" validate:"omitempty,uuid"`
	Count   int          `json:"count" validate:"gte=0"`
	Address *addressBody `json:"address" validate:"omitempty"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Ann","count":2}`},
		{name: "unknown field", body: `{"name":"Ann","extra":true}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"count":"two"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst createBody
			err := shared.DecodeJSON(httptest.NewRecorder(), req, &dst)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ann", dst.Name)
		})
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	t.Parallel()

	big := `{"name":"` + strings.Repeat("a", shared.MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	var dst createBody
	assert.Error(t, shared.DecodeJSON(httptest.NewRecorder(), req, &dst))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.Nil(t, shared.ValidateRequest(&createBody{Name: "Ann"}))

	reason := shared.ValidateRequest(&createBody{
		Name:    "Too long name",
		ID:      "nope",
		Count:   -1,
		Address: &addressBody{},
	})
	require.NotNil(t, reason)

	vf, ok := reason.(failure.ValidationFailed)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"name":         "name is too long",
		"id":           "id must be a UUID",
		"count":        "count must be at least 0",
		"address.city": "city is required",
	}, map[string]string(vf.FieldErrors))

	missing := shared.ValidateRequest(&createBody{}).(failure.ValidationFailed)
	assert.Equal(t, "name is required", missing.FieldErrors["name"])
}

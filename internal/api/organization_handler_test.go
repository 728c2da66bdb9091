package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrganization(t *testing.T) *domain.Organization {
	t.Helper()
	org, err := domain.NewOrganization("Acme", domain.MustNewCountryCode("US"), nil)
	require.NoError(t, err)
	return org
}

func TestCreateOrganization(t *testing.T) {
	t.Parallel()
	org := sampleOrganization(t)

	h := newHandlers(nil)
	var got service.CreateOrganizationInput
	h.orgs.CreateOrganizationFn = func(_ context.Context, in service.CreateOrganizationInput) result.Result[*domain.Organization] {
		got = in
		if in.Name == "Taken" {
			return result.Failure[*domain.Organization](failure.NameAlreadyExists{Name: in.Name})
		}
		return result.Success(org)
	}

	w := h.do(t, http.MethodPost, "/api/organizations", `{"name":"Acme","country":"US","postal_code":"94107"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "US", decode[map[string]any](t, w)["country"])
	require.NotNil(t, got.PostalCode)
	assert.Equal(t, "94107", *got.PostalCode)

	w = h.do(t, http.MethodPost, "/api/organizations", `{"name":"Taken","country":"US"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "name_already_exists", errorBody(t, w).Code)

	w = h.do(t, http.MethodPost, "/api/organizations", `{"name":"Acme"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w).FieldErrors, "country")
}

func TestGetOrganization(t *testing.T) {
	t.Parallel()
	org := sampleOrganization(t)

	h := newHandlers(nil)
	h.orgs.GetOrganizationFn = func(_ context.Context, id uuid.UUID) result.Result[*domain.Organization] {
		if id != org.ID {
			return result.Failure[*domain.Organization](failure.NotFound{Msg: "Organization not found"})
		}
		return result.Success(org)
	}

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/organizations/"+org.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/organizations/"+uuid.NewString(), "").Code)
}

func TestAddMember(t *testing.T) {
	t.Parallel()
	org := sampleOrganization(t)
	personID := uuid.New()
	path := "/api/organizations/" + org.ID.String() + "/members"

	tests := []struct {
		name       string
		body       string
		result     result.Result[*domain.Membership]
		wantStatus int
		wantCode   string
	}{
		{
			name: "added",
			body: `{"person_id":"` + personID.String() + `","role":"admin"}`,
			result: result.Success(&domain.Membership{
				OrganizationID: org.ID, PersonID: personID, Role: domain.RoleAdmin,
			}),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "already member",
			body:       `{"person_id":"` + personID.String() + `"}`,
			result:     result.Failure[*domain.Membership](failure.AlreadyMember{OrganizationID: org.ID, PersonID: personID}),
			wantStatus: http.StatusConflict,
			wantCode:   "already_member",
		},
		{
			name:       "person missing",
			body:       `{"person_id":"` + personID.String() + `"}`,
			result:     result.Failure[*domain.Membership](failure.NotFound{Msg: "Person not found"}),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "bad person id",
			body:       `{"person_id":"abc"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newHandlers(nil)
			h.orgs.AddMemberFn = func(_ context.Context, gotOrg, gotPerson uuid.UUID, _ string) result.Result[*domain.Membership] {
				assert.Equal(t, org.ID, gotOrg)
				assert.Equal(t, personID, gotPerson)
				return tc.result
			}

			w := h.do(t, http.MethodPost, path, tc.body)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, errorBody(t, w).Code)
				return
			}
			body := decode[map[string]any](t, w)
			assert.Equal(t, "admin", body["role"])
			assert.Equal(t, personID.String(), body["person_id"])
		})
	}
}

func TestListMembers(t *testing.T) {
	t.Parallel()
	org := sampleOrganization(t)

	h := newHandlers(nil)
	h.orgs.ListMembersFn = func(context.Context, uuid.UUID) result.Result[[]*domain.Membership] {
		return result.Success([]*domain.Membership{
			{OrganizationID: org.ID, PersonID: uuid.New(), Role: domain.RoleOwner},
			{OrganizationID: org.ID, PersonID: uuid.New(), Role: domain.RoleMember},
		})
	}

	w := h.do(t, http.MethodGet, "/api/organizations/"+org.ID.String()+"/members", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string]any](t, w)["items"], 2)
}

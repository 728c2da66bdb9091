package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePerson(t *testing.T) *domain.Person {
	t.Helper()
	phone := domain.MustNewPhone("+15551234567")
	p, err := domain.NewPerson("Ann Lee", domain.MustNewEmail("ann@example.com"), &phone, nil)
	require.NoError(t, err)
	return p
}

func TestCreatePerson(t *testing.T) {
	t.Parallel()
	person := samplePerson(t)

	tests := []struct {
		name       string
		body       string
		result     result.Result[*domain.Person]
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "created",
			body:       `{"name":"Ann Lee","email":"ann@example.com","phone":"+15551234567"}`,
			result:     result.Success(person),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing email",
			body:       `{"name":"Ann Lee"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantField:  "email",
		},
		{
			name:       "address without city",
			body:       `{"name":"Ann","email":"a@example.com","address":{"postal_code":"12345","country":"US"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantField:  "address.city",
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantField:  "body",
		},
		{
			name:       "duplicate email",
			body:       `{"name":"Ann Lee","email":"ann@example.com"}`,
			result:     result.Failure[*domain.Person](failure.EmailAlreadyExists{Email: person.Email}),
			wantStatus: http.StatusConflict,
			wantCode:   "email_already_exists",
		},
		{
			name:       "service validation",
			body:       `{"name":"Ann Lee","email":"not-an-email"}`,
			result:     result.Failure[*domain.Person](failure.Invalid(domain.FieldErrors{"email": "Invalid email format"})),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantField:  "email",
		},
		{
			name:       "internal error",
			body:       `{"name":"Ann Lee","email":"ann@example.com"}`,
			result:     result.Failure[*domain.Person](failure.Internal(errors.New("db down"))),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newHandlers(nil)
			var got service.CreatePersonInput
			h.people.CreatePersonFn = func(_ context.Context, in service.CreatePersonInput) result.Result[*domain.Person] {
				got = in
				return tc.result
			}

			w := h.do(t, http.MethodPost, "/api/people", tc.body)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())

			if tc.wantStatus == http.StatusCreated {
				body := decode[map[string]any](t, w)
				assert.Equal(t, person.ID.String(), body["id"])
				assert.Equal(t, "ann@example.com", body["email"])
				assert.Equal(t, "+15551234567", body["phone"])
				require.NotNil(t, got.Phone)
				assert.Equal(t, "+15551234567", *got.Phone)
				return
			}

			body := errorBody(t, w)
			assert.Equal(t, tc.wantCode, body.Code)
			if tc.wantField != "" {
				assert.Contains(t, body.FieldErrors, tc.wantField)
			}
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestListPeople(t *testing.T) {
	t.Parallel()

	t.Run("passes paging", func(t *testing.T) {
		h := newHandlers(nil)
		var got store.ListOptions
		h.people.ListPeopleFn = func(_ context.Context, opts store.ListOptions) result.Result[[]*domain.Person] {
			got = opts
			return result.Success([]*domain.Person{samplePerson(t)})
		}

		w := h.do(t, http.MethodGet, "/api/people?limit=10&offset=20", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, store.ListOptions{Limit: 10, Offset: 20}, got)

		body := decode[map[string]any](t, w)
		assert.Len(t, body["items"], 1)
		assert.EqualValues(t, 10, body["limit"])
		assert.EqualValues(t, 20, body["offset"])
	})

	t.Run("empty list is an array", func(t *testing.T) {
		h := newHandlers(nil)
		h.people.ListPeopleFn = func(context.Context, store.ListOptions) result.Result[[]*domain.Person] {
			return result.Success(make([]*domain.Person, 0))
		}
		w := h.do(t, http.MethodGet, "/api/people", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"items":[]`)
	})

	t.Run("non-integer limit", func(t *testing.T) {
		h := newHandlers(nil)
		w := h.do(t, http.MethodGet, "/api/people?limit=ten", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, errorBody(t, w).FieldErrors, "limit")
	})
}

func TestGetPerson(t *testing.T) {
	t.Parallel()
	person := samplePerson(t)

	h := newHandlers(nil)
	h.people.GetPersonFn = func(_ context.Context, id uuid.UUID) result.Result[*domain.Person] {
		if id == person.ID {
			return result.Success(person)
		}
		return result.Failure[*domain.Person](failure.NotFound{Msg: "Person not found"})
	}

	w := h.do(t, http.MethodGet, "/api/people/"+person.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ann Lee", decode[map[string]any](t, w)["name"])

	w = h.do(t, http.MethodGet, "/api/people/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "Person not found", body.Error)

	w = h.do(t, http.MethodGet, "/api/people/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w).FieldErrors, "id")
}

func TestUpdatePerson(t *testing.T) {
	t.Parallel()
	person := samplePerson(t)

	h := newHandlers(nil)
	var got service.UpdatePersonInput
	h.people.UpdatePersonFn = func(_ context.Context, _ uuid.UUID, in service.UpdatePersonInput) result.Result[*domain.Person] {
		got = in
		return result.Success(person)
	}

	w := h.do(t, http.MethodPatch, "/api/people/"+person.ID.String(), `{"email":"new@example.com","phone":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Email)
	assert.Equal(t, "new@example.com", *got.Email)
	require.NotNil(t, got.Phone)
	assert.Empty(t, *got.Phone, "empty phone is forwarded as a removal")
	assert.Nil(t, got.Name)
	assert.Nil(t, got.Address)
}

func TestDeletePerson(t *testing.T) {
	t.Parallel()
	person := samplePerson(t)

	h := newHandlers(nil)
	h.people.DeletePersonFn = func(_ context.Context, id uuid.UUID) result.Result[*domain.Person] {
		if id == person.ID {
			return result.Success(person)
		}
		return result.Failure[*domain.Person](failure.NotFound{Msg: "Person not found"})
	}

	w := h.do(t, http.MethodDelete, "/api/people/"+person.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = h.do(t, http.MethodDelete, "/api/people/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()
	person := samplePerson(t)

	h := newHandlers(nil)
	h.people.VerifyEmailFn = func(_ context.Context, _ uuid.UUID, email domain.Email) result.Result[*domain.Person] {
		if !email.Equal(person.Email) {
			return result.Failure[*domain.Person](failure.EmailMismatch{Expected: person.Email, Actual: email})
		}
		verified := *person
		verified.EmailVerified = true
		return result.Success(&verified)
	}
	path := "/api/people/" + person.ID.String() + "/verify-email"

	w := h.do(t, http.MethodPost, path, `{"email":"ann@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["email_verified"])

	w = h.do(t, http.MethodPost, path, `{"email":"other@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email_mismatch", errorBody(t, w).Code)

	w = h.do(t, http.MethodPost, path, `{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "validation_failed", body.Code)
	assert.Contains(t, body.FieldErrors, "email")
}

func TestVerifyPhone(t *testing.T) {
	t.Parallel()
	person := samplePerson(t)

	h := newHandlers(nil)
	h.people.VerifyPhoneFn = func(_ context.Context, _ uuid.UUID, phone domain.Phone) result.Result[*domain.Person] {
		if !phone.Equal(*person.Phone) {
			return result.Failure[*domain.Person](failure.PhoneMismatch{Expected: *person.Phone, Actual: phone})
		}
		return result.Success(person)
	}
	path := "/api/people/" + person.ID.String() + "/verify-phone"

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, path, `{"phone":"+15551234567"}`).Code)

	w := h.do(t, http.MethodPost, path, `{"phone":"+15550000000"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "phone_mismatch", errorBody(t, w).Code)

	w = h.do(t, http.MethodPost, path, `{"phone":"555-1234"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w).FieldErrors, "phone")
}

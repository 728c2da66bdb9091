package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/store"
)

// PersonHandler serves /api/people.
type PersonHandler struct {
	people service.PersonService
	logger *slog.Logger
}

// NewPersonHandler creates a PersonHandler.
func NewPersonHandler(people service.PersonService, logger *slog.Logger) *PersonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PersonHandler")
	}
	return &PersonHandler{
		people: people,
		logger: logger.With(slog.String("component", "person_handler")),
	}
}

// CreatePerson handles POST /api/people.
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res := h.people.CreatePerson(r.Context(), req.toInput())
	if res.IsSuccess() {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("person created", slog.String("person_id", res.GetOrZero().ID.String()))
	}
	respond(w, r, res, http.StatusCreated, identity[*domain.Person])
}

// ListPeople handles GET /api/people?limit=&offset=.
func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	var fields domain.FieldErrors
	opts := store.ListOptions{
		Limit:  queryInt(r, "limit", &fields),
		Offset: queryInt(r, "offset", &fields),
	}
	if !fields.Empty() {
		shared.RespondWithFailure(w, r, failure.Invalid(fields))
		return
	}

	page := opts.Normalize()
	respond(w, r, h.people.ListPeople(r.Context(), opts), http.StatusOK, func(people []*domain.Person) any {
		return ListResponse[*domain.Person]{Items: people, Limit: page.Limit, Offset: page.Offset}
	})
}

// GetPerson handles GET /api/people/{id}.
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	respond(w, r, h.people.GetPerson(r.Context(), id), http.StatusOK, identity[*domain.Person])
}

// UpdatePerson handles PATCH /api/people/{id}.
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdatePersonRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	respond(w, r, h.people.UpdatePerson(r.Context(), id, req.toInput()), http.StatusOK, identity[*domain.Person])
}

// DeletePerson handles DELETE /api/people/{id}.
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	h.people.DeletePerson(r.Context(), id).Match(
		func(*domain.Person) { w.WriteHeader(http.StatusNoContent) },
		func(reason failure.Reason) { shared.RespondWithFailure(w, r, reason) },
	)
}

// VerifyEmail handles POST /api/people/{id}/verify-email.
func (h *PersonHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req VerifyEmailRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		shared.RespondWithFailure(w, r, failure.FromValidation(err))
		return
	}
	respond(w, r, h.people.VerifyEmail(r.Context(), id, email), http.StatusOK, identity[*domain.Person])
}

// VerifyPhone handles POST /api/people/{id}/verify-phone.
func (h *PersonHandler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req VerifyPhoneRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	phone, err := domain.NewPhone(req.Phone)
	if err != nil {
		shared.RespondWithFailure(w, r, failure.FromValidation(err))
		return
	}
	respond(w, r, h.people.VerifyPhone(r.Context(), id, phone), http.StatusOK, identity[*domain.Person])
}

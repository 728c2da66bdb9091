package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/result"
)

// pathUUID parses the named chi path parameter. On failure it writes a 400
// response and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithFailure(w, r, failure.FromValidation(
			domain.NewValidationError(param, raw, "Invalid "+param+": expected a UUID"),
		))
		return uuid.Nil, false
	}
	return id, true
}

// decodeRequest decodes and validates the body into dst. On failure it
// writes a 400 response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := shared.DecodeJSON(w, r, dst); err != nil {
		var fields domain.FieldErrors
		fields.Add("body", domain.NewValidationError("body", "", "Request body must be a valid JSON object"))
		shared.RespondWithFailure(w, r, failure.Invalid(fields))
		return false
	}
	if reason := shared.ValidateRequest(dst); reason != nil {
		shared.RespondWithFailure(w, r, reason)
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter. It records a field
// error in fields when the value is not an integer.
func queryInt(r *http.Request, name string, fields *domain.FieldErrors) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields.Add(name, domain.NewValidationError(name, raw, name+" must be an integer"))
		return 0
	}
	return n
}

// respond renders res: success as JSON with status, failure as an error body.
func respond[T any](w http.ResponseWriter, r *http.Request, res result.Result[T], status int, render func(T) any) {
	res.Match(
		func(v T) { shared.RespondWithJSON(w, r, status, render(v)) },
		func(reason failure.Reason) { shared.RespondWithFailure(w, r, reason) },
	)
}

func identity[T any](v T) any { return v }

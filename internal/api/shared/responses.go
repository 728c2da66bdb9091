package shared

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error       string            `json:"error"`
	Code        string            `json:"code"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	TraceID     string            `json:"trace_id,omitempty"`
}

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", redact.Error(err))
	}
}

// RespondWithFailure writes the error body for reason. Internal failures are
// logged with their redacted cause and answered with a generic message.
func RespondWithFailure(w http.ResponseWriter, r *http.Request, reason failure.Reason) {
	status := StatusFor(reason)
	traceID := GetTraceID(r.Context())

	body := ErrorResponse{
		Error:   reason.Message(),
		Code:    string(reason.Kind()),
		TraceID: traceID,
	}
	if vf, ok := reason.(failure.ValidationFailed); ok && len(vf.FieldErrors) > 0 {
		body.FieldErrors = vf.FieldErrors
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	attrs := []any{
		"status_code", status,
		"code", body.Code,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if status >= http.StatusInternalServerError {
		body.Error = redact.String(body.Error)
		attrs = append(attrs, "error", redact.Error(reason))
		log.Error("API error response", attrs...)
	} else {
		log.Debug("API error response", attrs...)
	}

	RespondWithJSON(w, r, status, body)
}

// RespondWithError writes reason's status and code with a custom message.
// Middleware uses it to reject a request before any service runs.
func RespondWithError(w http.ResponseWriter, r *http.Request, reason failure.Reason, message string) {
	status := StatusFor(reason)
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    string(reason.Kind()),
		TraceID: GetTraceID(r.Context()),
	})
}

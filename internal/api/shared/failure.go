package shared

import (
	"net/http"

	"github.com/phrazzld/roster-api/internal/failure"
)

// statusVisitor maps every failure variant to an HTTP status. Adding a
// variant to failure.Visitor breaks compilation here until it is mapped.
type statusVisitor struct{}

var _ failure.Visitor = statusVisitor{}

func (statusVisitor) VisitError(failure.Error) any       { return http.StatusInternalServerError }
func (statusVisitor) VisitNotFound(failure.NotFound) any { return http.StatusNotFound }
func (statusVisitor) VisitValidationFailed(failure.ValidationFailed) any {
	return http.StatusBadRequest
}
func (statusVisitor) VisitUnauthorized(failure.Unauthorized) any { return http.StatusUnauthorized }
func (statusVisitor) VisitForbidden(failure.Forbidden) any       { return http.StatusForbidden }
func (statusVisitor) VisitConflict(failure.Conflict) any         { return http.StatusConflict }
func (statusVisitor) VisitServiceUnavailable(failure.ServiceUnavailable) any {
	return http.StatusServiceUnavailable
}
func (statusVisitor) VisitEmailAlreadyExists(failure.EmailAlreadyExists) any {
	return http.StatusConflict
}
func (statusVisitor) VisitPhoneAlreadyExists(failure.PhoneAlreadyExists) any {
	return http.StatusConflict
}
func (statusVisitor) VisitEmailMismatch(failure.EmailMismatch) any { return http.StatusBadRequest }
func (statusVisitor) VisitPhoneMismatch(failure.PhoneMismatch) any { return http.StatusBadRequest }
func (statusVisitor) VisitNameAlreadyExists(failure.NameAlreadyExists) any {
	return http.StatusConflict
}
func (statusVisitor) VisitAlreadyMember(failure.AlreadyMember) any { return http.StatusConflict }

// StatusFor returns the HTTP status for reason.
func StatusFor(reason failure.Reason) int {
	return failure.Visit(reason, statusVisitor{}).(int)
}

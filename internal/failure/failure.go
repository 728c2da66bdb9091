// Package failure defines the closed set of business failure reasons returned
// by services. A Reason is a value, not a panic or a bare error: callers branch
// on it with a Visitor or a type switch, and adapters map its Category to a
// transport status.
package failure

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
)

// Kind is the stable code of a failure reason. It is exposed on the wire.
type Kind string

// Every Kind. AllKinds must list each of them.
const (
	KindError              Kind = "error"
	KindNotFound           Kind = "not_found"
	KindValidationFailed   Kind = "validation_failed"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindConflict           Kind = "conflict"
	KindServiceUnavailable Kind = "service_unavailable"
	KindEmailAlreadyExists Kind = "email_already_exists"
	KindPhoneAlreadyExists Kind = "phone_already_exists"
	KindEmailMismatch      Kind = "email_mismatch"
	KindPhoneMismatch      Kind = "phone_mismatch"
	KindNameAlreadyExists  Kind = "name_already_exists"
	KindAlreadyMember      Kind = "already_member"
)

// AllKinds lists every failure kind.
func AllKinds() []Kind {
	return []Kind{
		KindError,
		KindNotFound,
		KindValidationFailed,
		KindUnauthorized,
		KindForbidden,
		KindConflict,
		KindServiceUnavailable,
		KindEmailAlreadyExists,
		KindPhoneAlreadyExists,
		KindEmailMismatch,
		KindPhoneMismatch,
		KindNameAlreadyExists,
		KindAlreadyMember,
	}
}

// Category groups kinds by how a caller should react to them.
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryNotFound     Category = "not_found"
	CategoryConflict     Category = "conflict"
	CategoryUnauthorized Category = "unauthorized"
	CategoryForbidden    Category = "forbidden"
	CategoryUnavailable  Category = "unavailable"
	CategoryInternal     Category = "internal"
)

// Reason is a classified business failure. The set of implementations is
// closed to this package.
type Reason interface {
	error
	Kind() Kind
	Category() Category
	// Message is safe to show to callers.
	Message() string
	accept(v Visitor) any
}

// Error is an unexpected infrastructure failure. Its Message is fixed and
// never includes Cause.
type Error struct {
	Msg   string
	Cause error
}

// Internal builds an Error with the generic caller-facing message.
func Internal(cause error) Error {
	return Error{Msg: "An unexpected error occurred", Cause: cause}
}

func (e Error) Kind() Kind           { return KindError }
func (e Error) Category() Category   { return CategoryInternal }
func (e Error) Message() string      { return e.Msg }
func (e Error) Unwrap() error        { return e.Cause }
func (e Error) accept(v Visitor) any { return v.VisitError(e) }

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

// NotFound reports a missing entity.
type NotFound struct {
	Msg string
}

func (e NotFound) Kind() Kind           { return KindNotFound }
func (e NotFound) Category() Category   { return CategoryNotFound }
func (e NotFound) Message() string      { return e.Msg }
func (e NotFound) Error() string        { return e.Msg }
func (e NotFound) accept(v Visitor) any { return v.VisitNotFound(e) }

// ValidationFailed reports rejected input. FieldErrors maps field names to
// their caller-facing messages and may be empty.
type ValidationFailed struct {
	Msg         string
	FieldErrors map[string]string
}

// FromValidation converts a value construction error into ValidationFailed.
func FromValidation(err error) ValidationFailed {
	var fields domain.FieldErrors
	fields.Add(fieldOf(err), err)
	return ValidationFailed{Msg: "Validation failed", FieldErrors: fields}
}

// Invalid builds a ValidationFailed from collected field errors.
func Invalid(fields domain.FieldErrors) ValidationFailed {
	return ValidationFailed{Msg: "Validation failed", FieldErrors: fields}
}

func fieldOf(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Field != "" {
		return vErr.Field
	}
	return "input"
}

func (e ValidationFailed) Kind() Kind         { return KindValidationFailed }
func (e ValidationFailed) Category() Category { return CategoryValidation }
func (e ValidationFailed) Message() string    { return e.Msg }
func (e ValidationFailed) Error() string {
	if len(e.FieldErrors) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.FieldErrors)
}
func (e ValidationFailed) accept(v Visitor) any { return v.VisitValidationFailed(e) }

// Unauthorized reports a missing or invalid credential.
type Unauthorized struct{}

func (Unauthorized) Kind() Kind             { return KindUnauthorized }
func (Unauthorized) Category() Category     { return CategoryUnauthorized }
func (Unauthorized) Message() string        { return "Authentication required" }
func (e Unauthorized) Error() string        { return e.Message() }
func (e Unauthorized) accept(v Visitor) any { return v.VisitUnauthorized(e) }

// Forbidden reports an authenticated caller without permission.
type Forbidden struct{}

func (Forbidden) Kind() Kind             { return KindForbidden }
func (Forbidden) Category() Category     { return CategoryForbidden }
func (Forbidden) Message() string        { return "Access denied" }
func (e Forbidden) Error() string        { return e.Message() }
func (e Forbidden) accept(v Visitor) any { return v.VisitForbidden(e) }

// Conflict reports a state conflict not covered by a more specific reason.
type Conflict struct {
	Msg string
}

func (e Conflict) Kind() Kind           { return KindConflict }
func (e Conflict) Category() Category   { return CategoryConflict }
func (e Conflict) Message() string      { return e.Msg }
func (e Conflict) Error() string        { return e.Msg }
func (e Conflict) accept(v Visitor) any { return v.VisitConflict(e) }

// ServiceUnavailable reports a dependency that cannot currently serve requests.
type ServiceUnavailable struct{}

func (ServiceUnavailable) Kind() Kind             { return KindServiceUnavailable }
func (ServiceUnavailable) Category() Category     { return CategoryUnavailable }
func (ServiceUnavailable) Message() string        { return "Service temporarily unavailable" }
func (e ServiceUnavailable) Error() string        { return e.Message() }
func (e ServiceUnavailable) accept(v Visitor) any { return v.VisitServiceUnavailable(e) }

// EmailAlreadyExists reports an email held by another person.
type EmailAlreadyExists struct {
	Email domain.Email
}

func (e EmailAlreadyExists) Kind() Kind         { return KindEmailAlreadyExists }
func (e EmailAlreadyExists) Category() Category { return CategoryConflict }
func (e EmailAlreadyExists) Message() string {
	return fmt.Sprintf("A person with email %s already exists", e.Email)
}
func (e EmailAlreadyExists) Error() string        { return e.Message() }
func (e EmailAlreadyExists) accept(v Visitor) any { return v.VisitEmailAlreadyExists(e) }

// PhoneAlreadyExists reports a phone number held by another person.
type PhoneAlreadyExists struct {
	Phone domain.Phone
}

func (e PhoneAlreadyExists) Kind() Kind         { return KindPhoneAlreadyExists }
func (e PhoneAlreadyExists) Category() Category { return CategoryConflict }
func (e PhoneAlreadyExists) Message() string {
	return fmt.Sprintf("A person with phone %s already exists", e.Phone)
}
func (e PhoneAlreadyExists) Error() string        { return e.Message() }
func (e PhoneAlreadyExists) accept(v Visitor) any { return v.VisitPhoneAlreadyExists(e) }

// EmailMismatch reports a verification attempt with the wrong email.
// Expected is the stored address.
type EmailMismatch struct {
	Expected domain.Email
	Actual   domain.Email
}

func (e EmailMismatch) Kind() Kind         { return KindEmailMismatch }
func (e EmailMismatch) Category() Category { return CategoryValidation }
func (e EmailMismatch) Message() string {
	return fmt.Sprintf("Email %s does not match the email on record", e.Actual)
}
func (e EmailMismatch) Error() string {
	return fmt.Sprintf("email mismatch: expected %s, got %s", e.Expected, e.Actual)
}
func (e EmailMismatch) accept(v Visitor) any { return v.VisitEmailMismatch(e) }

// PhoneMismatch reports a verification attempt with the wrong phone.
type PhoneMismatch struct {
	Expected domain.Phone
	Actual   domain.Phone
}

func (e PhoneMismatch) Kind() Kind         { return KindPhoneMismatch }
func (e PhoneMismatch) Category() Category { return CategoryValidation }
func (e PhoneMismatch) Message() string {
	return fmt.Sprintf("Phone %s does not match the phone on record", e.Actual)
}
func (e PhoneMismatch) Error() string {
	return fmt.Sprintf("phone mismatch: expected %s, got %s", e.Expected, e.Actual)
}
func (e PhoneMismatch) accept(v Visitor) any { return v.VisitPhoneMismatch(e) }

// NameAlreadyExists reports an organization name already in use.
type NameAlreadyExists struct {
	Name string
}

func (e NameAlreadyExists) Kind() Kind         { return KindNameAlreadyExists }
func (e NameAlreadyExists) Category() Category { return CategoryConflict }
func (e NameAlreadyExists) Message() string {
	return fmt.Sprintf("An organization named %q already exists", e.Name)
}
func (e NameAlreadyExists) Error() string        { return e.Message() }
func (e NameAlreadyExists) accept(v Visitor) any { return v.VisitNameAlreadyExists(e) }

// AlreadyMember reports a duplicate membership.
type AlreadyMember struct {
	OrganizationID uuid.UUID
	PersonID       uuid.UUID
}

func (e AlreadyMember) Kind() Kind         { return KindAlreadyMember }
func (e AlreadyMember) Category() Category { return CategoryConflict }
func (e AlreadyMember) Message() string {
	return fmt.Sprintf("Person %s is already a member of organization %s", e.PersonID, e.OrganizationID)
}
func (e AlreadyMember) Error() string        { return e.Message() }
func (e AlreadyMember) accept(v Visitor) any { return v.VisitAlreadyMember(e) }

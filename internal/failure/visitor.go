package failure

// Visitor handles every Reason variant. Adding a variant adds a method here,
// so every implementation stops compiling until it handles the new case.
type Visitor interface {
	VisitError(Error) any
	VisitNotFound(NotFound) any
	VisitValidationFailed(ValidationFailed) any
	VisitUnauthorized(Unauthorized) any
	VisitForbidden(Forbidden) any
	VisitConflict(Conflict) any
	VisitServiceUnavailable(ServiceUnavailable) any
	VisitEmailAlreadyExists(EmailAlreadyExists) any
	VisitPhoneAlreadyExists(PhoneAlreadyExists) any
	VisitEmailMismatch(EmailMismatch) any
	VisitPhoneMismatch(PhoneMismatch) any
	VisitNameAlreadyExists(NameAlreadyExists) any
	VisitAlreadyMember(AlreadyMember) any
}

// Visit dispatches r to the matching Visitor method and returns its result.
func Visit(r Reason, v Visitor) any {
	return r.accept(v)
}

// Samples returns one value of every variant, in AllKinds order.
// Used by exhaustiveness tests in adapters.
func Samples() []Reason {
	return []Reason{
		Internal(nil),
		NotFound{Msg: "not found"},
		ValidationFailed{Msg: "Validation failed"},
		Unauthorized{},
		Forbidden{},
		Conflict{Msg: "conflict"},
		ServiceUnavailable{},
		EmailAlreadyExists{},
		PhoneAlreadyExists{},
		EmailMismatch{},
		PhoneMismatch{},
		NameAlreadyExists{},
		AlreadyMember{},
	}
}

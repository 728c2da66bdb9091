package events

import (
	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
)

// PersonCreated is emitted after a person is stored.
type PersonCreated struct {
	header
	personFamily
	PersonID uuid.UUID     `json:"person_id"`
	Name     string        `json:"name"`
	Email    domain.Email  `json:"email"`
	Phone    *domain.Phone `json:"phone,omitempty"`
}

// NewPersonCreated builds a PersonCreated event for p.
func NewPersonCreated(p *domain.Person) PersonCreated {
	return PersonCreated{
		header:   newHeader(),
		PersonID: p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
	}
}

func (PersonCreated) EventType() string        { return TypePersonCreated }
func (e PersonCreated) AggregateID() uuid.UUID { return e.PersonID }

// PersonUpdated is emitted after a person's details change. It carries both
// the previous and the new contact values.
type PersonUpdated struct {
	header
	personFamily
	PersonID      uuid.UUID     `json:"person_id"`
	PreviousName  string        `json:"previous_name"`
	NewName       string        `json:"new_name"`
	PreviousEmail domain.Email  `json:"previous_email"`
	NewEmail      domain.Email  `json:"new_email"`
	PreviousPhone *domain.Phone `json:"previous_phone,omitempty"`
	NewPhone      *domain.Phone `json:"new_phone,omitempty"`
}

// NewPersonUpdated builds a PersonUpdated event from the before and after states.
func NewPersonUpdated(before, after *domain.Person) PersonUpdated {
	return PersonUpdated{
		header:        newHeader(),
		PersonID:      after.ID,
		PreviousName:  before.Name,
		NewName:       after.Name,
		PreviousEmail: before.Email,
		NewEmail:      after.Email,
		PreviousPhone: before.Phone,
		NewPhone:      after.Phone,
	}
}

func (PersonUpdated) EventType() string        { return TypePersonUpdated }
func (e PersonUpdated) AggregateID() uuid.UUID { return e.PersonID }

// EmailChanged reports whether the update replaced the email.
func (e PersonUpdated) EmailChanged() bool {
	return !e.PreviousEmail.Equal(e.NewEmail)
}

// PhoneChanged reports whether the update replaced or removed the phone.
func (e PersonUpdated) PhoneChanged() bool {
	return !domain.PhonesEqual(e.PreviousPhone, e.NewPhone)
}

// PersonDeleted is emitted after a person and their memberships are removed.
type PersonDeleted struct {
	header
	personFamily
	PersonID uuid.UUID    `json:"person_id"`
	Email    domain.Email `json:"email"`
}

// NewPersonDeleted builds a PersonDeleted event for p.
func NewPersonDeleted(p *domain.Person) PersonDeleted {
	return PersonDeleted{header: newHeader(), PersonID: p.ID, Email: p.Email}
}

func (PersonDeleted) EventType() string        { return TypePersonDeleted }
func (e PersonDeleted) AggregateID() uuid.UUID { return e.PersonID }

// EmailVerified is emitted when a person confirms their email.
type EmailVerified struct {
	header
	personFamily
	PersonID uuid.UUID    `json:"person_id"`
	Email    domain.Email `json:"email"`
}

// NewEmailVerified builds an EmailVerified event.
func NewEmailVerified(personID uuid.UUID, email domain.Email) EmailVerified {
	return EmailVerified{header: newHeader(), PersonID: personID, Email: email}
}

func (EmailVerified) EventType() string        { return TypeEmailVerified }
func (e EmailVerified) AggregateID() uuid.UUID { return e.PersonID }

// PhoneVerified is emitted when a person confirms their phone.
type PhoneVerified struct {
	header
	personFamily
	PersonID uuid.UUID    `json:"person_id"`
	Phone    domain.Phone `json:"phone"`
}

// NewPhoneVerified builds a PhoneVerified event.
func NewPhoneVerified(personID uuid.UUID, phone domain.Phone) PhoneVerified {
	return PhoneVerified{header: newHeader(), PersonID: personID, Phone: phone}
}

func (PhoneVerified) EventType() string        { return TypePhoneVerified }
func (e PhoneVerified) AggregateID() uuid.UUID { return e.PersonID }

package events

import (
	"time"

	"github.com/google/uuid"
)

// Family is the top-level routing group of an event.
type Family string

const (
	FamilyPerson       Family = "person"
	FamilyOrganization Family = "organization"
	FamilySystem       Family = "system"
)

// Event type tags. They are stable and appear in logs and exported envelopes.
const (
	TypePersonCreated       = "person.created"
	TypePersonUpdated       = "person.updated"
	TypePersonDeleted       = "person.deleted"
	TypeEmailVerified       = "person.email_verified"
	TypePhoneVerified       = "person.phone_verified"
	TypeOrganizationCreated = "organization.created"
	TypeMemberAdded         = "organization.member_added"
	TypeJobCompleted        = "system.job_completed"
	TypeApplicationStarted  = "system.application_started"
)

// AllEventTypes lists every event type tag.
func AllEventTypes() []string {
	return []string{
		TypePersonCreated,
		TypePersonUpdated,
		TypePersonDeleted,
		TypeEmailVerified,
		TypePhoneVerified,
		TypeOrganizationCreated,
		TypeMemberAdded,
		TypeJobCompleted,
		TypeApplicationStarted,
	}
}

// DomainEvent is an immutable record of something that happened. The set of
// implementations is closed to this package.
type DomainEvent interface {
	EventID() uuid.UUID
	OccurredAt() time.Time
	EventType() string
	Family() Family
	isDomainEvent()
}

// PersonEvent is implemented by every event of the person family.
type PersonEvent interface {
	DomainEvent
	AggregateID() uuid.UUID
	isPersonEvent()
}

// OrganizationEvent is implemented by every event of the organization family.
type OrganizationEvent interface {
	DomainEvent
	AggregateID() uuid.UUID
	isOrganizationEvent()
}

// SystemEvent is implemented by every event of the system family.
type SystemEvent interface {
	DomainEvent
	isSystemEvent()
}

// header carries the identity every event gets at construction.
type header struct {
	ID uuid.UUID `json:"event_id"`
	At time.Time `json:"occurred_at"`
}

func newHeader() header {
	return header{ID: uuid.New(), At: time.Now().UTC()}
}

// EventID returns the unique id assigned at construction.
func (h header) EventID() uuid.UUID { return h.ID }

// OccurredAt returns the construction time in UTC.
func (h header) OccurredAt() time.Time { return h.At }

func (header) isDomainEvent() {}

type personFamily struct{}

func (personFamily) Family() Family { return FamilyPerson }
func (personFamily) isPersonEvent() {}

type organizationFamily struct{}

func (organizationFamily) Family() Family       { return FamilyOrganization }
func (organizationFamily) isOrganizationEvent() {}

type systemFamily struct{}

func (systemFamily) Family() Family { return FamilySystem }
func (systemFamily) isSystemEvent() {}

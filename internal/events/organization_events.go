package events

import (
	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
)

// OrganizationCreated is emitted after an organization is stored.
type OrganizationCreated struct {
	header
	organizationFamily
	OrganizationID uuid.UUID          `json:"organization_id"`
	Name           string             `json:"name"`
	Country        domain.CountryCode `json:"country"`
}

// NewOrganizationCreated builds an OrganizationCreated event for o.
func NewOrganizationCreated(o *domain.Organization) OrganizationCreated {
	return OrganizationCreated{
		header:         newHeader(),
		OrganizationID: o.ID,
		Name:           o.Name,
		Country:        o.Country,
	}
}

func (OrganizationCreated) EventType() string        { return TypeOrganizationCreated }
func (e OrganizationCreated) AggregateID() uuid.UUID { return e.OrganizationID }

// MemberAdded is emitted after a person joins an organization.
type MemberAdded struct {
	header
	organizationFamily
	OrganizationID   uuid.UUID    `json:"organization_id"`
	OrganizationName string       `json:"organization_name"`
	PersonID         uuid.UUID    `json:"person_id"`
	PersonEmail      domain.Email `json:"person_email"`
	Role             domain.Role  `json:"role"`
}

// NewMemberAdded builds a MemberAdded event.
func NewMemberAdded(org *domain.Organization, person *domain.Person, m *domain.Membership) MemberAdded {
	return MemberAdded{
		header:           newHeader(),
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		PersonID:         person.ID,
		PersonEmail:      person.Email,
		Role:             m.Role,
	}
}

func (MemberAdded) EventType() string        { return TypeMemberAdded }
func (e MemberAdded) AggregateID() uuid.UUID { return e.OrganizationID }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a person's role within an organization.
type Role string

// Valid membership roles.
const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole maps raw to a Role. An empty string yields RoleMember.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "":
		return RoleMember, nil
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(raw), nil
	default:
		return "", NewValidationError("role", raw, "Invalid role: expected one of owner, admin, member")
	}
}

// Membership links a person to an organization. A person is a member of a
// given organization at most once.
type Membership struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	PersonID       uuid.UUID `json:"person_id"`
	Role           Role      `json:"role"`
	JoinedAt       time.Time `json:"joined_at"`
}

// NewMembership creates a Membership joined now.
func NewMembership(organizationID, personID uuid.UUID, role Role) (*Membership, error) {
	m := &Membership{
		OrganizationID: organizationID,
		PersonID:       personID,
		Role:           role,
		JoinedAt:       time.Now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the Membership has valid data.
func (m *Membership) Validate() error {
	if m.OrganizationID == uuid.Nil || m.PersonID == uuid.Nil {
		return ErrEmptyID
	}
	if _, err := ParseRole(string(m.Role)); err != nil || m.Role == "" {
		return NewValidationError("role", string(m.Role), "Invalid role: expected one of owner, admin, member")
	}
	return nil
}

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
)

// OrganizationStore defines the interface for organization data persistence.
type OrganizationStore interface {
	// GetByID retrieves an organization by ID.
	// Returns ErrOrganizationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	// GetByName retrieves an organization by name, ignoring case.
	// Returns ErrOrganizationNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Organization, error)

	// Create saves a new organization.
	// Returns ErrOrganizationNameExists on a name clash.
	Create(ctx context.Context, org *domain.Organization) error
}

// MembershipStore defines the interface for membership persistence.
type MembershipStore interface {
	// Add stores a membership.
	// Returns ErrMembershipExists if the pair is already stored.
	Add(ctx context.Context, m *domain.Membership) error

	// Exists reports whether personID is a member of orgID.
	Exists(ctx context.Context, orgID, personID uuid.UUID) (bool, error)

	// ListByOrganization returns memberships ordered by join time.
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Membership, error)

	// DeleteByPerson removes every membership of personID and returns how many were removed.
	DeleteByPerson(ctx context.Context, personID uuid.UUID) (int, error)
}

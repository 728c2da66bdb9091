package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
)

// ListOptions pages through a listing. A zero Limit means DefaultListLimit.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListLimit and MaxListLimit bound list queries.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Normalize clamps the options to valid bounds.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// PersonStore defines the interface for person data persistence.
type PersonStore interface {
	// GetByID retrieves a person by their unique ID.
	// Returns ErrPersonNotFound if the person does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	// GetByEmail retrieves a person by email.
	// Returns ErrPersonNotFound if no person holds it.
	GetByEmail(ctx context.Context, email domain.Email) (*domain.Person, error)

	// GetByPhone retrieves a person by phone.
	// Returns ErrPersonNotFound if no person holds it.
	GetByPhone(ctx context.Context, phone domain.Phone) (*domain.Person, error)

	// List returns people ordered by creation time, oldest first.
	List(ctx context.Context, opts ListOptions) ([]*domain.Person, error)

	// Create saves a new person.
	// Returns ErrEmailExists or ErrPhoneExists on a uniqueness violation.
	Create(ctx context.Context, person *domain.Person) error

	// Update replaces a stored person.
	// Returns ErrPersonNotFound if the person does not exist.
	// Returns ErrEmailExists or ErrPhoneExists on a uniqueness violation.
	Update(ctx context.Context, person *domain.Person) error

	// Delete removes a person by ID.
	// Returns ErrPersonNotFound if the person does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

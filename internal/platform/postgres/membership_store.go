package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
	"github.com/phrazzld/roster-api/internal/store"
)

// PostgresMembershipStore implements store.MembershipStore.
type PostgresMembershipStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMembershipStore creates a membership store over a connection or transaction.
func NewPostgresMembershipStore(db store.DBTX, logger *slog.Logger) *PostgresMembershipStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMembershipStore{
		db:     db,
		logger: logger.With(slog.String("component", "membership_store")),
	}
}

var _ store.MembershipStore = (*PostgresMembershipStore)(nil)

// Add implements store.MembershipStore.Add.
// Missing organization or person surfaces as the matching not-found error.
func (s *PostgresMembershipStore) Add(ctx context.Context, m *domain.Membership) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO memberships (organization_id, person_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, m.OrganizationID, m.PersonID, string(m.Role), m.JoinedAt); err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) && !store.IsNotFoundError(mapped) {
			log.Error("failed to add membership",
				slog.String("error", redact.Error(err)),
				slog.String("organization_id", m.OrganizationID.String()),
				slog.String("person_id", m.PersonID.String()))
		}
		return mapped
	}
	return nil
}

// Exists implements store.MembershipStore.Exists
func (s *PostgresMembershipStore) Exists(ctx context.Context, orgID, personID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM memberships WHERE organization_id = $1 AND person_id = $2)`,
		orgID,
		personID,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// ListByOrganization implements store.MembershipStore.ListByOrganization
func (s *PostgresMembershipStore) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Membership, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT organization_id, person_id, role, joined_at
		FROM memberships
		WHERE organization_id = $1
		ORDER BY joined_at, person_id
	`, orgID)
	if err != nil {
		log.Error("failed to list memberships",
			slog.String("error", redact.Error(err)),
			slog.String("organization_id", orgID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(closeErr)))
		}
	}()

	memberships := make([]*domain.Membership, 0)
	for rows.Next() {
		var (
			m    domain.Membership
			role string
		)
		if err := rows.Scan(&m.OrganizationID, &m.PersonID, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		if m.Role, err = domain.ParseRole(role); err != nil {
			return nil, fmt.Errorf("stored membership has invalid role: %w", err)
		}
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return memberships, nil
}

// DeleteByPerson implements store.MembershipStore.DeleteByPerson
func (s *PostgresMembershipStore) DeleteByPerson(ctx context.Context, personID uuid.UUID) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM memberships WHERE person_id = $1`, personID)
	if err != nil {
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

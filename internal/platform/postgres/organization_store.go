package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
	"github.com/phrazzld/roster-api/internal/store"
)

// PostgresOrganizationStore implements store.OrganizationStore.
type PostgresOrganizationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrganizationStore creates an organization store over a connection or transaction.
func NewPostgresOrganizationStore(db store.DBTX, logger *slog.Logger) *PostgresOrganizationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrganizationStore{
		db:     db,
		logger: logger.With(slog.String("component", "organization_store")),
	}
}

var _ store.OrganizationStore = (*PostgresOrganizationStore)(nil)

func (s *PostgresOrganizationStore) getOne(ctx context.Context, where string, arg any) (*domain.Organization, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, country, postal_code, created_at, updated_at
		FROM organizations
		WHERE ` + where

	var (
		org        domain.Organization
		postalCode sql.Null[domain.PostalCode]
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&org.ID,
		&org.Name,
		&org.Country,
		&postalCode,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		log.Error("failed to get organization", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	if postalCode.Valid {
		org.PostalCode = &postalCode.V
	}
	return &org, nil
}

// GetByID implements store.OrganizationStore.GetByID
func (s *PostgresOrganizationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return s.getOne(ctx, "id = $1", id)
}

// GetByName implements store.OrganizationStore.GetByName.
// Names are compared through the stored normalized column.
func (s *PostgresOrganizationStore) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	return s.getOne(ctx, "name_normalized = $1", domain.NormalizeName(name))
}

// Create implements store.OrganizationStore.Create
func (s *PostgresOrganizationStore) Create(ctx context.Context, org *domain.Organization) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := org.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var postalCode any
	if org.PostalCode != nil {
		postalCode = org.PostalCode.String()
	}

	query := `
		INSERT INTO organizations (id, name, name_normalized, country, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		org.NormalizedName(),
		org.Country.String(),
		postalCode,
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create organization",
				slog.String("error", redact.Error(err)),
				slog.String("organization_id", org.ID.String()))
		}
		return mapped
	}

	log.Debug("organization created", slog.String("organization_id", org.ID.String()))
	return nil
}

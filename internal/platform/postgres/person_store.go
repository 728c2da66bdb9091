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

const personColumns = `
	id, name, email, phone,
	address_street, address_city, address_postal_code, address_country,
	email_verified, phone_verified, created_at, updated_at`

// PostgresPersonStore implements store.PersonStore.
type PostgresPersonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPersonStore creates a person store over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewPostgresPersonStore(db store.DBTX, logger *slog.Logger) *PostgresPersonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPersonStore{
		db:     db,
		logger: logger.With(slog.String("component", "person_store")),
	}
}

var _ store.PersonStore = (*PostgresPersonStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*domain.Person, error) {
	var (
		p            domain.Person
		phone        sql.Null[domain.Phone]
		street, city sql.NullString
		addrPostal   sql.Null[domain.PostalCode]
		addrCountry  sql.Null[domain.CountryCode]
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Email, &phone,
		&street, &city, &addrPostal, &addrCountry,
		&p.EmailVerified, &p.PhoneVerified, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if phone.Valid {
		p.Phone = &phone.V
	}
	if addrPostal.Valid && addrCountry.Valid {
		p.Address = &domain.Address{
			Street:     street.String,
			City:       city.String,
			PostalCode: addrPostal.V,
			Country:    addrCountry.V,
		}
	}
	return &p, nil
}

// personArgs flattens a person into the column order of personColumns.
func personArgs(p *domain.Person) []any {
	var phone, street, city, postal, country any
	if p.Phone != nil {
		phone = p.Phone.String()
	}
	if p.Address != nil {
		street = p.Address.Street
		city = p.Address.City
		postal = p.Address.PostalCode.String()
		country = p.Address.Country.String()
	}
	return []any{
		p.ID, p.Name, p.Email.String(), phone,
		street, city, postal, country,
		p.EmailVerified, p.PhoneVerified, p.CreatedAt, p.UpdatedAt,
	}
}

func (s *PostgresPersonStore) getOne(ctx context.Context, where string, arg any) (*domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + personColumns + ` FROM people WHERE ` + where
	p, err := scanPerson(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPersonNotFound
		}
		log.Error("failed to get person", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	return p, nil
}

// GetByID implements store.PersonStore.GetByID
func (s *PostgresPersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	return s.getOne(ctx, "id = $1", id)
}

// GetByEmail implements store.PersonStore.GetByEmail
func (s *PostgresPersonStore) GetByEmail(ctx context.Context, email domain.Email) (*domain.Person, error) {
	return s.getOne(ctx, "email = $1", email.String())
}

// GetByPhone implements store.PersonStore.GetByPhone
func (s *PostgresPersonStore) GetByPhone(ctx context.Context, phone domain.Phone) (*domain.Person, error) {
	return s.getOne(ctx, "phone = $1", phone.String())
}

// List implements store.PersonStore.List
func (s *PostgresPersonStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	opts = opts.Normalize()

	query := `SELECT ` + personColumns + ` FROM people ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		log.Error("failed to list people", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(closeErr)))
		}
	}()

	people := make([]*domain.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return people, nil
}

// Create implements store.PersonStore.Create
func (s *PostgresPersonStore) Create(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		log.Warn("person validation failed during create",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO people (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := s.db.ExecContext(ctx, query, personArgs(person)...); err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("person uniqueness violation", slog.String("person_id", person.ID.String()))
		} else {
			log.Error("failed to create person",
				slog.String("error", redact.Error(err)),
				slog.String("person_id", person.ID.String()))
		}
		return mapped
	}

	log.Debug("person created", slog.String("person_id", person.ID.String()))
	return nil
}

// Update implements store.PersonStore.Update
func (s *PostgresPersonStore) Update(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE people SET
			name = $2, email = $3, phone = $4,
			address_street = $5, address_city = $6, address_postal_code = $7, address_country = $8,
			email_verified = $9, phone_verified = $10, updated_at = $11
		WHERE id = $1
	`
	args := personArgs(person)
	// personArgs ends with created_at, updated_at; created_at is never rewritten.
	args = append(args[:10], person.UpdatedAt)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update person",
				slog.String("error", redact.Error(err)),
				slog.String("person_id", person.ID.String()))
		}
		return mapped
	}
	return CheckRowsAffected(result, store.ErrPersonNotFound)
}

// Delete implements store.PersonStore.Delete
func (s *PostgresPersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete person",
			slog.String("error", redact.Error(err)),
			slog.String("person_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPersonNotFound)
}

package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/roster-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Constraint names from the migrations. Unique and foreign key violations
// are mapped to entity-specific store errors by these names.
const (
	constraintPeopleEmail       = "people_email_key"
	constraintPeoplePhone       = "people_phone_key"
	constraintOrganizationName  = "organizations_name_normalized_key"
	constraintMembershipPK      = "memberships_pkey"
	constraintMembershipOrgFK   = "memberships_organization_id_fkey"
	constraintMembershipOwnerFK = "memberships_person_id_fkey"
)

var constraintErrors = map[string]error{
	constraintPeopleEmail:       store.ErrEmailExists,
	constraintPeoplePhone:       store.ErrPhoneExists,
	constraintOrganizationName:  store.ErrOrganizationNameExists,
	constraintMembershipPK:      store.ErrMembershipExists,
	constraintMembershipOrgFK:   store.ErrOrganizationNotFound,
	constraintMembershipOwnerFK: store.ErrPersonNotFound,
}

// MapError maps a database error to the matching store error, wrapping the
// original so the driver detail is kept for logs.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if known, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %v", known, err)
		}
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected returns notFound when result touched no rows.
// UPDATE and DELETE by primary key use it to detect a missing target.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

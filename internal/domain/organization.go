package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization groups people through memberships. Names are unique
// case-insensitively.
type Organization struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Country    CountryCode `json:"country"`
	PostalCode *PostalCode `json:"postal_code,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewOrganization creates an Organization with a fresh ID and timestamps.
func NewOrganization(name string, country CountryCode, postalCode *PostalCode) (*Organization, error) {
	now := time.Now().UTC()
	o := &Organization{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(name),
		Country:    country,
		PostalCode: postalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks that the Organization has valid data.
func (o *Organization) Validate() error {
	if o.ID == uuid.Nil {
		return ErrEmptyID
	}
	if err := ValidateName("name", o.Name); err != nil {
		return err
	}
	if o.Country.IsZero() {
		return NewValidationError("country", "", countryCodeFormatMessage)
	}
	if o.PostalCode != nil && o.PostalCode.IsZero() {
		return NewValidationError("postal_code", "", postalCodeFormatMessage)
	}
	return nil
}

// NormalizedName is the key used for the uniqueness check.
func (o *Organization) NormalizedName() string {
	return NormalizeName(o.Name)
}

// NormalizeName folds a name for case-insensitive comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

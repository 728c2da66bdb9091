package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxNameLength bounds person and organization names, in runes.
const MaxNameLength = 200

// Address is a postal address attached to a person.
type Address struct {
	Street     string      `json:"street"`
	City       string      `json:"city"`
	PostalCode PostalCode  `json:"postal_code"`
	Country    CountryCode `json:"country"`
}

// Validate checks that the address was built from constructed value types.
func (a *Address) Validate() error {
	if strings.TrimSpace(a.City) == "" {
		return NewValidationError("address.city", a.City, "address.city cannot be empty")
	}
	if a.PostalCode.IsZero() {
		return NewValidationError("address.postal_code", "", postalCodeFormatMessage)
	}
	if a.Country.IsZero() {
		return NewValidationError("address.country", "", countryCodeFormatMessage)
	}
	return nil
}

// Person is an individual tracked by the roster. Email is unique across
// people, and so is Phone when present.
type Person struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         Email     `json:"email"`
	Phone         *Phone    `json:"phone,omitempty"`
	Address       *Address  `json:"address,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewPerson creates a Person with a fresh ID and timestamps.
// The name is trimmed before validation.
func NewPerson(name string, email Email, phone *Phone, address *Address) (*Person, error) {
	now := time.Now().UTC()
	p := &Person{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the Person has valid data.
func (p *Person) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyID
	}
	if err := ValidateName("name", p.Name); err != nil {
		return err
	}
	if p.Email.IsZero() {
		return NewValidationError("email", "", emailFormatMessage)
	}
	if p.Phone != nil && p.Phone.IsZero() {
		return NewValidationError("phone", "", phoneFormatMessage)
	}
	if p.Address != nil {
		if err := p.Address.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ChangeEmail replaces the email. A different address clears EmailVerified.
func (p *Person) ChangeEmail(email Email) {
	if !p.Email.Equal(email) {
		p.Email = email
		p.EmailVerified = false
	}
}

// ChangePhone replaces the phone. A different number clears PhoneVerified.
func (p *Person) ChangePhone(phone *Phone) {
	if !PhonesEqual(p.Phone, phone) {
		p.Phone = phone
		p.PhoneVerified = false
	}
}

// Touch bumps UpdatedAt.
func (p *Person) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// PhonesEqual compares two optional phone numbers.
func PhonesEqual(a, b *Phone) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// ValidateName checks that a display name is non-blank and at most
// MaxNameLength runes.
func ValidateName(field, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NewValidationError(field, name, field+" cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return NewValidationError(field, name, field+" must be at most 200 characters")
	}
	return nil
}

package service

import (
	"strings"
	"time"

	"github.com/phrazzld/roster-api/internal/domain"
)

// AddressInput carries raw address fields. Street is optional.
type AddressInput struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// CreatePersonInput carries raw fields for a new person. A nil Phone or
// Address means none.
type CreatePersonInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *AddressInput
}

// UpdatePersonInput carries the fields to change; nil fields are left as
// they are. An empty Phone removes the phone number.
type UpdatePersonInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *AddressInput
}

// CreateOrganizationInput carries raw fields for a new organization.
type CreateOrganizationInput struct {
	Name       string
	Country    string
	PostalCode *string
}

// JobReport describes a finished scheduled job run.
type JobReport struct {
	Name      string
	Processed int
	Failed    int
	Success   bool
	Message   string
	Duration  time.Duration
}

// parser converts raw input into domain values and collects every field
// error instead of stopping at the first.
type parser struct {
	fields domain.FieldErrors
}

func (p *parser) name(field, raw string) string {
	p.fields.Add(field, domain.ValidateName(field, raw))
	return strings.TrimSpace(raw)
}

func (p *parser) email(field, raw string) domain.Email {
	e, err := domain.NewEmail(raw)
	p.fields.Add(field, err)
	return e
}

func (p *parser) phone(field, raw string) *domain.Phone {
	ph, err := domain.NewPhone(raw)
	if p.fields.Add(field, err) {
		return nil
	}
	return &ph
}

func (p *parser) postalCode(field, raw string) domain.PostalCode {
	pc, err := domain.NewPostalCode(raw)
	p.fields.Add(field, err)
	return pc
}

func (p *parser) country(field, raw string) domain.CountryCode {
	cc, err := domain.NewCountryCode(raw)
	p.fields.Add(field, err)
	return cc
}

func (p *parser) address(in *AddressInput) *domain.Address {
	if in == nil {
		return nil
	}
	addr := &domain.Address{
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: p.postalCode("address.postal_code", in.PostalCode),
		Country:    p.country("address.country", in.Country),
	}
	if addr.City == "" {
		p.fields.Add("address.city", domain.NewValidationError("address.city", in.City, "address.city cannot be empty"))
	}
	return addr
}

func (p *parser) ok() bool {
	return p.fields.Empty()
}

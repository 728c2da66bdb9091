package domain

import (
	"database/sql/driver"
	"regexp"
)

// countryCodePattern is an ISO 3166-1 alpha-2 shape check. Lowercase input is
// rejected, not upper-cased.
var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

const countryCodeFormatMessage = "Invalid country code format: expected two uppercase letters (ISO 3166-1 alpha-2)"

// CountryCode is a validated two-letter country code.
type CountryCode struct {
	value string
}

// NewCountryCode validates raw and returns it as a CountryCode.
func NewCountryCode(raw string) (CountryCode, error) {
	if err := validateFormat("country_code", raw, countryCodePattern, countryCodeFormatMessage); err != nil {
		return CountryCode{}, err
	}
	return CountryCode{value: raw}, nil
}

// MustNewCountryCode is like NewCountryCode but panics on invalid input.
func MustNewCountryCode(raw string) CountryCode {
	cc, err := NewCountryCode(raw)
	if err != nil {
		panic(err)
	}
	return cc
}

// String returns the underlying code.
func (cc CountryCode) String() string {
	return cc.value
}

// IsZero reports whether cc was never constructed.
func (cc CountryCode) IsZero() bool {
	return cc.value == ""
}

// Equal compares two country codes by underlying value.
func (cc CountryCode) Equal(other CountryCode) bool {
	return cc.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (cc CountryCode) MarshalText() ([]byte, error) {
	return []byte(cc.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (cc *CountryCode) UnmarshalText(data []byte) error {
	parsed, err := NewCountryCode(string(data))
	if err != nil {
		return err
	}
	*cc = parsed
	return nil
}

// Value implements driver.Valuer.
func (cc CountryCode) Value() (driver.Value, error) {
	return cc.value, nil
}

// Scan implements sql.Scanner.
func (cc *CountryCode) Scan(src any) error {
	raw, err := scanString("country_code", src)
	if err != nil {
		return err
	}
	return cc.UnmarshalText([]byte(raw))
}

package domain

import (
	"database/sql/driver"
	"regexp"
)

var postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)

const postalCodeFormatMessage = "Invalid postal code format: expected 3-10 letters, digits, spaces or dashes"

// PostalCode is a validated postal code.
type PostalCode struct {
	value string
}

// NewPostalCode validates raw and returns it as a PostalCode.
func NewPostalCode(raw string) (PostalCode, error) {
	if err := validateFormat("postal_code", raw, postalCodePattern, postalCodeFormatMessage); err != nil {
		return PostalCode{}, err
	}
	return PostalCode{value: raw}, nil
}

// MustNewPostalCode is like NewPostalCode but panics on invalid input.
func MustNewPostalCode(raw string) PostalCode {
	pc, err := NewPostalCode(raw)
	if err != nil {
		panic(err)
	}
	return pc
}

// String returns the underlying code.
func (pc PostalCode) String() string {
	return pc.value
}

// IsZero reports whether pc was never constructed.
func (pc PostalCode) IsZero() bool {
	return pc.value == ""
}

// Equal compares two postal codes by underlying value.
func (pc PostalCode) Equal(other PostalCode) bool {
	return pc.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (pc PostalCode) MarshalText() ([]byte, error) {
	return []byte(pc.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (pc *PostalCode) UnmarshalText(data []byte) error {
	parsed, err := NewPostalCode(string(data))
	if err != nil {
		return err
	}
	*pc = parsed
	return nil
}

// Value implements driver.Valuer.
func (pc PostalCode) Value() (driver.Value, error) {
	return pc.value, nil
}

// Scan implements sql.Scanner.
func (pc *PostalCode) Scan(src any) error {
	raw, err := scanString("postal_code", src)
	if err != nil {
		return err
	}
	return pc.UnmarshalText([]byte(raw))
}

package domain

import (
	"database/sql/driver"
	"regexp"
)

// phonePattern is an optional leading plus followed by 10 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

const phoneFormatMessage = "Invalid phone format: expected optional '+' followed by 10-15 digits"

// Phone is a validated phone number. Spaces, dashes and parentheses are rejected
// rather than stripped.
type Phone struct {
	value string
}

// NewPhone validates raw and returns it as a Phone.
func NewPhone(raw string) (Phone, error) {
	if err := validateFormat("phone", raw, phonePattern, phoneFormatMessage); err != nil {
		return Phone{}, err
	}
	return Phone{value: raw}, nil
}

// MustNewPhone is like NewPhone but panics on invalid input.
func MustNewPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the underlying number.
func (p Phone) String() string {
	return p.value
}

// IsZero reports whether p was never constructed.
func (p Phone) IsZero() bool {
	return p.value == ""
}

// Equal compares two phone numbers by underlying value.
func (p Phone) Equal(other Phone) bool {
	return p.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (p *Phone) UnmarshalText(data []byte) error {
	parsed, err := NewPhone(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer.
func (p Phone) Value() (driver.Value, error) {
	return p.value, nil
}

// Scan implements sql.Scanner.
func (p *Phone) Scan(src any) error {
	raw, err := scanString("phone", src)
	if err != nil {
		return err
	}
	return p.UnmarshalText([]byte(raw))
}

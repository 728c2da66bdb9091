package domain

import (
	"database/sql/driver"
	"regexp"
)

// emailPattern accepts word characters, dots and dashes in the local part and
// requires at least one dotted label before a top-level label of 2+ characters.
var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,}$`)

const emailFormatMessage = "Invalid email format: expected local@domain.tld"

// Email is a validated email address.
type Email struct {
	value string
}

// NewEmail validates raw and returns it as an Email. No trimming or case
// folding is applied.
func NewEmail(raw string) (Email, error) {
	if err := validateFormat("email", raw, emailPattern, emailFormatMessage); err != nil {
		return Email{}, err
	}
	return Email{value: raw}, nil
}

// MustNewEmail is like NewEmail but panics on invalid input.
// Intended for tests and package-level constants.
func MustNewEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the underlying address.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether e was never constructed.
func (e Email) IsZero() bool {
	return e.value == ""
}

// Equal compares two emails by underlying value.
func (e Email) Equal(other Email) bool {
	return e.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (e *Email) UnmarshalText(data []byte) error {
	parsed, err := NewEmail(string(data))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Value implements driver.Valuer.
func (e Email) Value() (driver.Value, error) {
	return e.value, nil
}

// Scan implements sql.Scanner. Stored values go through NewEmail again.
func (e *Email) Scan(src any) error {
	raw, err := scanString("email", src)
	if err != nil {
		return err
	}
	return e.UnmarshalText([]byte(raw))
}

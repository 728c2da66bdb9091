package domain

import (
	"fmt"
	"regexp"
)

// The value types in this package (Email, Phone, PostalCode, CountryCode)
// share one contract: an unexported string that only a validating
// constructor can set, so a non-zero value is always well-formed. They are
// comparable and can be used as map keys. On the wire and in the database
// they are the bare underlying string.

// validateFormat checks raw against pattern and builds the field's
// ValidationError when it does not match. None of the patterns accept the
// empty string.
func validateFormat(field, raw string, pattern *regexp.Regexp, message string) error {
	if !pattern.MatchString(raw) {
		return NewValidationError(field, raw, message)
	}
	return nil
}

// scanString extracts a string from a database/sql source value.
func scanString(field string, src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("cannot scan NULL into %s", field)
	default:
		return "", fmt.Errorf("cannot scan %T into %s", src, field)
	}
}

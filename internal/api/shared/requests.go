package shared

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/failure"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = newValidator()
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ValidateRequest checks v against its validate tags. It returns nil or a
// ValidationFailed naming every rejected field.
func ValidateRequest(v any) failure.Reason {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fields domain.FieldErrors
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields.Add("body", errors.New("body is invalid"))
		return failure.Invalid(fields)
	}
	for _, fe := range verrs {
		fields.Add(fieldPath(fe), errors.New(tagMessage(fe)))
	}
	return failure.Invalid(fields)
}

// fieldPath drops the struct name from the namespace: "Req.address.city"
// becomes "address.city".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "uuid":
		return fe.Field() + " must be a UUID"
	case "max":
		return fe.Field() + " is too long"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

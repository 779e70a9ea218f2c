package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate

	slugPattern   = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{Lm}\p{M}\p{N}_-]+$`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordOrDash = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_-]+`)
)

func init() {
	validate = validator.New()

	// decimals validate as their float value so gt/gte tags apply
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// Struct validates v against its validate tags.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// FieldError describes one failed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Fields converts validator errors to a readable format. Non-validation
// errors yield nil.
func Fields(err error) []FieldError {
	var out []FieldError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			out = append(out, FieldError{
				Field:   e.Field(),
				Message: message(e),
			})
		}
	}

	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "slug":
		return "Must contain only lowercase letters, digits and dashes"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "lt":
		return "Value must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}

// Slugify lower-cases s, turns whitespace runs into dashes and strips
// everything that is not a letter, digit, underscore or dash in any script.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonWordOrDash.ReplaceAllString(s, "")
}

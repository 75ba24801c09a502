// Package validation checks request payloads against the per-entity rule
// sets. Rules live as struct tags on the request types; only the first
// violated rule is reported, in struct field order.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern    = regexp.MustCompile(`^[0-9]{9,15}$`)
	passwordPattern = regexp.MustCompile(`^[0-9]{6,100}$`)
)

// allowedTLDs restricts account emails to the domains the restaurant uses.
var allowedTLDs = []string{".com", ".net"}

// FieldError is a single validation failure: the first rule the payload
// violated.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Validator wraps a configured validator.Validate instance.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("digitsonly", func(fl validator.FieldLevel) bool {
		return passwordPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("emailtld", func(fl validator.FieldLevel) bool {
		email := strings.ToLower(fl.Field().String())
		for _, tld := range allowedTLDs {
			if strings.HasSuffix(email, tld) {
				return true
			}
		}
		return false
	})

	return &Validator{validate: v}
}

// Check validates s and returns the first violation, or nil if s is valid.
func (v *Validator) Check(s interface{}) *FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &FieldError{Rule: "invalid", Message: err.Error()}
	}

	first := verrs[0]
	return &FieldError{
		Field:   first.Field(),
		Rule:    first.Tag(),
		Message: messageFor(first),
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%q must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at most %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%q must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", fe.Field())
	case "emailtld":
		return fmt.Sprintf("%q must end with an allowed domain (.com or .net)", fe.Field())
	case "phonedigits":
		return fmt.Sprintf("%q must be 9 to 15 digits", fe.Field())
	case "digitsonly":
		return fmt.Sprintf("%q must be 6 to 100 digits", fe.Field())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}

// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"
	"strconv"
	"strings"

	"landlord_portal_backend/platform/phone"

	"github.com/go-playground/validator/v10"
)

var zip5Pattern = regexp.MustCompile(`^\d{5}$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the shared field rules:
//
//	zip5     five-digit US ZIP code
//	phone_us dialable phone number (US default region)
//	amount   non-negative decimal, "$" and "," tolerated
//
// Domain-specific validation rules can be registered using RegisterValidation.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
		return zip5Pattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone_us", func(fl validator.FieldLevel) bool {
		return phone.IsValid(fl.Field().String())
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(fl.Field().String())
		value, err := strconv.ParseFloat(cleaned, 64)
		return err == nil && value >= 0
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// FieldErrors flattens a validation error into field → failed rule pairs
// suitable for a response "details" payload. Other errors yield nil.
func FieldErrors(err error) map[string]string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}

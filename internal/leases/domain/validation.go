package domain

import (
	"strconv"
	"strings"

	"landlord_portal_backend/internal/address"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// RegisterValidations adds the lease-specific tags to v:
//
//	usstate   two-letter US state code
//	leasedate ISO date or RFC3339 timestamp
//	count     non-negative whole number
//	clause    ID present in the predefined clause catalog
func RegisterValidations(v *validator.Validator) error {
	rules := map[string]playground.Func{
		"usstate": func(fl playground.FieldLevel) bool {
			return address.IsStateCode(fl.Field().String())
		},
		"leasedate": func(fl playground.FieldLevel) bool {
			_, ok := ParseDate(fl.Field().String())
			return ok
		},
		"count": func(fl playground.FieldLevel) bool {
			n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
			return err == nil && n >= 0
		},
		"clause": func(fl playground.FieldLevel) bool {
			_, ok := ClauseByID(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a lease before it reaches the generator or exporter.
// Field failures come back as a validation error whose details map each
// field path to the rule it broke.
func Validate(v *validator.Validator, lease Lease) error {
	if err := v.Struct(lease); err != nil {
		details := validator.FieldErrors(err)
		if details == nil {
			return err
		}
		return apperr.Validation("lease validation failed").WithDetails(details)
	}

	if lease.Term.Type != TermMonthToMonth && lease.Term.EndDate != "" {
		start, _ := ParseDate(lease.Term.StartDate)
		end, _ := ParseDate(lease.Term.EndDate)
		if !end.After(start) {
			return apperr.Validation("lease validation failed").WithDetails(map[string]string{
				"Lease.Term.EndDate": "gtfield",
			})
		}
	}

	if day := lease.Payment.DueDay; day != "" {
		if n := Count(day); n < 1 || n > 31 {
			return apperr.Validation("lease validation failed").WithDetails(map[string]string{
				"Lease.Payment.DueDay": "range",
			})
		}
	}
	return nil
}

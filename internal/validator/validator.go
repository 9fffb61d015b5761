// Package validator centralizes struct validation for persisted records
// and incoming requests.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps a single configured go-playground instance.
type Validator struct {
	structValidator *validator.Validate
}

// New creates the shared validator and registers custom validations.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Validator{structValidator: v}
}

// Validate checks struct tags and returns the underlying
// validator.ValidationErrors on failure.
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

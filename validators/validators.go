// Package validators adapts go-playground/validator to Echo's Validator
// interface.
package validators

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the Echo request validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct validate tags
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

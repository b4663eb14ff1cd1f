// Package validator adapts go-playground/validator to Echo's Validator
// interface, so handlers can call c.Validate on bound payloads.
package validator

import (
	domainerrors "plateful/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// requestValidator wraps a validator instance for Echo.
type requestValidator struct {
	validate *validator.Validate
}

// New builds the validator used by the HTTP server.
func New() *requestValidator {
	return &requestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and maps failures onto the validation error,
// keeping the offending field in the details.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return domainerrors.ErrValidationFailed.WithDetails(fieldErrs[0].Error())
		}

		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}

package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// CurrencyTag validates an ISO 4217 code regardless of letter case and
// surrounding whitespace, matching how services normalize codes.
const CurrencyTag = "currency"

var isoValidator = validator.New()

func isCurrency(fl validator.FieldLevel) bool {
	return isoValidator.Var(domain.NormalizeCurrencyCode(fl.Field().String()), "iso4217") == nil
}

// RegisterValidations adds the DTO-specific tags to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(CurrencyTag, isCurrency)
}

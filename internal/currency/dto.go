package currency

import (
	"strings"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/core/common/validation"
)

// SaveCurrencyDTO creates or updates a currency. ID zero means create.
type SaveCurrencyDTO struct {
	ID           int64   `json:"id,omitempty"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ExchangeRate float64 `json:"exchange_rate"`
}

func (dto SaveCurrencyDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("name", dto.Name).Required().MaxLength(50)
	validator.Field("code", dto.Code).
		Required().
		Custom(func(v interface{}) *errors.AppError {
			if s, ok := v.(string); ok {
				code := strings.TrimSpace(s)
				if len(code) < 3 || len(code) > 5 {
					return errors.NewValidationFieldError("code", "code must be 3 to 5 characters", errors.ErrCodeInvalidCurrency)
				}
			}
			return nil
		})
	validator.Field("exchange_rate", dto.ExchangeRate).
		Required().
		Positive(errors.ErrCodeInvalidCurrency)
	return validator.Validate()
}

// NormalizedCode returns the currency code in canonical upper-case form.
func (dto SaveCurrencyDTO) NormalizedCode() string {
	return strings.ToUpper(strings.TrimSpace(dto.Code))
}

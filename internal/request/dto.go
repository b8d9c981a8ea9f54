package request

import (
	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/core/common/validation"
)

// SubmitRequestDTO is the payload for creating a cash request.
type SubmitRequestDTO struct {
	Amount       float64 `json:"amount"`
	Purpose      string  `json:"purpose"`
	Description  string  `json:"description,omitempty"`
	CurrencyCode string  `json:"currency_code,omitempty"`
}

func (dto SubmitRequestDTO) Validate() *errors.AppError {
	if err := validation.ValidateRequestAmount(dto.Amount); err != nil {
		return err
	}
	return validation.ValidateRequestPurpose(dto.Purpose)
}

// DecideRequestDTO carries an approve/reject decision.
type DecideRequestDTO struct {
	Decision string `json:"decision"`
}

func (dto DecideRequestDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("decision", dto.Decision).
		Required().
		OneOf(DecisionApprove, DecisionReject)
	return validator.Validate()
}

// StatusSummary aggregates requests per lifecycle state for reporting.
type StatusSummary struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

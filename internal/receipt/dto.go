package receipt

import (
	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/core/common/validation"
)

// AttachReceiptDTO carries receipt metadata. The file itself arrives as
// multipart content and is stored separately.
type AttachReceiptDTO struct {
	Amount   float64 `json:"amount,omitempty"`
	Merchant string  `json:"merchant,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

func (dto AttachReceiptDTO) Validate() *errors.AppError {
	if dto.Amount == 0 {
		return nil
	}
	validator := validation.NewValidator()
	validator.Field("amount", dto.Amount).Positive(errors.ErrCodeInvalidAmount)
	return validator.Validate()
}

// PendingReceipt pairs an approved request with its missing receipt for
// the cashier's worklist.
type PendingReceipt struct {
	RequestID    int64   `json:"request_id"`
	RequesterID  int64   `json:"requester_id"`
	Amount       float64 `json:"amount"`
	Purpose      string  `json:"purpose"`
	CurrencyCode string  `json:"currency_code,omitempty"`
}

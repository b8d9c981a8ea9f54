package rule

import (
	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/core/common/validation"
)

// SaveRuleDTO creates a rule when ID is zero and updates it otherwise.
type SaveRuleDTO struct {
	ID              int64   `json:"id,omitempty"`
	ApproverID      int64   `json:"approver_id"`
	AmountThreshold float64 `json:"amount_threshold"`
	ApproveAll      bool    `json:"approve_all"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (dto SaveRuleDTO) Validate() *errors.AppError {
	if dto.ApproverID <= 0 {
		return errors.NewValidationFieldError("approver_id", "approver_id is required", errors.ErrCodeValidationFailed)
	}
	return validation.ValidateRuleThreshold(dto.ApproveAll, dto.AmountThreshold)
}

func (dto SaveRuleDTO) Active() bool {
	if dto.IsActive == nil {
		return true
	}
	return *dto.IsActive
}

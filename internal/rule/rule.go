package rule

import (
	"time"

	ruleDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/rule"
)

// ApprovalRule binds an approver to a spending ceiling, or to unlimited
// authority when ApproveAll is set.
type ApprovalRule struct {
	ID              int64     `json:"id"`
	ApproverID      int64     `json:"approver_id"`
	AmountThreshold float64   `json:"amount_threshold"`
	ApproveAll      bool      `json:"approve_all"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Matches reports whether this rule covers the requested amount. The
// threshold is ignored when ApproveAll is set.
func (r *ApprovalRule) Matches(amount float64) bool {
	if !r.IsActive {
		return false
	}
	if r.ApproveAll {
		return true
	}
	return amount <= r.AmountThreshold
}

func (r *ApprovalRule) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now()
}

func ToDataModel(r *ApprovalRule) *ruleDatamodel.ApprovalRule {
	return &ruleDatamodel.ApprovalRule{
		ID:              r.ID,
		ApproverID:      r.ApproverID,
		AmountThreshold: r.AmountThreshold,
		ApproveAll:      r.ApproveAll,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDataModel(r *ruleDatamodel.ApprovalRule) *ApprovalRule {
	return &ApprovalRule{
		ID:              r.ID,
		ApproverID:      r.ApproverID,
		AmountThreshold: r.AmountThreshold,
		ApproveAll:      r.ApproveAll,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDataModelSlice(rules []*ruleDatamodel.ApprovalRule) []*ApprovalRule {
	result := make([]*ApprovalRule, len(rules))
	for i, r := range rules {
		result[i] = FromDataModel(r)
	}
	return result
}

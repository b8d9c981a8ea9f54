package request

import (
	"time"

	requestDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/request"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// CashRequest is a user's ask for petty cash. It starts pending and
// transitions exactly once to approved or rejected.
type CashRequest struct {
	ID           int64      `json:"id"`
	RequesterID  int64      `json:"requester_id"`
	Amount       float64    `json:"amount"`
	Purpose      string     `json:"purpose"`
	Description  string     `json:"description,omitempty"`
	CurrencyCode string     `json:"currency_code,omitempty"`
	Status       string     `json:"status"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanBeDecided reports whether the request is still awaiting a decision.
func (r *CashRequest) CanBeDecided() bool {
	return r.Status == StatusPending
}

// IsTerminal reports whether the request reached a final state.
func (r *CashRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

func (r *CashRequest) Approve(by int64) {
	now := time.Now()
	r.Status = StatusApproved
	r.ApprovedBy = &by
	r.ApprovedAt = &now
	r.UpdatedAt = now
}

func (r *CashRequest) Reject(by int64) {
	now := time.Now()
	r.Status = StatusRejected
	r.ApprovedBy = &by
	r.ApprovedAt = &now
	r.UpdatedAt = now
}

func ToDataModel(r *CashRequest) *requestDatamodel.CashRequest {
	return &requestDatamodel.CashRequest{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		Amount:       r.Amount,
		Purpose:      r.Purpose,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Status:       r.Status,
		ApprovedBy:   r.ApprovedBy,
		ApprovedAt:   r.ApprovedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromDataModel(r *requestDatamodel.CashRequest) *CashRequest {
	return &CashRequest{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		Amount:       r.Amount,
		Purpose:      r.Purpose,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Status:       r.Status,
		ApprovedBy:   r.ApprovedBy,
		ApprovedAt:   r.ApprovedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromDataModelSlice(requests []*requestDatamodel.CashRequest) []*CashRequest {
	result := make([]*CashRequest, len(requests))
	for i, r := range requests {
		result[i] = FromDataModel(r)
	}
	return result
}

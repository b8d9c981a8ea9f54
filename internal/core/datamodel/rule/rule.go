package rule

import "time"

type ApprovalRule struct {
	ID              int64     `gorm:"primaryKey"`
	ApproverID      int64     `gorm:"column:approver_id;not null"`
	AmountThreshold float64   `gorm:"column:amount_threshold"`
	ApproveAll      bool      `gorm:"column:approve_all;default:false"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ApprovalRule) TableName() string {
	return "approval_rules"
}

package request

import "time"

type CashRequest struct {
	ID           int64      `gorm:"primaryKey"`
	RequesterID  int64      `gorm:"column:requester_id;not null"`
	Amount       float64    `gorm:"column:amount;not null"`
	Purpose      string     `gorm:"column:purpose;not null"`
	Description  string     `gorm:"column:description"`
	CurrencyCode string     `gorm:"column:currency_code"`
	Status       string     `gorm:"column:status;default:pending"`
	ApprovedBy   *int64     `gorm:"column:approved_by"`
	ApprovedAt   *time.Time `gorm:"column:approved_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CashRequest) TableName() string {
	return "requests"
}

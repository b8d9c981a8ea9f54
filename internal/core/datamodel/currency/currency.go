package currency

import "time"

type Currency struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Code         string    `gorm:"column:code;uniqueIndex;not null"`
	ExchangeRate float64   `gorm:"column:exchange_rate;default:1"`
	IsDefault    bool      `gorm:"column:is_default;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Currency) TableName() string {
	return "currencies"
}

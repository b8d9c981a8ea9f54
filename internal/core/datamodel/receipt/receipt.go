package receipt

import "time"

type Receipt struct {
	ID         int64     `gorm:"primaryKey"`
	RequestID  int64     `gorm:"column:request_id;uniqueIndex;not null"`
	FilePath   string    `gorm:"column:file_path;not null"`
	Amount     float64   `gorm:"column:amount"`
	Merchant   string    `gorm:"column:merchant"`
	Notes      string    `gorm:"column:notes"`
	UploadedBy int64     `gorm:"column:uploaded_by;not null"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (Receipt) TableName() string {
	return "receipts"
}

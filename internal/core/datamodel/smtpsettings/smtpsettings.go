package smtpsettings

import "time"

type SMTPSettings struct {
	ID        int64     `gorm:"primaryKey"`
	Host      string    `gorm:"column:host;not null"`
	Port      int       `gorm:"column:port;default:587"`
	Secure    bool      `gorm:"column:secure;default:false"`
	Username  string    `gorm:"column:username"`
	Password  string    `gorm:"column:password"`
	FromEmail string    `gorm:"column:from_email;not null"`
	FromName  string    `gorm:"column:from_name"`
	UpdatedBy *int64    `gorm:"column:updated_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SMTPSettings) TableName() string {
	return "smtp_settings"
}

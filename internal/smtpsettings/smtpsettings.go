package smtpsettings

import (
	"time"

	smtpDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/smtpsettings"
)

// Settings is the single mail server configuration row. The password is
// never serialized back to clients.
type Settings struct {
	ID        int64     `json:"id"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Secure    bool      `json:"secure"`
	Username  string    `json:"username,omitempty"`
	Password  string    `json:"-"`
	FromEmail string    `json:"from_email"`
	FromName  string    `json:"from_name,omitempty"`
	UpdatedBy *int64    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Settings) Address() string {
	return s.Host
}

func ToDataModel(s *Settings) *smtpDatamodel.SMTPSettings {
	return &smtpDatamodel.SMTPSettings{
		ID:        s.ID,
		Host:      s.Host,
		Port:      s.Port,
		Secure:    s.Secure,
		Username:  s.Username,
		Password:  s.Password,
		FromEmail: s.FromEmail,
		FromName:  s.FromName,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModel(s *smtpDatamodel.SMTPSettings) *Settings {
	return &Settings{
		ID:        s.ID,
		Host:      s.Host,
		Port:      s.Port,
		Secure:    s.Secure,
		Username:  s.Username,
		Password:  s.Password,
		FromEmail: s.FromEmail,
		FromName:  s.FromName,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

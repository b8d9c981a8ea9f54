package smtpsettings

import (
	"strings"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/core/common/validation"
)

// SaveSettingsDTO replaces the mail server configuration. An empty
// password keeps the previously stored one.
type SaveSettingsDTO struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Secure    bool   `json:"secure"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name,omitempty"`
}

func (dto SaveSettingsDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("host", dto.Host).Required()
	validator.Field("from_email", dto.FromEmail).
		Required().
		Custom(func(v interface{}) *errors.AppError {
			if s, ok := v.(string); ok && !strings.Contains(s, "@") {
				return errors.NewValidationFieldError("from_email", "from_email must be valid", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	if dto.Port < 1 || dto.Port > 65535 {
		return errors.NewValidationFieldError("port", "port must be between 1 and 65535", errors.ErrCodeValidationFailed)
	}
	return validator.Validate()
}

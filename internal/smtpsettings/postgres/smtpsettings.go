package postgres

import (
	"errors"

	"gorm.io/gorm"

	smtpDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/smtpsettings"
	"github.com/frahmantamala/petty-cash-management/internal/smtpsettings"
)

// SettingsRepository implements the smtpsettings.Repository interface using GORM
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) smtpsettings.Repository {
	return &SettingsRepository{db: db}
}

// Get returns the settings row, or nil when mail was never configured.
func (r *SettingsRepository) Get() (*smtpsettings.Settings, error) {
	var record smtpDatamodel.SMTPSettings
	err := r.db.Order("id ASC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return smtpsettings.FromDataModel(&record), nil
}

func (r *SettingsRepository) Save(s *smtpsettings.Settings) error {
	record := smtpsettings.ToDataModel(s)
	if err := r.db.Save(record).Error; err != nil {
		return err
	}
	s.ID = record.ID
	return nil
}

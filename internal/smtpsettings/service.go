package smtpsettings

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/petty-cash-management/internal"
)

// Repository defines the data access methods for the settings row
type Repository interface {
	Get() (*Settings, error)
	Save(s *Settings) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetSettings returns the stored configuration, or nil when mail was
// never configured.
func (s *Service) GetSettings() (*Settings, error) {
	settings, err := s.repo.Get()
	if err != nil {
		s.logger.Error("failed to load smtp settings", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return settings, nil
}

// SaveSettings replaces the configuration. There is exactly one settings
// row, updates overwrite it in place.
func (s *Service) SaveSettings(updatedBy int64, dto SaveSettingsDTO) (*Settings, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("smtp settings validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.Get()
	if err != nil {
		s.logger.Error("failed to load smtp settings for update", "error", err)
		return nil, errors.NewStorageError(err)
	}

	settings := &Settings{
		Host:      dto.Host,
		Port:      dto.Port,
		Secure:    dto.Secure,
		Username:  dto.Username,
		Password:  dto.Password,
		FromEmail: dto.FromEmail,
		FromName:  dto.FromName,
		UpdatedBy: &updatedBy,
		UpdatedAt: time.Now(),
	}
	if existing != nil {
		settings.ID = existing.ID
		if settings.Password == "" {
			settings.Password = existing.Password
		}
	}

	if err := s.repo.Save(settings); err != nil {
		s.logger.Error("failed to save smtp settings", "error", err)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("smtp settings saved",
		"host", settings.Host,
		"port", settings.Port,
		"from_email", settings.FromEmail,
		"updated_by", updatedBy)

	return settings, nil
}

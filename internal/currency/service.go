package currency

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/petty-cash-management/internal"
)

// Repository defines the data access methods for currencies
type Repository interface {
	GetByID(id int64) (*Currency, error)
	GetByCode(code string) (*Currency, error)
	ListAll() ([]*Currency, error)
	Save(c *Currency) error
	// SetDefault marks one currency as default and clears the flag on all
	// others in the same transaction.
	SetDefault(id int64) error
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

func (s *Service) ListCurrencies() ([]*Currency, error) {
	currencies, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list currencies", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return currencies, nil
}

func (s *Service) GetByCode(code string) (*Currency, error) {
	c, err := s.repo.GetByCode(code)
	if err != nil {
		s.logger.Error("currency not found", "error", err, "code", code)
		return nil, errors.ErrCurrencyNotFound
	}
	return c, nil
}

// SaveCurrency upserts a currency. Codes are normalized to upper case so
// "usd" and "USD" are the same denomination.
func (s *Service) SaveCurrency(dto SaveCurrencyDTO) (*Currency, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("currency validation failed", "error", err, "code", dto.Code)
		return nil, err
	}

	now := time.Now()
	var c *Currency

	if dto.ID > 0 {
		existing, err := s.repo.GetByID(dto.ID)
		if err != nil {
			s.logger.Error("currency not found for update", "error", err, "currency_id", dto.ID)
			return nil, errors.ErrCurrencyNotFound
		}
		existing.Name = dto.Name
		existing.Code = dto.NormalizedCode()
		existing.ExchangeRate = dto.ExchangeRate
		existing.UpdatedAt = now
		c = existing
	} else {
		c = &Currency{
			Name:         dto.Name,
			Code:         dto.NormalizedCode(),
			ExchangeRate: dto.ExchangeRate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if err := s.repo.Save(c); err != nil {
		s.logger.Error("failed to save currency", "error", err, "code", c.Code)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("currency saved", "currency_id", c.ID, "code", c.Code, "rate", c.ExchangeRate)
	return c, nil
}

// SetDefaultCurrency makes one currency the default and demotes the rest.
func (s *Service) SetDefaultCurrency(id int64) (*Currency, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("currency not found for default", "error", err, "currency_id", id)
		return nil, errors.ErrCurrencyNotFound
	}

	if err := s.repo.SetDefault(id); err != nil {
		s.logger.Error("failed to set default currency", "error", err, "currency_id", id)
		return nil, errors.NewStorageError(err)
	}

	c.IsDefault = true
	s.logger.Info("default currency set", "currency_id", id, "code", c.Code)
	return c, nil
}

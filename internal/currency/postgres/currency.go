package postgres

import (
	"errors"

	"gorm.io/gorm"

	currencyDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/currency"
	"github.com/frahmantamala/petty-cash-management/internal/currency"
)

// CurrencyRepository implements the currency.Repository interface using GORM
type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) currency.Repository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) GetByID(id int64) (*currency.Currency, error) {
	var record currencyDatamodel.Currency
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("currency not found")
		}
		return nil, err
	}
	return currency.FromDataModel(&record), nil
}

func (r *CurrencyRepository) GetByCode(code string) (*currency.Currency, error) {
	var record currencyDatamodel.Currency
	err := r.db.Where("code = ?", code).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("currency not found")
		}
		return nil, err
	}
	return currency.FromDataModel(&record), nil
}

func (r *CurrencyRepository) ListAll() ([]*currency.Currency, error) {
	var records []*currencyDatamodel.Currency
	err := r.db.Order("code ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return currency.FromDataModelSlice(records), nil
}

func (r *CurrencyRepository) Save(c *currency.Currency) error {
	record := currency.ToDataModel(c)
	if err := r.db.Save(record).Error; err != nil {
		return err
	}
	c.ID = record.ID
	return nil
}

// SetDefault flips the default flag inside one transaction so there is
// never a moment with two defaults visible.
func (r *CurrencyRepository) SetDefault(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&currencyDatamodel.Currency{}).
			Where("is_default = ?", true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&currencyDatamodel.Currency{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}

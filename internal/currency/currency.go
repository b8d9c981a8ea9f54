package currency

import (
	"time"

	currencyDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/currency"
)

// Currency is a spendable denomination. Exactly one currency is marked as
// the default used for new requests.
type Currency struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	ExchangeRate float64   `json:"exchange_rate"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToDataModel(c *Currency) *currencyDatamodel.Currency {
	return &currencyDatamodel.Currency{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		ExchangeRate: c.ExchangeRate,
		IsDefault:    c.IsDefault,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromDataModel(c *currencyDatamodel.Currency) *Currency {
	return &Currency{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		ExchangeRate: c.ExchangeRate,
		IsDefault:    c.IsDefault,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromDataModelSlice(currencies []*currencyDatamodel.Currency) []*Currency {
	result := make([]*Currency, len(currencies))
	for i, c := range currencies {
		result[i] = FromDataModel(c)
	}
	return result
}

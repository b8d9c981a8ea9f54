package currency_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/currency"
)

func TestCurrency(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Currency Suite")
}

type mockCurrencyRepository struct {
	currencies map[int64]*currency.Currency
	saveError  error
	nextID     int64
}

func newMockCurrencyRepository() *mockCurrencyRepository {
	return &mockCurrencyRepository{
		currencies: make(map[int64]*currency.Currency),
		nextID:     1,
	}
}

func (m *mockCurrencyRepository) GetByID(id int64) (*currency.Currency, error) {
	c, ok := m.currencies[id]
	if !ok {
		return nil, errors.New("currency not found")
	}
	return c, nil
}

func (m *mockCurrencyRepository) GetByCode(code string) (*currency.Currency, error) {
	for _, c := range m.currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, errors.New("currency not found")
}

func (m *mockCurrencyRepository) ListAll() ([]*currency.Currency, error) {
	result := make([]*currency.Currency, 0, len(m.currencies))
	for id := int64(1); id < m.nextID; id++ {
		if c, ok := m.currencies[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCurrencyRepository) Save(c *currency.Currency) error {
	if m.saveError != nil {
		return m.saveError
	}
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	}
	m.currencies[c.ID] = c
	return nil
}

func (m *mockCurrencyRepository) SetDefault(id int64) error {
	if _, ok := m.currencies[id]; !ok {
		return errors.New("currency not found")
	}
	for _, c := range m.currencies {
		c.IsDefault = c.ID == id
	}
	return nil
}

var _ = Describe("CurrencyService", func() {
	var (
		service  *currency.Service
		mockRepo *mockCurrencyRepository
	)

	BeforeEach(func() {
		mockRepo = newMockCurrencyRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = currency.NewService(mockRepo, logger)
	})

	Describe("SaveCurrency", func() {
		It("should create a currency with an upper-cased code", func() {
			saved, err := service.SaveCurrency(currency.SaveCurrencyDTO{
				Name:         "US Dollar",
				Code:         " usd ",
				ExchangeRate: 15600,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(saved.ID).To(BeNumerically(">", 0))
			Expect(saved.Code).To(Equal("USD"))
			Expect(saved.ExchangeRate).To(Equal(15600.0))
		})

		It("should update an existing currency in place", func() {
			created, err := service.SaveCurrency(currency.SaveCurrencyDTO{
				Name: "US Dollar", Code: "USD", ExchangeRate: 15600,
			})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.SaveCurrency(currency.SaveCurrencyDTO{
				ID: created.ID, Name: "US Dollar", Code: "USD", ExchangeRate: 15900,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.ID).To(Equal(created.ID))
			Expect(updated.ExchangeRate).To(Equal(15900.0))
		})

		It("should reject a code shorter than 3 characters", func() {
			_, err := service.SaveCurrency(currency.SaveCurrencyDTO{
				Name: "Broken", Code: "US", ExchangeRate: 1,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a non-positive exchange rate", func() {
			_, err := service.SaveCurrency(currency.SaveCurrencyDTO{
				Name: "Broken", Code: "USD", ExchangeRate: 0,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should fail updating a missing currency", func() {
			_, err := service.SaveCurrency(currency.SaveCurrencyDTO{
				ID: 77, Name: "Ghost", Code: "GHO", ExchangeRate: 1,
			})

			Expect(err).To(Equal(internal.ErrCurrencyNotFound))
		})
	})

	Describe("SetDefaultCurrency", func() {
		It("should promote one currency and demote the rest", func() {
			idr, err := service.SaveCurrency(currency.SaveCurrencyDTO{Name: "Rupiah", Code: "IDR", ExchangeRate: 1})
			Expect(err).ToNot(HaveOccurred())
			usd, err := service.SaveCurrency(currency.SaveCurrencyDTO{Name: "US Dollar", Code: "USD", ExchangeRate: 15600})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.SetDefaultCurrency(idr.ID)
			Expect(err).ToNot(HaveOccurred())

			promoted, err := service.SetDefaultCurrency(usd.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(promoted.IsDefault).To(BeTrue())

			all, err := service.ListCurrencies()
			Expect(err).ToNot(HaveOccurred())
			defaults := 0
			for _, c := range all {
				if c.IsDefault {
					defaults++
					Expect(c.Code).To(Equal("USD"))
				}
			}
			Expect(defaults).To(Equal(1))
		})

		It("should return not found for a missing currency", func() {
			_, err := service.SetDefaultCurrency(999)

			Expect(err).To(Equal(internal.ErrCurrencyNotFound))
		})
	})
})

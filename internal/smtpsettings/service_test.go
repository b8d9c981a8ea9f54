package smtpsettings_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/petty-cash-management/internal/smtpsettings"
)

func TestSMTPSettings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SMTPSettings Suite")
}

type mockSettingsRepository struct {
	stored    *smtpsettings.Settings
	saveError error
}

func (m *mockSettingsRepository) Get() (*smtpsettings.Settings, error) {
	return m.stored, nil
}

func (m *mockSettingsRepository) Save(s *smtpsettings.Settings) error {
	if m.saveError != nil {
		return m.saveError
	}
	if s.ID == 0 {
		s.ID = 1
	}
	m.stored = s
	return nil
}

var _ = Describe("SMTPSettingsService", func() {
	var (
		service  *smtpsettings.Service
		mockRepo *mockSettingsRepository
	)

	BeforeEach(func() {
		mockRepo = &mockSettingsRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = smtpsettings.NewService(mockRepo, logger)
	})

	Describe("GetSettings", func() {
		It("should return nil when mail was never configured", func() {
			settings, err := service.GetSettings()

			Expect(err).ToNot(HaveOccurred())
			Expect(settings).To(BeNil())
		})
	})

	Describe("SaveSettings", func() {
		It("should store the configuration with the editor stamped", func() {
			saved, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Host:      "smtp.mail.com",
				Port:      587,
				Username:  "mailer",
				Password:  "secret",
				FromEmail: "noreply@mail.com",
				FromName:  "Petty Cash",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(saved.ID).To(BeNumerically(">", 0))
			Expect(saved.Host).To(Equal("smtp.mail.com"))
			Expect(saved.UpdatedBy).ToNot(BeNil())
			Expect(*saved.UpdatedBy).To(Equal(int64(7)))
		})

		It("should overwrite the single settings row on update", func() {
			first, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Host: "smtp.mail.com", Port: 587, Password: "secret", FromEmail: "noreply@mail.com",
			})
			Expect(err).ToNot(HaveOccurred())

			second, err := service.SaveSettings(8, smtpsettings.SaveSettingsDTO{
				Host: "smtp.other.com", Port: 465, Secure: true, Password: "newsecret", FromEmail: "noreply@other.com",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
			Expect(second.Host).To(Equal("smtp.other.com"))
			Expect(second.Secure).To(BeTrue())
		})

		It("should keep the stored password when the update leaves it blank", func() {
			_, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Host: "smtp.mail.com", Port: 587, Password: "secret", FromEmail: "noreply@mail.com",
			})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Host: "smtp.mail.com", Port: 587, FromEmail: "noreply@mail.com",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Password).To(Equal("secret"))
		})

		It("should reject a missing host", func() {
			_, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Port: 587, FromEmail: "noreply@mail.com",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an out-of-range port", func() {
			_, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Host: "smtp.mail.com", Port: 70000, FromEmail: "noreply@mail.com",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a malformed sender address", func() {
			_, err := service.SaveSettings(7, smtpsettings.SaveSettingsDTO{
				Host: "smtp.mail.com", Port: 587, FromEmail: "not-an-address",
			})

			Expect(err).To(HaveOccurred())
		})
	})
})

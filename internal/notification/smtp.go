package notification

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	internal "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/smtpsettings"
)

// SettingsSource yields the admin-managed SMTP configuration, nil when
// none was saved yet.
type SettingsSource interface {
	GetSettings() (*smtpsettings.Settings, error)
}

// SMTPMailer sends mail over plain SMTP. Admin-saved settings win over
// the bootstrap config so operators can rotate mail servers without a
// redeploy.
type SMTPMailer struct {
	settings SettingsSource
	fallback internal.SMTPConfig
	logger   *slog.Logger
}

func NewSMTPMailer(settings SettingsSource, fallback internal.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		settings: settings,
		fallback: fallback,
		logger:   logger,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	host, port, username, password, fromEmail, fromName := m.resolveTransport()
	if host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", msg.To)
	fmt.Fprintf(&sb, "Subject: %s\r\n", msg.Subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", host, port)

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	if err := smtp.SendMail(addr, auth, fromEmail, []string{msg.To}, []byte(sb.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}

	m.logger.Info("email sent", "to", msg.To, "subject", msg.Subject, "host", host)
	return nil
}

func (m *SMTPMailer) resolveTransport() (host string, port int, username, password, fromEmail, fromName string) {
	stored, err := m.settings.GetSettings()
	if err != nil {
		m.logger.Warn("failed to load smtp settings, using bootstrap config", "error", err)
	}
	if stored != nil && stored.Host != "" {
		return stored.Host, stored.Port, stored.Username, stored.Password, stored.FromEmail, stored.FromName
	}
	return m.fallback.Host, m.fallback.Port, m.fallback.Username, m.fallback.Password, m.fallback.FromEmail, m.fallback.FromName
}

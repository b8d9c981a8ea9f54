package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sethvargo/go-retry"
)

// APIMailer delivers mail through a hosted email HTTP API. Transport
// level failures are retried by the underlying client, rate limiting is
// handled with exponential backoff on top.
type APIMailer struct {
	baseURL     string
	apiKey      string
	maxRetries  int
	sendTimeout time.Duration
	client      *retryablehttp.Client
	logger      *slog.Logger
}

type APIMailerConfig struct {
	BaseURL     string
	APIKey      string
	MaxRetries  int
	SendTimeout time.Duration
}

func NewAPIMailer(cfg APIMailerConfig, logger *slog.Logger) *APIMailer {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.SendTimeout

	return &APIMailer{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		maxRetries:  cfg.MaxRetries,
		sendTimeout: cfg.SendTimeout,
		client:      client,
		logger:      logger,
	}
}

type sendEmailPayload struct {
	To      string `json:"to"`
	ToName  string `json:"to_name,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *APIMailer) Send(msg Message) error {
	payload, err := json.Marshal(sendEmailPayload{
		To:      msg.To,
		ToName:  msg.ToName,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.sendTimeout*time.Duration(m.maxRetries+1))
	defer cancel()

	backoff := retry.WithMaxRetries(uint64(m.maxRetries), retry.NewExponential(time.Second))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return m.post(ctx, payload)
	})
	if err != nil {
		return fmt.Errorf("email api send to %s: %w", msg.To, err)
	}

	m.logger.Info("email sent via api", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *APIMailer) post(ctx context.Context, payload []byte) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/send-email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("email api request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		// back off and try again
		return retry.RetryableError(fmt.Errorf("email api rate limited"))
	default:
		return fmt.Errorf("email api returned status %d", resp.StatusCode)
	}
}

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Client sends plain-text email through a SendGrid-compatible mail API.
// It implements the notification.Notifier port.
type Client struct {
	baseURL    string
	apiKey     string
	from       emailAddress
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a mail API client from the mail configuration
func NewClient(cfg *config.MailConfig, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, shared.NewDomainError("INVALID_CONFIG", "Mail API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"),
		apiKey:  cfg.APIKey,
		from: emailAddress{
			Email: cfg.FromAddress,
			Name:  cfg.FromName,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

// Send delivers a plain-text email to a single recipient
func (c *Client) Send(ctx context.Context, recipient, subject, body string) error {
	if strings.TrimSpace(recipient) == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Recipient address cannot be empty")
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: recipient}}}},
		From:             c.from,
		Subject:          subject,
		Content:          []mailContent{{Type: "text/plain", Value: body}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("mail API rejected send",
			zap.Int("status", resp.StatusCode),
			zap.String("recipient", recipient))
		return fmt.Errorf("mail API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	c.logger.Debug("email sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}

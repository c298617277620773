package resend

// Package resend delivers transactional email through the Resend HTTP API.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/salonhub/salonhub-api/internal/ports"
)

const defaultEndpoint = "https://api.resend.com/emails"

// Config captures the subset of Resend behaviour we need.
type Config struct {
	APIKey   string
	From     string
	Endpoint string        // Optional, defaults to the public API
	Timeout  time.Duration // Optional, defaults to 10s
	Client   *http.Client  // Optional, defaults to a timeout-bound client
}

// Mailer sends email through Resend. It implements ports.Mailer.
type Mailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

// NewMailer builds a Resend mailer. Callers should pass a validated config.
func NewMailer(cfg Config) (*Mailer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		return nil, errors.New("resend from address is required")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Mailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: endpoint,
		client:   hc,
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send posts the email to the Resend API and returns the provider message id.
func (m *Mailer) Send(ctx context.Context, email ports.Email) (string, error) {
	if strings.TrimSpace(email.To) == "" {
		return "", errors.New("recipient is required")
	}

	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return "", fmt.Errorf("encode resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create resend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("resend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out sendResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		// Delivery succeeded; a malformed body only costs us the message id.
		return "", nil
	}
	return out.ID, nil
}

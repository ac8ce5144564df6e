package client

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

	"go.uber.org/zap"

	"teamup-board-api/internal/metrics"
)

// ErrEmailDisabled is returned when no API key is configured
var ErrEmailDisabled = errors.New("email delivery is not configured")

// EmailMessage is a single transactional email
type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// EmailClient sends transactional email
type EmailClient interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// resendClient implements EmailClient on the Resend HTTP API.
// The API key is server-held and never leaves this process.
type resendClient struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewResendClient creates a Resend API client
func NewResendClient(baseURL, apiKey, from string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) EmailClient {
	return &resendClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// Send posts the message to /emails
func (c *resendClient) Send(ctx context.Context, msg EmailMessage) error {
	url := fmt.Sprintf("%s/emails", c.baseURL)

	jsonBody, err := json.Marshal(resendRequest{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send email",
			zap.Error(err),
			zap.Int("recipients", len(msg.To)),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Email provider returned error status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	var out resendResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	c.logger.Info("Email sent",
		zap.String("email_id", out.ID),
		zap.Int("recipients", len(msg.To)),
		zap.Duration("duration", duration),
	)
	return nil
}

// NoOpEmailClient is used when no API key is configured. Every send fails
// with ErrEmailDisabled so callers surface a delivery warning.
type NoOpEmailClient struct {
	logger *zap.Logger
}

// NewNoOpEmailClient creates an EmailClient that never sends
func NewNoOpEmailClient(logger *zap.Logger) EmailClient {
	return &NoOpEmailClient{logger: logger}
}

func (c *NoOpEmailClient) Send(ctx context.Context, msg EmailMessage) error {
	c.logger.Warn("Email delivery disabled, message dropped", zap.String("subject", msg.Subject))
	return ErrEmailDisabled
}

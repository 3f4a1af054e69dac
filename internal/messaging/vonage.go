package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/projectpulse/project-management-api/internal/config"
)

// Dispatcher sends outbound WhatsApp messages. Implementations must treat
// each call as a single attempt; retries are the caller's concern and no
// caller currently retries.
type Dispatcher interface {
	SendWhatsApp(ctx context.Context, toNumber, text string) error
}

type endpoint struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type messageContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messageBody struct {
	From    endpoint `json:"from"`
	To      endpoint `json:"to"`
	Message struct {
		Content messageContent `json:"content"`
	} `json:"message"`
}

// VonageClient dispatches WhatsApp messages through the Vonage Messages API.
type VonageClient struct {
	apiURL     string
	apiKey     string
	apiSecret  string
	fromNumber string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewVonageClient constructs the default dispatcher. A nil client gets a
// 10 second timeout.
func NewVonageClient(cfg *config.Config, logger *zap.Logger, client *http.Client) *VonageClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &VonageClient{
		apiURL:     cfg.VonageAPIURL,
		apiKey:     cfg.VonageAPIKey,
		apiSecret:  cfg.VonageAPISecret,
		fromNumber: cfg.VonageWhatsAppNumber,
		httpClient: client,
		logger:     logger,
	}
}

// SendWhatsApp posts one text message to the recipient. A leading "+" on
// the recipient number is stripped before dispatch.
func (c *VonageClient) SendWhatsApp(ctx context.Context, toNumber, text string) error {
	toNumber = strings.TrimPrefix(toNumber, "+")

	body := messageBody{
		From: endpoint{Type: "whatsapp", Number: c.fromNumber},
		To:   endpoint{Type: "whatsapp", Number: toNumber},
	}
	body.Message.Content = messageContent{Type: "text", Text: text}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode message body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("whatsapp send failed", zap.String("to", toNumber), zap.Error(err))
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("whatsapp send rejected",
			zap.String("to", toNumber),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return fmt.Errorf("whatsapp send rejected with status %d", resp.StatusCode)
	}

	c.logger.Info("whatsapp message sent", zap.String("to", toNumber))
	return nil
}

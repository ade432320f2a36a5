// internal/infrastructure/yookassa/client.go
package yookassa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/coffee-miniapp/internal/config"
)

// Payment statuses relevant to the order flow.
const (
	StatusPending           = "pending"
	StatusWaitingForCapture = "waiting_for_capture"
	StatusSucceeded         = "succeeded"
)

// Amount is a YooKassa money value: decimal string plus currency.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Confirmation carries the redirect URL the payer is sent to.
type Confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

// Payment is a YooKassa payment object.
type Payment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Amount       Amount            `json:"amount"`
	Confirmation *Confirmation     `json:"confirmation,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Client talks to the YooKassa payments API. With empty credentials the
// client is disabled and in-app payment endpoints report it as unavailable.
type Client struct {
	baseURL   string
	shopID    string
	secretKey string
	http      *http.Client
}

// NewClient creates a new YooKassa API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.YooKassa.BaseURL, "/"),
		shopID:    strings.TrimSpace(cfg.YooKassa.ShopID),
		secretKey: strings.TrimSpace(cfg.YooKassa.SecretKey),
		http:      &http.Client{Timeout: cfg.YooKassa.Timeout},
	}
}

// Enabled reports whether credentials are configured.
func (c *Client) Enabled() bool {
	return c.shopID != "" && c.secretKey != ""
}

func (c *Client) authHeader() string {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.shopID + ":" + c.secretKey))
	return "Basic " + credentials
}

// CreatePayment creates a redirect payment for the given amount in rubles.
// Metadata travels back in webhooks and status polls.
func (c *Client) CreatePayment(ctx context.Context, amountRub float64, description, returnURL string, metadata map[string]string) (*Payment, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("yookassa credentials are not configured")
	}

	if len(description) > 255 {
		description = description[:255]
	}

	payload := map[string]interface{}{
		"amount": Amount{
			Value:    fmt.Sprintf("%.2f", amountRub),
			Currency: "RUB",
		},
		"confirmation": Confirmation{
			Type:      "redirect",
			ReturnURL: returnURL,
		},
		"description": description,
		"capture":     true,
		"metadata":    metadata,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment creation failed with status %d", resp.StatusCode)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	return &payment, nil
}

// GetPayment fetches a payment by id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("yookassa credentials are not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment fetch failed with status %d", resp.StatusCode)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	return &payment, nil
}

// internal/infrastructure/storeapi/client.go
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
	"github.com/your-org/coffee-miniapp/internal/domain/checkout"
)

// Client is the storefront-side client of the store backend API. It feeds
// the session with catalog data and implements the order and payment
// contracts of the checkout orchestrator.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a store API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// dataEnvelope wraps catalog responses.
type dataEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) fetchData(ctx context.Context, path, resource string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &catalog.LoadError{Resource: resource, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &catalog.LoadError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &catalog.LoadError{Resource: resource, Err: err}
	}

	var env dataEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &catalog.LoadError{Resource: resource, Err: err}
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		message := env.Error
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &catalog.LoadError{Resource: resource, Err: fmt.Errorf("%s", message)}
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		return &catalog.LoadError{Resource: resource, Err: err}
	}
	return nil
}

// FetchMenu loads the online-orders menu group.
func (c *Client) FetchMenu(ctx context.Context) (*catalog.MenuGroup, error) {
	var group catalog.MenuGroup
	if err := c.fetchData(ctx, "/api/menu", "menu", &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// FetchAddOnCatalog loads the add-on categories.
func (c *Client) FetchAddOnCatalog(ctx context.Context) ([]catalog.AddOnCategory, error) {
	var categories []catalog.AddOnCategory
	if err := c.fetchData(ctx, "/api/supplements", "supplements", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// post sends a JSON payload and decodes the JSON response regardless of the
// HTTP status: the backend reports failures inside the body.
func (c *Client) post(ctx context.Context, path string, payload, dest interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// CreateOrder submits an order through the store backend.
func (c *Client) CreateOrder(ctx context.Context, req *checkout.OrderRequest) (*checkout.OrderResult, error) {
	var result checkout.OrderResult
	if err := c.post(ctx, "/api/order", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PreparePayment freezes the cart on the backend and returns a payment token.
func (c *Client) PreparePayment(ctx context.Context, req *checkout.OrderRequest) (*checkout.PaymentResult, error) {
	var result checkout.PaymentResult
	if err := c.post(ctx, "/api/payment/prepare", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

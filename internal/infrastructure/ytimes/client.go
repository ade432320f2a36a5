// internal/infrastructure/ytimes/client.go
package ytimes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/your-org/coffee-miniapp/internal/config"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
)

// APIError is an error reported by the YTimes API or the transport under it.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ytimes: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("ytimes: %s", e.Message)
}

// envelope is the common YTimes response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Rows    json.RawMessage `json:"rows"`
	Error   string          `json:"error"`
}

// Client talks to the YTimes POS API. All endpoints share one API key and
// one shop guid.
type Client struct {
	baseURL  string
	apiKey   string
	shopGUID string
	http     *http.Client
}

// NewClient creates a new YTimes API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.YTimes.BaseURL, "/"),
		apiKey:   cfg.YTimes.APIKey,
		shopGUID: cfg.YTimes.ShopGUID,
		http:     &http.Client{Timeout: cfg.YTimes.Timeout},
	}
}

// ShopGUID returns the configured shop guid.
func (c *Client) ShopGUID() string {
	return c.shopGUID
}

// request performs one API call and unwraps the response envelope.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json;charset=UTF-8")
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Message:    string(data),
			StatusCode: resp.StatusCode,
		}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("invalid response: %v", err)}
	}
	if !env.Success {
		message := env.Error
		if message == "" {
			message = "unknown API error"
		}
		return nil, &APIError{Message: message}
	}

	return env.Rows, nil
}

// MenuGroups fetches the menu group structure for the shop.
func (c *Client) MenuGroups(ctx context.Context) ([]catalog.MenuGroup, error) {
	query := url.Values{"shopGuid": {c.shopGUID}}
	rows, err := c.request(ctx, http.MethodGet, "/menu/v2/group/list", query, nil)
	if err != nil {
		return nil, err
	}

	var groups []catalog.MenuGroup
	if len(rows) > 0 {
		if err := json.Unmarshal(rows, &groups); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("invalid menu groups: %v", err)}
		}
	}
	return groups, nil
}

// AddOnCategories fetches the add-on categories for the shop.
func (c *Client) AddOnCategories(ctx context.Context) ([]catalog.AddOnCategory, error) {
	query := url.Values{"shopGuid": {c.shopGUID}}
	rows, err := c.request(ctx, http.MethodGet, "/menu/supplement/list", query, nil)
	if err != nil {
		return nil, err
	}

	var categories []catalog.AddOnCategory
	if len(rows) > 0 {
		if err := json.Unmarshal(rows, &categories); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("invalid add-on categories: %v", err)}
		}
	}
	return categories, nil
}

// OrderItem is one position of a POS order.
type OrderItem struct {
	MenuItemGUID string         `json:"menuItemGuid"`
	MenuTypeGUID string         `json:"menuTypeGuid,omitempty"`
	Supplements  map[string]int `json:"supplementList"`
	Price        float64        `json:"priceWithDiscount"`
	Quantity     int            `json:"quantity"`
}

// OrderClient is the client block of a POS order in YTimes format.
type OrderClient struct {
	Name       string  `json:"name"`
	CardNumber *string `json:"cardNumber"`
	PhoneCode  string  `json:"phoneCode"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
}

// CreateOrderRequest is the payload of order/save.
type CreateOrderRequest struct {
	GUID             string       `json:"guid"`
	ShopGUID         string       `json:"shopGuid"`
	Type             string       `json:"type"`
	ItemList         []OrderItem  `json:"itemList"`
	Client           *OrderClient `json:"client,omitempty"`
	Comment          string       `json:"comment"`
	PaidValue        *float64     `json:"paidValue"`
	PrintFiscalCheck bool         `json:"printFiscalCheck"`
}

// CreatedOrder is the order row returned by order/save.
type CreatedOrder struct {
	GUID   string `json:"guid"`
	Status string `json:"status"`
}

// NormalizeClient converts free-form client data to the YTimes format.
// Russian numbers arrive as "+7...", "8..." or bare digits; the API wants the
// national part without the leading 7 or 8 and a separate "+7" phone code.
func NormalizeClient(name, phone, email string) *OrderClient {
	if name == "" {
		name = "Гость"
	}

	var digits strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	normalized := digits.String()
	if len(normalized) >= 11 && (normalized[0] == '7' || normalized[0] == '8') {
		normalized = normalized[1:]
	}
	if len(normalized) > 15 {
		normalized = normalized[:15]
	}

	return &OrderClient{
		Name:       name,
		CardNumber: nil,
		PhoneCode:  "+7",
		Phone:      normalized,
		Email:      email,
	}
}

// CreateOrder submits an order to the POS. The order guid doubles as the
// idempotency key and addresses the order in status webhooks later.
func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreatedOrder, error) {
	if req.ShopGUID == "" {
		req.ShopGUID = c.shopGUID
	}

	rows, err := c.request(ctx, http.MethodPost, "/order/save", nil, req)
	if err != nil {
		return nil, err
	}

	var created []CreatedOrder
	if len(rows) > 0 {
		if err := json.Unmarshal(rows, &created); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("invalid order response: %v", err)}
		}
	}
	if len(created) == 0 {
		return nil, &APIError{Message: "order/save response contains no order"}
	}
	return &created[0], nil
}

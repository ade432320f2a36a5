// internal/domain/checkout/entity.go
package checkout

// PaymentMethod selects how the order is paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// OrderTypeTogo is the POS order type for pickup orders.
const OrderTypeTogo = "TOGO"

// OrderItem is one line of an order or payment request.
type OrderItem struct {
	MenuItemGUID string         `json:"menuItemGuid"`
	VariantGUID  string         `json:"menuTypeGuid,omitempty"`
	AddOns       map[string]int `json:"supplementList"`
	UnitPrice    float64        `json:"priceWithDiscount"`
	Quantity     int            `json:"quantity"`
}

// Client describes the ordering customer.
type Client struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// OrderRequest is the common payload for order creation and payment
// preparation. Type and PaidValue are set only on the cash path.
type OrderRequest struct {
	Type           string      `json:"type,omitempty"`
	Items          []OrderItem `json:"items"`
	Client         Client      `json:"client"`
	Comment        string      `json:"comment,omitempty"`
	TelegramUserID int64       `json:"telegramUserId,omitempty"`
	PaidValue      *float64    `json:"paidValue,omitempty"`
}

// OrderResult is the order service response.
type OrderResult struct {
	Success bool    `json:"success"`
	OrderID string  `json:"order_id,omitempty"`
	Status  string  `json:"status,omitempty"`
	Total   float64 `json:"total,omitempty"`
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// PaymentResult is the payment preparation response.
type PaymentResult struct {
	Success      bool   `json:"success"`
	PaymentToken string `json:"payment_token,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Bridge actions understood by the chat-bot peer.
const (
	ActionRequestPayment = "request_payment"
	ActionOrderCreated   = "order_created"
)

// PaymentRequested asks the bot peer to open a payment window in the chat.
type PaymentRequested struct {
	Action       string `json:"action"`
	PaymentToken string `json:"payment_token"`
}

// OrderCreated informs the bot peer that a cash order went through.
type OrderCreated struct {
	Action  string  `json:"action"`
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
	Paid    bool    `json:"paid"`
}

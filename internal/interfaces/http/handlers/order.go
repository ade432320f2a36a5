// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/domain/order"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/ytimes"
)

// POSGateway is the slice of the YTimes client the handlers need.
type POSGateway interface {
	ShopGUID() string
	CreateOrder(ctx context.Context, req *ytimes.CreateOrderRequest) (*ytimes.CreatedOrder, error)
}

// OrderStore persists and queries order records.
type OrderStore interface {
	Create(ctx context.Context, record *order.Record) error
	UpdateStatusByGUID(ctx context.Context, posGUID, status string) (*order.Record, error)
	ListByUser(ctx context.Context, telegramID int64, limit int) ([]order.Record, error)
}

// OrderItemPayload is one cart line as submitted by the storefront.
type OrderItemPayload struct {
	MenuItemGUID string         `json:"menuItemGuid" binding:"required"`
	MenuTypeGUID string         `json:"menuTypeGuid"`
	Supplements  map[string]int `json:"supplementList"`
	Price        float64        `json:"priceWithDiscount"`
	Quantity     int            `json:"quantity"`
}

// ClientPayload is the customer block of an order submission.
type ClientPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CreateOrderPayload is the body of POST /api/order.
type CreateOrderPayload struct {
	Type           string             `json:"type"`
	Items          []OrderItemPayload `json:"items"`
	Client         ClientPayload      `json:"client"`
	Comment        string             `json:"comment"`
	TelegramUserID int64              `json:"telegramUserId"`
	PaidValue      *float64           `json:"paidValue"`
}

// Total sums the payload lines.
func (p *CreateOrderPayload) Total() float64 {
	var total float64
	for _, item := range p.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// posItems converts payload lines to the POS wire format.
func posItems(items []OrderItemPayload) []ytimes.OrderItem {
	out := make([]ytimes.OrderItem, 0, len(items))
	for _, item := range items {
		supplements := item.Supplements
		if supplements == nil {
			supplements = map[string]int{}
		}
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		out = append(out, ytimes.OrderItem{
			MenuItemGUID: item.MenuItemGUID,
			MenuTypeGUID: item.MenuTypeGUID,
			Supplements:  supplements,
			Price:        item.Price,
			Quantity:     quantity,
		})
	}
	return out
}

// OrderHandler handles order submission
type OrderHandler struct {
	pos    POSGateway
	orders OrderStore
	log    *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(pos POSGateway, orders OrderStore, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		pos:    pos,
		orders: orders,
		log:    log,
	}
}

// CreateOrder submits an order to the POS and records it.
// POST /api/order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(payload.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Пустой заказ"})
		return
	}

	total := payload.Total()
	orderGUID := uuid.NewString()

	orderType := payload.Type
	if orderType == "" {
		orderType = "TOGO"
	}

	// paidValue 0 means pay on pickup, same as absent.
	paidValue := payload.PaidValue
	if paidValue != nil && *paidValue == 0 {
		paidValue = nil
	}

	created, err := h.pos.CreateOrder(c.Request.Context(), &ytimes.CreateOrderRequest{
		GUID:      orderGUID,
		ShopGUID:  h.pos.ShopGUID(),
		Type:      orderType,
		ItemList:  posItems(payload.Items),
		Client:    ytimes.NormalizeClient(payload.Client.Name, payload.Client.Phone, payload.Client.Email),
		Comment:   payload.Comment,
		PaidValue: paidValue,
	})
	if err != nil {
		h.log.WithError(err).Error("POS order creation failed")
		var apiErr *ytimes.APIError
		status := http.StatusInternalServerError
		if errors.As(err, &apiErr) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	orderID := created.GUID
	if orderID == "" {
		orderID = orderGUID
	}
	status := created.Status
	if status == "" {
		status = order.StatusCreated
	}

	h.recordOrder(c.Request.Context(), payload.TelegramUserID, orderID, total, status, payload.Items)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": orderID,
		"status":   status,
		"total":    total,
		"message":  "Заказ успешно сформирован и отправлен на кассу",
	})
}

// recordOrder writes the order record. The POS already holds the order at
// this point, so a failed write is logged and not surfaced to the caller.
func (h *OrderHandler) recordOrder(ctx context.Context, telegramID int64, posGUID string, total float64, status string, items []OrderItemPayload) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		h.log.WithError(err).Warn("failed to marshal order items")
		itemsJSON = []byte("[]")
	}

	record := &order.Record{
		UserTelegramID: telegramID,
		POSGUID:        posGUID,
		TotalPrice:     total,
		Status:         status,
		ItemsJSON:      string(itemsJSON),
	}
	if err := h.orders.Create(ctx, record); err != nil {
		h.log.WithError(err).WithField("pos_guid", posGUID).Warn("failed to record order")
	}
}

// ListOrders returns the stored orders of one user, newest first.
// GET /api/orders?telegram_id=&limit= (bot only)
func (h *OrderHandler) ListOrders(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Query("telegram_id"), 10, 64)
	if err != nil || telegramID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Требуется telegram_id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.orders.ListByUser(c.Request.Context(), telegramID, limit)
	if err != nil {
		h.log.WithError(err).Error("failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось получить заказы"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

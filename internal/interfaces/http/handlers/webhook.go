// internal/interfaces/http/handlers/webhook.go
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/domain/order"
)

// UserNotifier pushes a message to a user in the chat.
type UserNotifier interface {
	SendMessage(ctx context.Context, chatID int64, text string)
}

// WebhookHandler handles POS status callbacks
type WebhookHandler struct {
	orders   OrderStore
	notifier UserNotifier
	log      *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(orders OrderStore, notifier UserNotifier, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		orders:   orders,
		notifier: notifier,
		log:      log,
	}
}

// orderStatusPayload is the POS webhook body.
type orderStatusPayload struct {
	GUID          string `json:"guid"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
}

// OrderStatus receives an order status change from the POS. The POS retries
// on non-200 responses, so the handler answers 200 OK no matter what and
// logs its own failures.
// POST /api/webhook/order-status
func (h *WebhookHandler) OrderStatus(c *gin.Context) {
	defer c.String(http.StatusOK, "OK")

	var payload orderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.WithError(err).Warn("invalid order status webhook")
		return
	}
	if payload.GUID == "" || payload.Status == "" {
		return
	}

	record, err := h.orders.UpdateStatusByGUID(c.Request.Context(), payload.GUID, payload.Status)
	if err != nil {
		h.log.WithError(err).WithField("pos_guid", payload.GUID).Warn("failed to update order status")
		return
	}

	if record.UserTelegramID == 0 {
		return
	}
	switch payload.Status {
	case order.StatusAccepted:
		h.notifier.SendMessage(c.Request.Context(), record.UserTelegramID, "✅ Ваш заказ принят. Ожидайте приготовления.")
	case order.StatusCancelled:
		reason := payload.StatusMessage
		if reason == "" {
			reason = "Причина не указана"
		}
		h.notifier.SendMessage(c.Request.Context(), record.UserTelegramID, fmt.Sprintf("❌ Заказ отклонён: %s", reason))
	}
}

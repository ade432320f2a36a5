// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/config"
	"github.com/your-org/coffee-miniapp/internal/domain/order"
	"github.com/your-org/coffee-miniapp/internal/domain/payment"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/yookassa"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/ytimes"
)

// PaymentHandler handles online payment flows
type PaymentHandler struct {
	pending   *payment.Service
	yookassa  *yookassa.Client
	pos       POSGateway
	orders    OrderStore
	webAppURL string
	log       *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(pending *payment.Service, yk *yookassa.Client, pos POSGateway, orders OrderStore, cfg *config.Config, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		pending:   pending,
		yookassa:  yk,
		pos:       pos,
		orders:    orders,
		webAppURL: strings.TrimRight(cfg.Telegram.WebAppURL, "/"),
		log:       log,
	}
}

// storePending freezes the submitted cart under a fresh payment token.
func (h *PaymentHandler) storePending(c *gin.Context, payload *CreateOrderPayload, total float64) (string, error) {
	itemsJSON, err := json.Marshal(payload.Items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal items: %w", err)
	}
	clientJSON, err := json.Marshal(payload.Client)
	if err != nil {
		return "", fmt.Errorf("failed to marshal client: %w", err)
	}

	token := payment.NewToken()
	err = h.pending.CreatePending(c.Request.Context(), &payment.PendingPayment{
		Token:      token,
		TelegramID: payload.TelegramUserID,
		Items:      itemsJSON,
		Total:      total,
		Client:     clientJSON,
		Comment:    strings.TrimSpace(payload.Comment),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Prepare freezes the cart and returns a payment token for the bot invoice.
// POST /api/payment/prepare
func (h *PaymentHandler) Prepare(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(payload.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Пустая корзина"})
		return
	}

	token, err := h.storePending(c, &payload, payload.Total())
	if err != nil {
		h.log.WithError(err).Error("failed to store pending payment")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось подготовить платёж"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"payment_token": token,
	})
}

// CreateInApp creates a YooKassa payment and returns its confirmation URL.
// POST /api/payment/create-inapp
func (h *PaymentHandler) CreateInApp(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(payload.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Пустая корзина"})
		return
	}
	total := payload.Total()
	if total <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректная сумма"})
		return
	}
	if !h.yookassa.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Оплата в приложении не настроена (ЮKassa). Выберите «Оплата при получении» или оплату через бота.",
		})
		return
	}
	if h.webAppURL == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "WEBAPP_URL не задан"})
		return
	}

	token, err := h.storePending(c, &payload, total)
	if err != nil {
		h.log.WithError(err).Error("failed to store pending payment")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось подготовить платёж"})
		return
	}

	returnURL := fmt.Sprintf("%s/api/payment/return?payment_token=%s", h.webAppURL, token)
	created, err := h.yookassa.CreatePayment(
		c.Request.Context(),
		total,
		fmt.Sprintf("Заказ на %.2f ₽", total),
		returnURL,
		map[string]string{"payment_token": token},
	)
	if err != nil || (created.Status != yookassa.StatusPending && created.Status != yookassa.StatusWaitingForCapture) {
		h.log.WithError(err).Error("yookassa payment creation failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Не удалось создать платёж. Попробуйте позже."})
		return
	}
	if created.ID == "" || created.Confirmation == nil || created.Confirmation.ConfirmationURL == "" {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Ошибка ответа платёжной системы."})
		return
	}

	if err := h.pending.SetYooKassaID(c.Request.Context(), token, created.ID); err != nil {
		h.log.WithError(err).Error("failed to attach yookassa payment id")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось подготовить платёж"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"payment_token":    token,
		"confirmation_url": created.Confirmation.ConfirmationURL,
	})
}

// Return handles the user coming back from the YooKassa payment page. On a
// confirmed payment the order goes to the POS and the user is redirected
// into the app with the result in query parameters.
// GET /api/payment/return
func (h *PaymentHandler) Return(c *gin.Context) {
	failURL := h.webAppURL + "?payment_failed=1"
	if h.webAppURL == "" {
		failURL = "/"
	}

	token := c.Query("payment_token")
	if token == "" {
		c.Redirect(http.StatusFound, failURL)
		return
	}

	pending, err := h.pending.GetPending(c.Request.Context(), token)
	if err != nil || strings.TrimSpace(pending.YooKassaID) == "" {
		c.Redirect(http.StatusFound, failURL)
		return
	}

	paid, err := h.yookassa.GetPayment(c.Request.Context(), pending.YooKassaID)
	if err != nil || paid.Status != yookassa.StatusSucceeded {
		c.Redirect(http.StatusFound, failURL)
		return
	}

	orderID, _, err := h.submitPendingOrder(c, pending)
	if err != nil {
		h.log.WithError(err).Error("failed to submit paid order")
		c.Redirect(http.StatusFound, h.webAppURL+"?payment_error=order")
		return
	}

	if err := h.pending.DeletePending(c.Request.Context(), token); err != nil {
		h.log.WithError(err).Warn("failed to delete pending payment")
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?payment_success=1&order_id=%s", h.webAppURL, orderID))
}

// GetPending returns the frozen cart behind a payment token.
// GET /api/payment/pending/:token (bot only)
func (h *PaymentHandler) GetPending(c *gin.Context) {
	token := c.Param("token")
	pending, err := h.pending.GetPending(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Платёж не найден или уже использован"})
			return
		}
		h.log.WithError(err).Error("failed to load pending payment")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось получить платёж"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"items":       pending.Items,
		"total":       pending.Total,
		"client":      pending.Client,
		"comment":     pending.Comment,
		"telegram_id": pending.TelegramID,
	})
}

// orderFromPaymentPayload is the body of POST /api/order-from-payment.
type orderFromPaymentPayload struct {
	PaymentToken string `json:"payment_token"`
	TelegramID   int64  `json:"telegram_id"`
}

// OrderFromPayment creates the POS order after the bot confirms a payment.
// POST /api/order-from-payment (bot only)
func (h *PaymentHandler) OrderFromPayment(c *gin.Context) {
	var payload orderFromPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	token := strings.TrimSpace(payload.PaymentToken)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Требуется payment_token"})
		return
	}

	pending, err := h.pending.GetPending(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Платёж не найден или уже использован"})
			return
		}
		h.log.WithError(err).Error("failed to load pending payment")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Не удалось получить платёж"})
		return
	}
	if payload.TelegramID != 0 {
		pending.TelegramID = payload.TelegramID
	}

	orderID, status, err := h.submitPendingOrder(c, pending)
	if err != nil {
		h.log.WithError(err).Error("failed to submit paid order")
		var apiErr *ytimes.APIError
		httpStatus := http.StatusInternalServerError
		if errors.As(err, &apiErr) {
			httpStatus = http.StatusBadGateway
		}
		c.JSON(httpStatus, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.pending.DeletePending(c.Request.Context(), token); err != nil {
		h.log.WithError(err).Warn("failed to delete pending payment")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": orderID,
		"status":   status,
		"total":    pending.Total,
	})
}

// submitPendingOrder sends a frozen cart to the POS as a fully paid order
// and records it.
func (h *PaymentHandler) submitPendingOrder(c *gin.Context, pending *payment.PendingPayment) (string, string, error) {
	var items []OrderItemPayload
	if err := json.Unmarshal(pending.Items, &items); err != nil {
		return "", "", fmt.Errorf("failed to unmarshal pending items: %w", err)
	}
	var client ClientPayload
	if len(pending.Client) > 0 {
		if err := json.Unmarshal(pending.Client, &client); err != nil {
			return "", "", fmt.Errorf("failed to unmarshal pending client: %w", err)
		}
	}

	orderGUID := uuid.NewString()
	paidValue := pending.Total

	created, err := h.pos.CreateOrder(c.Request.Context(), &ytimes.CreateOrderRequest{
		GUID:      orderGUID,
		ShopGUID:  h.pos.ShopGUID(),
		Type:      "TOGO",
		ItemList:  posItems(items),
		Client:    ytimes.NormalizeClient(client.Name, client.Phone, client.Email),
		Comment:   pending.Comment,
		PaidValue: &paidValue,
	})
	if err != nil {
		return "", "", err
	}

	orderID := created.GUID
	if orderID == "" {
		orderID = orderGUID
	}
	status := created.Status
	if status == "" {
		status = order.StatusCreated
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		itemsJSON = []byte("[]")
	}
	record := &order.Record{
		UserTelegramID: pending.TelegramID,
		POSGUID:        orderID,
		TotalPrice:     pending.Total,
		Status:         status,
		ItemsJSON:      string(itemsJSON),
	}
	if err := h.orders.Create(c.Request.Context(), record); err != nil {
		h.log.WithError(err).WithField("pos_guid", orderID).Warn("failed to record order")
	}

	return orderID, status, nil
}

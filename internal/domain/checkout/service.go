// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/domain/history"
	"github.com/your-org/coffee-miniapp/internal/domain/session"
)

// savedOrderDateLayout renders order timestamps the way the profile screen
// shows them (ru-RU locale).
const savedOrderDateLayout = "02.01.2006, 15:04:05"

// User is the best-effort descriptor of the current user.
type User struct {
	ID          int64
	DisplayName string
	Phone       string
}

// IdentityProvider exposes the ambient platform user, which may be entirely
// absent.
type IdentityProvider interface {
	CurrentUser() *User
}

// Confirmer asks the user a yes/no question and yields the answer.
// Single-shot, not cancelable.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// MessageBridge delivers action payloads to the chat-bot peer.
// Fire-and-forget: delivery is neither awaited nor guaranteed.
type MessageBridge interface {
	Send(payload interface{})
}

// OrderService submits orders to the backend.
type OrderService interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error)
}

// PaymentService prepares online payments on the backend.
type PaymentService interface {
	PreparePayment(ctx context.Context, req *OrderRequest) (*PaymentResult, error)
}

// Collaborators bundles the external contracts the orchestrator talks to.
type Collaborators struct {
	Orders   OrderService
	Payments PaymentService
	Identity IdentityProvider
	Confirm  Confirmer
	Notify   session.Notifier
	Bridge   MessageBridge
}

// Service turns the session's cart into a submitted order or payment
// request. Payload construction always happens before the remote call and
// session state mutates only after a successful response, so a failed call
// leaves the cart, selection and navigation exactly as they were.
type Service struct {
	session *session.Session
	journal *history.Journal
	c       Collaborators
	log     *logrus.Logger

	comment string
	method  PaymentMethod
	busy    bool

	now func() time.Time
}

// NewService creates a new checkout orchestrator. The payment method
// defaults to cash on pickup.
func NewService(sess *session.Session, journal *history.Journal, c Collaborators, log *logrus.Logger) *Service {
	return &Service{
		session: sess,
		journal: journal,
		c:       c,
		log:     log,
		method:  PaymentCash,
		now:     time.Now,
	}
}

// SetComment stores the free-text order comment.
func (s *Service) SetComment(comment string) {
	s.comment = comment
}

// SetPaymentMethod selects cash or online payment.
func (s *Service) SetPaymentMethod(method PaymentMethod) {
	s.method = method
}

// Method returns the selected payment method.
func (s *Service) Method() PaymentMethod {
	return s.method
}

// Journal returns the order history journal.
func (s *Service) Journal() *history.Journal {
	return s.journal
}

// Checkout runs the full checkout flow for the selected payment method.
// Refused with a notice when the cart is empty or another checkout is still
// in flight.
func (s *Service) Checkout(ctx context.Context) {
	if s.busy {
		s.c.Notify.Notify(NoticeCheckoutBusy)
		return
	}
	if s.session.Cart().Len() == 0 {
		s.c.Notify.Notify(NoticeEmptyCart)
		return
	}

	s.busy = true
	defer func() { s.busy = false }()

	total := s.session.Cart().Total()
	req := s.buildRequest()

	if s.method == PaymentOnline {
		s.checkoutOnline(ctx, req)
		return
	}
	s.checkoutCash(ctx, req, total)
}

// buildRequest assembles the common order payload from the cart, the
// identity provider and the comment. The comment is trimmed and omitted
// entirely when empty.
func (s *Service) buildRequest() *OrderRequest {
	cartItems := s.session.Cart().Items()
	items := make([]OrderItem, 0, len(cartItems))
	for _, li := range cartItems {
		items = append(items, OrderItem{
			MenuItemGUID: li.MenuItemGUID,
			VariantGUID:  li.VariantGUID,
			AddOns:       li.AddOns,
			UnitPrice:    li.UnitPrice,
			Quantity:     li.Quantity,
		})
	}

	name := "Пользователь"
	phone := ""
	var telegramID int64
	if user := s.c.Identity.CurrentUser(); user != nil {
		if user.DisplayName != "" {
			name = user.DisplayName
		}
		phone = user.Phone
		telegramID = user.ID
	}

	return &OrderRequest{
		Items:          items,
		Client:         Client{Name: name, Phone: phone, Email: ""},
		Comment:        strings.TrimSpace(s.comment),
		TelegramUserID: telegramID,
	}
}

func (s *Service) checkoutOnline(ctx context.Context, req *OrderRequest) {
	confirmed, err := s.c.Confirm.Confirm(ctx, ConfirmOnline)
	if err != nil || !confirmed {
		return
	}

	result, err := s.c.Payments.PreparePayment(ctx, req)
	if err != nil {
		s.log.WithError(err).Error("payment preparation failed")
		s.c.Notify.Notify(noticeErrorPrefix + FallbackNetwork)
		return
	}
	if !result.Success || result.PaymentToken == "" {
		message := result.Error
		if message == "" {
			message = FallbackPaymentPrepare
		}
		s.c.Notify.Notify(noticeErrorPrefix + message)
		return
	}

	s.c.Bridge.Send(PaymentRequested{
		Action:       ActionRequestPayment,
		PaymentToken: result.PaymentToken,
	})

	// The paid order is confirmed out-of-band, through the bot, after the
	// user pays in the chat. No history entry is written here.
	s.session.ResetAfterCheckout()
	s.c.Notify.Notify(NoticePaymentWindowSent)
}

func (s *Service) checkoutCash(ctx context.Context, req *OrderRequest, total float64) {
	confirmed, err := s.c.Confirm.Confirm(ctx, ConfirmCash)
	if err != nil || !confirmed {
		return
	}

	req.Type = OrderTypeTogo
	zero := 0.0
	req.PaidValue = &zero

	result, err := s.c.Orders.CreateOrder(ctx, req)
	if err != nil {
		s.log.WithError(err).Error("order creation failed")
		s.c.Notify.Notify(noticeErrorPrefix + FallbackNetwork)
		return
	}
	if !result.Success || result.OrderID == "" {
		message := result.Error
		if message == "" {
			message = FallbackUnknownError
		}
		s.c.Notify.Notify(noticeErrorPrefix + message)
		return
	}

	s.journal.Record(history.SavedOrder{
		ID:    result.OrderID,
		Date:  s.now().Format(savedOrderDateLayout),
		Total: total,
		Items: s.session.Cart().Items(),
	})

	s.c.Bridge.Send(OrderCreated{
		Action:  ActionOrderCreated,
		OrderID: result.OrderID,
		Total:   total,
		Paid:    false,
	})

	s.session.ResetAfterCheckout()
	s.c.Notify.Notify(fmt.Sprintf(noticeOrderCreatedFormat, result.OrderID, total))
}

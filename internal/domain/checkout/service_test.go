// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
	"github.com/your-org/coffee-miniapp/internal/domain/history"
	"github.com/your-org/coffee-miniapp/internal/domain/session"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) last() string {
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

type fakeOrders struct {
	req    *OrderRequest
	result *OrderResult
	err    error
}

func (f *fakeOrders) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	f.req = req
	return f.result, f.err
}

type fakePayments struct {
	req    *OrderRequest
	result *PaymentResult
	err    error
}

func (f *fakePayments) PreparePayment(ctx context.Context, req *OrderRequest) (*PaymentResult, error) {
	f.req = req
	return f.result, f.err
}

type fakeIdentity struct {
	user *User
}

func (f *fakeIdentity) CurrentUser() *User {
	return f.user
}

type fakeConfirmer struct {
	asked  []string
	answer bool
	err    error
	hook   func()
}

func (f *fakeConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	f.asked = append(f.asked, message)
	if f.hook != nil {
		f.hook()
	}
	return f.answer, f.err
}

type fakeBridge struct {
	payloads []interface{}
}

func (f *fakeBridge) Send(payload interface{}) {
	f.payloads = append(f.payloads, payload)
}

type memoryStore struct {
	orders []history.SavedOrder
}

func (m *memoryStore) Load() []history.SavedOrder {
	return m.orders
}

func (m *memoryStore) Save(orders []history.SavedOrder) {
	m.orders = orders
}

type fixture struct {
	session  *session.Session
	service  *Service
	journal  *history.Journal
	orders   *fakeOrders
	payments *fakePayments
	confirm  *fakeConfirmer
	bridge   *fakeBridge
	notifier *recordingNotifier
	store    *memoryStore
}

func newFixture() *fixture {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	notifier := &recordingNotifier{}
	sess := session.New(nil, notifier, log)

	store := &memoryStore{}
	journal := history.NewJournal(store)

	orders := &fakeOrders{result: &OrderResult{Success: true, OrderID: "pos-guid-1", Status: "CREATED"}}
	payments := &fakePayments{result: &PaymentResult{Success: true, PaymentToken: "tok-1"}}
	confirm := &fakeConfirmer{answer: true}
	bridge := &fakeBridge{}

	svc := NewService(sess, journal, Collaborators{
		Orders:   orders,
		Payments: payments,
		Identity: &fakeIdentity{user: &User{ID: 42, DisplayName: "Иван", Phone: "+7 999 123-45-67"}},
		Confirm:  confirm,
		Notify:   notifier,
		Bridge:   bridge,
	}, log)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	}

	return &fixture{
		session:  sess,
		service:  svc,
		journal:  journal,
		orders:   orders,
		payments: payments,
		confirm:  confirm,
		bridge:   bridge,
		notifier: notifier,
		store:    store,
	}
}

func (f *fixture) fillCart() {
	price := 150.0
	f.session.SelectItem(catalog.MenuItem{GUID: "latte", Name: "Латте", Price: &price})
	f.session.SelectItem(catalog.MenuItem{GUID: "latte", Name: "Латте", Price: &price})
}

func TestCheckoutEmptyCartRefused(t *testing.T) {
	f := newFixture()

	f.service.Checkout(context.Background())

	assert.Equal(t, NoticeEmptyCart, f.notifier.last())
	assert.Nil(t, f.orders.req)
	assert.Empty(t, f.confirm.asked)
}

func TestCashCheckoutSuccess(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.service.SetComment("  без сахара  ")

	f.service.Checkout(context.Background())

	// Confirmation and request payload
	require.Equal(t, []string{ConfirmCash}, f.confirm.asked)
	require.NotNil(t, f.orders.req)
	assert.Equal(t, OrderTypeTogo, f.orders.req.Type)
	require.NotNil(t, f.orders.req.PaidValue)
	assert.Equal(t, 0.0, *f.orders.req.PaidValue)
	assert.Equal(t, "без сахара", f.orders.req.Comment)
	assert.Equal(t, "Иван", f.orders.req.Client.Name)
	assert.Equal(t, int64(42), f.orders.req.TelegramUserID)
	require.Len(t, f.orders.req.Items, 2)

	// History entry
	saved := f.journal.Orders()
	require.Len(t, saved, 1)
	assert.Equal(t, "pos-guid-1", saved[0].ID)
	assert.Equal(t, 300.0, saved[0].Total)
	assert.Equal(t, "15.03.2024, 12:30:00", saved[0].Date)
	assert.Len(t, saved[0].Items, 2)

	// Bridge payload and reset
	require.Len(t, f.bridge.payloads, 1)
	created, ok := f.bridge.payloads[0].(OrderCreated)
	require.True(t, ok)
	assert.Equal(t, ActionOrderCreated, created.Action)
	assert.Equal(t, "pos-guid-1", created.OrderID)
	assert.Equal(t, 300.0, created.Total)
	assert.False(t, created.Paid)

	assert.Equal(t, 0, f.session.Cart().Len())
	assert.Contains(t, f.notifier.last(), "pos-guid-1")
	assert.Contains(t, f.notifier.last(), "300.00")
}

func TestCashCheckoutDeclinedIsNoop(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.confirm.answer = false
	before := len(f.notifier.messages)

	f.service.Checkout(context.Background())

	assert.Nil(t, f.orders.req)
	assert.Equal(t, 2, f.session.Cart().Len())
	assert.Len(t, f.notifier.messages, before)
}

func TestCashCheckoutNetworkFailureLeavesStateIntact(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.orders.result = nil
	f.orders.err = errors.New("connection refused")

	f.service.Checkout(context.Background())

	assert.Equal(t, "Ошибка: "+FallbackNetwork, f.notifier.last())
	assert.Equal(t, 2, f.session.Cart().Len())
	assert.Empty(t, f.journal.Orders())
	assert.Empty(t, f.bridge.payloads)
}

func TestCashCheckoutAPIFailureShowsServerError(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.orders.result = &OrderResult{Success: false, Error: "Касса закрыта"}

	f.service.Checkout(context.Background())

	assert.Equal(t, "Ошибка: Касса закрыта", f.notifier.last())
	assert.Equal(t, 2, f.session.Cart().Len())
	assert.Empty(t, f.journal.Orders())
}

func TestCashCheckoutMissingOrderIDUsesFallbackMessage(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.orders.result = &OrderResult{Success: true}

	f.service.Checkout(context.Background())

	assert.Equal(t, "Ошибка: "+FallbackUnknownError, f.notifier.last())
	assert.Equal(t, 2, f.session.Cart().Len())
}

func TestOnlineCheckoutSuccess(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.service.SetPaymentMethod(PaymentOnline)

	f.service.Checkout(context.Background())

	require.Equal(t, []string{ConfirmOnline}, f.confirm.asked)
	require.NotNil(t, f.payments.req)
	assert.Empty(t, f.payments.req.Type)
	assert.Nil(t, f.payments.req.PaidValue)

	require.Len(t, f.bridge.payloads, 1)
	requested, ok := f.bridge.payloads[0].(PaymentRequested)
	require.True(t, ok)
	assert.Equal(t, ActionRequestPayment, requested.Action)
	assert.Equal(t, "tok-1", requested.PaymentToken)

	// No history entry until the bot confirms the payment.
	assert.Empty(t, f.journal.Orders())
	assert.Equal(t, 0, f.session.Cart().Len())
	assert.Equal(t, NoticePaymentWindowSent, f.notifier.last())
}

func TestOnlineCheckoutMissingTokenShowsFallback(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.service.SetPaymentMethod(PaymentOnline)
	f.payments.result = &PaymentResult{Success: true}

	f.service.Checkout(context.Background())

	assert.Equal(t, "Ошибка: "+FallbackPaymentPrepare, f.notifier.last())
	assert.Equal(t, 2, f.session.Cart().Len())
	assert.Empty(t, f.bridge.payloads)
}

func TestOnlineCheckoutNetworkFailure(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.service.SetPaymentMethod(PaymentOnline)
	f.payments.result = nil
	f.payments.err = errors.New("timeout")

	f.service.Checkout(context.Background())

	assert.Equal(t, "Ошибка: "+FallbackNetwork, f.notifier.last())
	assert.Equal(t, 2, f.session.Cart().Len())
}

func TestCheckoutBusyGuardRejectsReentry(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.confirm.answer = false
	f.confirm.hook = func() {
		// A second tap while the confirmation dialog is open.
		f.service.Checkout(context.Background())
	}

	f.service.Checkout(context.Background())

	assert.Equal(t, NoticeCheckoutBusy, f.notifier.last())
	require.Len(t, f.confirm.asked, 1)
}

func TestCheckoutIdentityFallback(t *testing.T) {
	f := newFixture()
	f.fillCart()
	f.service.c.Identity = &fakeIdentity{user: nil}

	f.service.Checkout(context.Background())

	require.NotNil(t, f.orders.req)
	assert.Equal(t, "Пользователь", f.orders.req.Client.Name)
	assert.Zero(t, f.orders.req.TelegramUserID)
}

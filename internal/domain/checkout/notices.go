// internal/domain/checkout/notices.go
package checkout

// User-facing checkout texts.
const (
	ConfirmOnline = "Оформить заказ с оплатой онлайн?"
	ConfirmCash   = "Оформить заказ?"

	NoticeEmptyCart    = "Корзина пуста"
	NoticeCheckoutBusy = "Заказ уже оформляется, подождите"

	NoticePaymentWindowSent = "💳 В чат с ботом отправлено окно оплаты. Оплатите заказ там — после оплаты заказ оформится автоматически."

	// Fallbacks used when the server supplies no error text.
	FallbackPaymentPrepare = "Не удалось подготовить платёж"
	FallbackUnknownError   = "Неизвестная ошибка"
	FallbackNetwork        = "Сеть"

	noticeErrorPrefix = "Ошибка: "
	// Order id and formatted total.
	noticeOrderCreatedFormat = "✅ Заказ #%s успешно сформирован!\n💰 Сумма: %.2f ₽"
)

// internal/domain/session/notices.go
package session

// User-facing notices. The storefront speaks Russian to its customers.
const (
	NoticeAddedToCart = "Добавлено в корзину"
	NoticeChooseSize  = "Выберите размер"
)

// Notifier shows a transient notice to the user. Fire-and-forget: no
// acknowledgment is tracked.
type Notifier interface {
	Notify(message string)
}

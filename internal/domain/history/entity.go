// internal/domain/history/entity.go
package history

import "github.com/your-org/coffee-miniapp/internal/domain/session"

// SavedOrder is one completed order as shown on the profile screen. Created
// only on successful order submission, never mutated afterwards. Items is a
// frozen snapshot of the cart at order time.
type SavedOrder struct {
	ID    string             `json:"id"`
	Date  string             `json:"date"`
	Total float64            `json:"total"`
	Items []session.LineItem `json:"items"`
}

// Store persists the order history. Both directions are best effort: Load
// returns an empty history on any failure and Save swallows its errors.
// History persistence is a convenience, never a correctness requirement.
type Store interface {
	Load() []SavedOrder
	Save(orders []SavedOrder)
}

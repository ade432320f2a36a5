// internal/domain/session/selection.go
package session

import "github.com/your-org/coffee-miniapp/internal/domain/catalog"

// Selection is the in-progress configuration of a single item: the item being
// configured, the chosen variant, the quantity and the toggled add-ons. It is
// created when the user opens an item and reset when a line item is finalized
// or the configuration is abandoned.
type Selection struct {
	Item     *catalog.MenuItem
	Variant  *catalog.Variant
	Quantity int
	AddOns   map[string]bool
}

// Begin starts configuring an item with quantity 1 and no add-ons.
func (s *Selection) Begin(item catalog.MenuItem) {
	s.Item = &item
	s.Variant = nil
	s.Quantity = 1
	s.AddOns = make(map[string]bool)
}

// Reset discards the in-progress configuration.
func (s *Selection) Reset() {
	s.Item = nil
	s.Variant = nil
	s.Quantity = 1
	s.AddOns = nil
}

// AdjustQuantity applies a delta to the quantity. The quantity never drops
// below 1; there is no upper bound.
func (s *Selection) AdjustQuantity(delta int) {
	s.Quantity += delta
	if s.Quantity < 1 {
		s.Quantity = 1
	}
}

// Toggle flips the selected state of an add-on option.
func (s *Selection) Toggle(optionGUID string) {
	if s.AddOns == nil {
		s.AddOns = make(map[string]bool)
	}
	s.AddOns[optionGUID] = !s.AddOns[optionGUID]
}

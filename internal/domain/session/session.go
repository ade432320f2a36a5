// internal/domain/session/session.go
package session

import (
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
)

// Session owns the state of one storefront visit: the current screen, the
// back-navigation history, the in-progress item configuration and the cart.
// All transitions run on a single goroutine in response to discrete user
// actions; the session does no locking of its own.
type Session struct {
	addOns []catalog.AddOnCategory
	notify Notifier
	log    *logrus.Logger

	screen    Screen
	history   History
	selection Selection
	cart      Cart
	cartOpen  bool
}

// New creates a session resting on the menu screen. The add-on catalog is
// loaded once at session start and used to resolve item add-on categories.
func New(addOns []catalog.AddOnCategory, notify Notifier, log *logrus.Logger) *Session {
	return &Session{
		addOns: addOns,
		notify: notify,
		log:    log,
		screen: MenuScreen{},
	}
}

// Screen returns the screen the session is currently showing.
func (s *Session) Screen() Screen {
	return s.screen
}

// Cart returns the session's cart ledger.
func (s *Session) Cart() *Cart {
	return &s.cart
}

// Selection returns the in-progress item configuration.
func (s *Session) Selection() *Selection {
	return &s.selection
}

// HistoryLen returns the depth of the back-navigation stack.
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// GoTo switches to the given screen, pushing the current one onto the history
// stack unless the target is the screen already shown.
func (s *Session) GoTo(next Screen) {
	if next.Kind() != s.screen.Kind() {
		s.history.Push(s.screen)
	}
	s.screen = next
}

// GoBack pops the most recent history entry and switches to it. On an empty
// stack it resets to the menu screen; that is floor behavior, not an error.
// Landing back on the menu abandons the in-progress configuration.
func (s *Session) GoBack() {
	prev, ok := s.history.Pop()
	if !ok {
		s.screen = MenuScreen{}
	} else {
		s.screen = prev
	}
	if s.screen.Kind() == KindMenu {
		s.selection.Reset()
	}
}

// ShowProfile navigates to the profile screen.
func (s *Session) ShowProfile() {
	s.GoTo(ProfileScreen{})
}

// SelectItem opens an item from the menu and decides which screens the item
// must pass through before it can reach the cart:
//
//   - one variant or fewer and no add-ons: added to the cart immediately,
//     quantity 1, without leaving the menu;
//   - one variant or fewer with add-ons: straight to the add-on screen with
//     the variant pre-chosen;
//   - several variants: to the size screen with the first variant as default.
func (s *Session) SelectItem(item catalog.MenuItem) {
	s.selection.Begin(item)

	variants := catalog.Variants(item)
	hasSizes := len(variants) > 1
	hasAddOns := item.HasAddOns()

	if !hasSizes && !hasAddOns {
		s.addSimple(item, variants)
		return
	}

	if len(variants) > 0 {
		s.selection.Variant = &variants[0]
	}

	if !hasSizes {
		s.GoTo(AddOnScreen{Item: item, Variant: s.selection.Variant})
		return
	}
	s.GoTo(SizeScreen{Item: item})
}

// addSimple finalizes an item that needs no configuration at all.
func (s *Session) addSimple(item catalog.MenuItem, variants []catalog.Variant) {
	if len(variants) == 0 {
		// Degenerate item: no variants and no price. Nothing to sell.
		return
	}
	variant := variants[0]

	s.cart.Append(LineItem{
		MenuItemGUID: item.GUID,
		VariantGUID:  variant.GUID,
		AddOns:       map[string]int{},
		UnitPrice:    variant.Price,
		Quantity:     1,
		Name:         item.Name,
		VariantName:  variant.Name,
	})
	s.selection.Reset()
	s.notify.Notify(NoticeAddedToCart)
}

// ChooseVariant records the variant picked on the size screen.
func (s *Session) ChooseVariant(v catalog.Variant) {
	s.selection.Variant = &v
}

// AdjustQuantity applies a delta to the selection quantity (floor 1).
func (s *Session) AdjustQuantity(delta int) {
	s.selection.AdjustQuantity(delta)
}

// ToggleAddOn flips an add-on option on the add-on screen.
func (s *Session) ToggleAddOn(optionGUID string) {
	s.selection.Toggle(optionGUID)
}

// AdvanceToAddOns moves from the size screen to the add-on screen. Refused
// with a notice when no variant has been chosen.
func (s *Session) AdvanceToAddOns() {
	if s.selection.Item == nil {
		return
	}
	if s.selection.Variant == nil {
		s.notify.Notify(NoticeChooseSize)
		return
	}
	s.GoTo(AddOnScreen{Item: *s.selection.Item, Variant: s.selection.Variant})
}

// AddFromSize finalizes the selection from the size screen without add-ons.
// Requires both an item and a chosen variant; otherwise a no-op.
func (s *Session) AddFromSize() {
	if s.selection.Item == nil || s.selection.Variant == nil {
		return
	}
	item := *s.selection.Item
	variant := *s.selection.Variant

	s.cart.Append(LineItem{
		MenuItemGUID: item.GUID,
		VariantGUID:  variant.GUID,
		AddOns:       map[string]int{},
		UnitPrice:    variant.Price,
		Quantity:     s.selection.Quantity,
		Name:         item.Name,
		VariantName:  variant.Name,
	})
	s.finishConfiguration()
}

// AddFromAddOns finalizes the selection from the add-on screen. The unit
// price is the variant price plus the price of every selected add-on option.
func (s *Session) AddFromAddOns() {
	if s.selection.Item == nil {
		return
	}
	item := *s.selection.Item

	variant := s.selection.Variant
	if variant == nil {
		variants := catalog.Variants(item)
		if len(variants) == 0 {
			return
		}
		variant = &variants[0]
	}

	addOns := map[string]int{}
	unitPrice := variant.Price
	for _, category := range s.AddOnCategoriesForCurrentItem() {
		for _, option := range category.ItemList {
			if s.selection.AddOns[option.GUID] {
				addOns[option.GUID] = 1
				unitPrice += option.DefaultPrice
			}
		}
	}

	s.cart.Append(LineItem{
		MenuItemGUID: item.GUID,
		VariantGUID:  variant.GUID,
		AddOns:       addOns,
		UnitPrice:    unitPrice,
		Quantity:     s.selection.Quantity,
		Name:         item.Name,
		VariantName:  variant.Name,
	})
	s.finishConfiguration()
}

// finishConfiguration resets the selection and brings the session back to a
// fresh menu screen after a line item lands in the cart.
func (s *Session) finishConfiguration() {
	s.history.Clear()
	s.screen = MenuScreen{}
	s.selection.Reset()
	s.notify.Notify(NoticeAddedToCart)
}

// AddOnCategoriesForCurrentItem filters the full add-on catalog down to the
// categories the current item references. A derived view, recomputed on
// demand and never cached.
func (s *Session) AddOnCategoriesForCurrentItem() []catalog.AddOnCategory {
	if s.selection.Item == nil || !s.selection.Item.HasAddOns() {
		return nil
	}
	var out []catalog.AddOnCategory
	for _, category := range s.addOns {
		if _, ok := s.selection.Item.AddOnFreeCounts[category.GUID]; ok {
			out = append(out, category)
		}
	}
	return out
}

// OpenCart marks the cart view as shown.
func (s *Session) OpenCart() {
	s.cartOpen = true
}

// CloseCart marks the cart view as hidden.
func (s *Session) CloseCart() {
	s.cartOpen = false
}

// CartOpen reports whether the cart view is shown.
func (s *Session) CartOpen() bool {
	return s.cartOpen
}

// ResetAfterCheckout clears the cart, closes the cart view and brings the
// session back to a fresh menu screen. Called only after a successful
// checkout.
func (s *Session) ResetAfterCheckout() {
	s.cart.Clear()
	s.cartOpen = false
	s.history.Clear()
	s.screen = MenuScreen{}
}

// internal/domain/session/screen.go
package session

import "github.com/your-org/coffee-miniapp/internal/domain/catalog"

// ScreenKind identifies a screen for navigation comparisons.
type ScreenKind string

const (
	KindMenu    ScreenKind = "menu"
	KindSize    ScreenKind = "size"
	KindAddOns  ScreenKind = "supplements"
	KindProfile ScreenKind = "profile"
)

// Screen is the tagged union of storefront views. Screens that need context
// to render carry it with them, so a size screen without an item cannot be
// represented.
type Screen interface {
	Kind() ScreenKind
}

// MenuScreen shows the menu. Initial screen of every session.
type MenuScreen struct{}

// Kind implements Screen
func (MenuScreen) Kind() ScreenKind { return KindMenu }

// SizeScreen lets the user pick one of several variants of an item.
type SizeScreen struct {
	Item catalog.MenuItem
}

// Kind implements Screen
func (SizeScreen) Kind() ScreenKind { return KindSize }

// AddOnScreen lets the user toggle add-ons for an item. Variant is the
// pre-selected variant and may be nil for degenerate items.
type AddOnScreen struct {
	Item    catalog.MenuItem
	Variant *catalog.Variant
}

// Kind implements Screen
func (AddOnScreen) Kind() ScreenKind { return KindAddOns }

// ProfileScreen shows the user profile and order history.
type ProfileScreen struct{}

// Kind implements Screen
func (ProfileScreen) Kind() ScreenKind { return KindProfile }

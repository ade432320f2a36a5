// internal/domain/catalog/entity.go
package catalog

// Variant is one purchasable size/type of a menu item.
// Immutable once produced by normalization.
type Variant struct {
	GUID  string  `json:"guid"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuItem is a single position of the menu as the POS reports it.
// An item either carries an explicit variant list (TypeList, or the legacy
// RecipeTypeList), or a flat price, or nothing at all (not purchasable).
type MenuItem struct {
	GUID           string    `json:"guid"`
	Name           string    `json:"name"`
	Price          *float64  `json:"price,omitempty"`
	TypeList       []Variant `json:"typeList,omitempty"`
	RecipeTypeList []Variant `json:"recipeTypeList,omitempty"`

	// AddOnFreeCounts maps add-on category guid to the number of free
	// add-ons. A non-empty map means the item offers add-ons at all;
	// the counts themselves are informational.
	AddOnFreeCounts map[string]int `json:"supplementCategoryToFreeCount,omitempty"`
}

// HasAddOns reports whether the item offers any add-on categories.
func (m MenuItem) HasAddOns() bool {
	return len(m.AddOnFreeCounts) > 0
}

// MenuGroup is one group of the POS menu. The storefront serves a single
// group dedicated to online orders.
type MenuGroup struct {
	GUID     string     `json:"guid"`
	Name     string     `json:"name"`
	ItemList []MenuItem `json:"itemList,omitempty"`
}

// AddOnOption is an optional extra a user may toggle onto an item.
type AddOnOption struct {
	GUID         string  `json:"guid"`
	Name         string  `json:"name"`
	DefaultPrice float64 `json:"defaultPrice,omitempty"`
}

// AddOnCategory groups add-on options (syrups, milk types and so on).
type AddOnCategory struct {
	GUID     string        `json:"guid"`
	Name     string        `json:"name"`
	ItemList []AddOnOption `json:"itemList,omitempty"`
}

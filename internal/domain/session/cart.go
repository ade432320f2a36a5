// internal/domain/session/cart.go
package session

// LineItem is one finalized, priced cart entry. Item and variant are
// referenced by copied guids, and the display fields are denormalized at add
// time, so later menu reloads cannot retroactively change cart contents.
type LineItem struct {
	MenuItemGUID string         `json:"menuItemGuid"`
	VariantGUID  string         `json:"menuTypeGuid"`
	AddOns       map[string]int `json:"supplementList"`
	UnitPrice    float64        `json:"priceWithDiscount"`
	Quantity     int            `json:"quantity"`
	Name         string         `json:"name"`
	VariantName  string         `json:"typeName"`
}

// Cart is the ordered purchase log. Insertion order is display order, and
// identical additions are deliberately kept as separate entries.
type Cart struct {
	items []LineItem
}

// Append adds a line item to the end of the cart.
func (c *Cart) Append(item LineItem) {
	c.items = append(c.items, item)
}

// RemoveAt removes exactly one entry at the given position.
// Out-of-range indices are a no-op.
func (c *Cart) RemoveAt(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
}

// Items returns a copy of the cart entries in display order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cart entries.
func (c *Cart) Len() int {
	return len(c.items)
}

// Count returns the total quantity across all entries.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Total returns the cart total: sum of unit price times quantity.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Clear removes every entry.
func (c *Cart) Clear() {
	c.items = nil
}

// internal/domain/catalog/normalizer.go
package catalog

// Variants normalizes a menu item into its ordered list of purchasable
// variants. The fallback order is fixed: the explicit variant list wins over
// the legacy recipe list, which wins over a flat price. A flat price yields a
// single synthetic variant whose guid is the item's own guid and whose name is
// empty. An item with none of those is not purchasable and yields nothing.
func Variants(item MenuItem) []Variant {
	if len(item.TypeList) > 0 {
		return item.TypeList
	}
	if len(item.RecipeTypeList) > 0 {
		return item.RecipeTypeList
	}
	if item.Price != nil {
		return []Variant{{GUID: item.GUID, Name: "", Price: *item.Price}}
	}
	return nil
}

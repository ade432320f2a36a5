// internal/domain/session/session_test.go
package session

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
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

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

var addOnCatalog = []catalog.AddOnCategory{
	{
		GUID: "cat-syrups",
		Name: "Сиропы",
		ItemList: []catalog.AddOnOption{
			{GUID: "opt-vanilla", Name: "Ваниль", DefaultPrice: 30},
			{GUID: "opt-caramel", Name: "Карамель", DefaultPrice: 40},
		},
	},
	{
		GUID: "cat-milk",
		Name: "Молоко",
		ItemList: []catalog.AddOnOption{
			{GUID: "opt-oat", Name: "Овсяное", DefaultPrice: 50},
		},
	},
}

func simpleItem() catalog.MenuItem {
	price := 120.0
	return catalog.MenuItem{GUID: "croissant", Name: "Круассан", Price: &price}
}

func sizedItem() catalog.MenuItem {
	return catalog.MenuItem{
		GUID: "cappuccino",
		Name: "Капучино",
		TypeList: []catalog.Variant{
			{GUID: "small", Name: "0.2", Price: 150},
			{GUID: "large", Name: "0.4", Price: 200},
		},
		AddOnFreeCounts: map[string]int{"cat-syrups": 0},
	}
}

func singleVariantWithAddOns() catalog.MenuItem {
	return catalog.MenuItem{
		GUID: "espresso",
		Name: "Эспрессо",
		TypeList: []catalog.Variant{
			{GUID: "solo", Name: "Соло", Price: 100},
		},
		AddOnFreeCounts: map[string]int{"cat-syrups": 0, "cat-milk": 0},
	}
}

func newTestSession() (*Session, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return New(addOnCatalog, notifier, quietLogger()), notifier
}

func TestNewSessionStartsOnMenu(t *testing.T) {
	s, _ := newTestSession()
	assert.Equal(t, KindMenu, s.Screen().Kind())
	assert.Equal(t, 0, s.HistoryLen())
}

func TestSelectSimpleItemAddsImmediately(t *testing.T) {
	s, notifier := newTestSession()

	s.SelectItem(simpleItem())

	assert.Equal(t, KindMenu, s.Screen().Kind())
	require.Equal(t, 1, s.Cart().Len())
	line := s.Cart().Items()[0]
	assert.Equal(t, "croissant", line.MenuItemGUID)
	assert.Equal(t, 120.0, line.UnitPrice)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, NoticeAddedToCart, notifier.last())
	assert.Nil(t, s.Selection().Item)
}

func TestSelectDegenerateItemDoesNothing(t *testing.T) {
	s, notifier := newTestSession()

	s.SelectItem(catalog.MenuItem{GUID: "ghost", Name: "Без цены"})

	assert.Equal(t, 0, s.Cart().Len())
	assert.Empty(t, notifier.messages)
	assert.Equal(t, KindMenu, s.Screen().Kind())
}

func TestSelectSizedItemOpensSizeScreen(t *testing.T) {
	s, _ := newTestSession()

	s.SelectItem(sizedItem())

	assert.Equal(t, KindSize, s.Screen().Kind())
	assert.Equal(t, 1, s.HistoryLen())
	require.NotNil(t, s.Selection().Variant)
	assert.Equal(t, "small", s.Selection().Variant.GUID)
	assert.Equal(t, 1, s.Selection().Quantity)
}

func TestSelectSingleVariantWithAddOnsSkipsSizeScreen(t *testing.T) {
	s, _ := newTestSession()

	s.SelectItem(singleVariantWithAddOns())

	assert.Equal(t, KindAddOns, s.Screen().Kind())
	require.NotNil(t, s.Selection().Variant)
	assert.Equal(t, "solo", s.Selection().Variant.GUID)
}

func TestGoToSameKindDoesNotPush(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())
	depth := s.HistoryLen()

	s.GoTo(SizeScreen{Item: sizedItem()})

	assert.Equal(t, depth, s.HistoryLen())
}

func TestGoBackFloorsToMenu(t *testing.T) {
	s, _ := newTestSession()

	s.GoBack()

	assert.Equal(t, KindMenu, s.Screen().Kind())
	assert.Equal(t, 0, s.HistoryLen())
}

func TestGoBackFromSizeAbandonsSelection(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())
	require.NotNil(t, s.Selection().Item)

	s.GoBack()

	assert.Equal(t, KindMenu, s.Screen().Kind())
	assert.Nil(t, s.Selection().Item)
}

func TestAdjustQuantityFloorsAtOne(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())

	s.AdjustQuantity(3)
	assert.Equal(t, 4, s.Selection().Quantity)

	s.AdjustQuantity(-10)
	assert.Equal(t, 1, s.Selection().Quantity)
}

func TestAdvanceToAddOnsRequiresVariant(t *testing.T) {
	s, notifier := newTestSession()
	s.SelectItem(sizedItem())
	s.Selection().Variant = nil

	s.AdvanceToAddOns()

	assert.Equal(t, KindSize, s.Screen().Kind())
	assert.Equal(t, NoticeChooseSize, notifier.last())
}

func TestAdvanceToAddOnsPushesScreen(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())
	s.ChooseVariant(catalog.Variant{GUID: "large", Name: "0.4", Price: 200})

	s.AdvanceToAddOns()

	assert.Equal(t, KindAddOns, s.Screen().Kind())
	assert.Equal(t, 2, s.HistoryLen())
}

func TestAddFromSizeFinalizesLine(t *testing.T) {
	s, notifier := newTestSession()
	s.SelectItem(sizedItem())
	s.ChooseVariant(catalog.Variant{GUID: "large", Name: "0.4", Price: 200})
	s.AdjustQuantity(1)

	s.AddFromSize()

	require.Equal(t, 1, s.Cart().Len())
	line := s.Cart().Items()[0]
	assert.Equal(t, "large", line.VariantGUID)
	assert.Equal(t, 200.0, line.UnitPrice)
	assert.Equal(t, 2, line.Quantity)
	assert.Empty(t, line.AddOns)

	assert.Equal(t, KindMenu, s.Screen().Kind())
	assert.Equal(t, 0, s.HistoryLen())
	assert.Nil(t, s.Selection().Item)
	assert.Equal(t, NoticeAddedToCart, notifier.last())
}

func TestAddFromAddOnsPricesSelectedOptions(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())
	s.ChooseVariant(catalog.Variant{GUID: "large", Name: "0.4", Price: 200})
	s.AdvanceToAddOns()

	s.ToggleAddOn("opt-vanilla")
	s.AddFromAddOns()

	require.Equal(t, 1, s.Cart().Len())
	line := s.Cart().Items()[0]
	assert.Equal(t, 230.0, line.UnitPrice)
	assert.Equal(t, map[string]int{"opt-vanilla": 1}, line.AddOns)
	assert.Equal(t, KindMenu, s.Screen().Kind())
}

func TestToggleAddOnTwiceDeselects(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(singleVariantWithAddOns())

	s.ToggleAddOn("opt-oat")
	s.ToggleAddOn("opt-oat")
	s.AddFromAddOns()

	require.Equal(t, 1, s.Cart().Len())
	assert.Equal(t, 100.0, s.Cart().Items()[0].UnitPrice)
	assert.Empty(t, s.Cart().Items()[0].AddOns)
}

func TestAddOnCategoriesForCurrentItemFilters(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())

	categories := s.AddOnCategoriesForCurrentItem()

	require.Len(t, categories, 1)
	assert.Equal(t, "cat-syrups", categories[0].GUID)
}

func TestAddOnCategoriesIgnoredForOtherItemsOptions(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(sizedItem())
	s.ChooseVariant(catalog.Variant{GUID: "small", Name: "0.2", Price: 150})
	s.AdvanceToAddOns()

	// opt-oat belongs to cat-milk, which this item does not reference.
	s.ToggleAddOn("opt-oat")
	s.AddFromAddOns()

	require.Equal(t, 1, s.Cart().Len())
	assert.Equal(t, 150.0, s.Cart().Items()[0].UnitPrice)
	assert.Empty(t, s.Cart().Items()[0].AddOns)
}

func TestProfileNavigationRoundTrip(t *testing.T) {
	s, _ := newTestSession()

	s.ShowProfile()
	assert.Equal(t, KindProfile, s.Screen().Kind())
	assert.Equal(t, 1, s.HistoryLen())

	s.GoBack()
	assert.Equal(t, KindMenu, s.Screen().Kind())
}

func TestCartOpenClose(t *testing.T) {
	s, _ := newTestSession()

	s.OpenCart()
	assert.True(t, s.CartOpen())

	s.CloseCart()
	assert.False(t, s.CartOpen())
}

func TestResetAfterCheckout(t *testing.T) {
	s, _ := newTestSession()
	s.SelectItem(simpleItem())
	s.OpenCart()
	s.ShowProfile()

	s.ResetAfterCheckout()

	assert.Equal(t, 0, s.Cart().Len())
	assert.False(t, s.CartOpen())
	assert.Equal(t, KindMenu, s.Screen().Kind())
	assert.Equal(t, 0, s.HistoryLen())
}

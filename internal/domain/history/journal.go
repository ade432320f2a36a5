// internal/domain/history/journal.go
package history

// Journal keeps the completed orders of one user in memory, most recent
// first, mirroring the full list to the store on every append. The store is
// read once at startup and rewritten whole on each change: last writer wins,
// single-session assumption.
type Journal struct {
	store  Store
	orders []SavedOrder
}

// NewJournal loads the persisted history and wraps it in a journal.
func NewJournal(store Store) *Journal {
	return &Journal{
		store:  store,
		orders: store.Load(),
	}
}

// Orders returns the saved orders, most recent first.
func (j *Journal) Orders() []SavedOrder {
	out := make([]SavedOrder, len(j.orders))
	copy(out, j.orders)
	return out
}

// Record prepends a completed order and persists the updated history.
func (j *Journal) Record(order SavedOrder) {
	j.orders = append([]SavedOrder{order}, j.orders...)
	j.store.Save(j.orders)
}

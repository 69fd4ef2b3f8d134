// Package cart holds the in-session cart store. One Store per signed-in
// user; mutations are serialized so the unique-product-id invariant holds
// even when handlers run on parallel goroutines.
package cart

import (
	"sync"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

type Store struct {
	mu    sync.Mutex
	items []domain.LineItem
}

func NewStore() *Store {
	return &Store{}
}

// Add puts a new line item in the cart, or bumps quantity by 1 if the
// product is already present. First-seen attributes win.
func (s *Store) Add(item domain.LineItem) {
	s.apply(domain.AddItem{Item: item})
}

// Remove deletes the line item; absent ids are a no-op.
func (s *Store) Remove(productID string) {
	s.apply(domain.RemoveItem{ProductID: productID})
}

// AdjustQuantity moves quantity by delta, floored at 1. Dropping an item
// entirely goes through Remove.
func (s *Store) AdjustQuantity(productID string, delta int) {
	s.apply(domain.AdjustQuantity{ProductID: productID, Delta: delta})
}

func (s *Store) Clear() {
	s.apply(domain.ClearCart{})
}

func (s *Store) apply(act domain.CartAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = domain.Reduce(s.items, act)
}

// Snapshot returns an immutable copy of the current items, in first-add
// order. Checkout works off a snapshot so later cart mutations cannot
// touch an order in flight.
func (s *Store) Snapshot() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

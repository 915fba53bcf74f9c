package cart

import (
	"sync"
	"time"

	"neonpet/models"
)

// Store holds one user's cart in memory. Items keep insertion order; all
// aggregates are recomputed from the items on every read. Every mutation
// notifies the registered subscribers so reactive consumers (badge, drawer,
// websocket hub) can pull fresh state.
type Store struct {
	mu          sync.Mutex
	items       []models.CartItem
	subscribers []func()
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a callback invoked after every mutation. Callbacks run
// synchronously, after the store lock is released.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) index(productID string) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem inserts a new line with quantity 1, or increments the quantity of
// an existing line. The price/discount snapshot of the first add wins; a
// later add never overwrites it.
func (s *Store) AddItem(item models.CartItem) {
	s.mu.Lock()
	if i := s.index(item.ProductID); i >= 0 {
		s.items[i].Quantity++
	} else {
		item.Quantity = 1
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now()
		}
		s.items = append(s.items, item)
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// Unknown ids are a no-op, not an error.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	if quantity <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = quantity
	}
	s.mu.Unlock()
	s.notify()
}

// RemoveItem deletes a line if present; removing an absent id is a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()
	s.notify()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the pre-discount total: sum of original price times quantity.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0.0
	for _, it := range s.items {
		sum += it.OriginalPrice * float64(it.Quantity)
	}
	return sum
}

// TotalDiscount is the amount saved: sum of (original - charged) per unit.
func (s *Store) TotalDiscount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0.0
	for _, it := range s.items {
		sum += (it.OriginalPrice - it.Price) * float64(it.Quantity)
	}
	return sum
}

// Total is the amount actually charged: sum of charged price times quantity.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0.0
	for _, it := range s.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Summary snapshots items and aggregates atomically: everything is read
// under one lock acquisition so a concurrent mutation from another tab can
// never produce a summary whose aggregates disagree with its items.
func (s *Store) Summary() models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)

	summary := models.CartSummary{Items: items}
	for _, it := range s.items {
		summary.TotalItems += it.Quantity
		summary.Subtotal += it.OriginalPrice * float64(it.Quantity)
		summary.TotalDiscount += (it.OriginalPrice - it.Price) * float64(it.Quantity)
		summary.Total += it.Price * float64(it.Quantity)
	}
	return summary
}

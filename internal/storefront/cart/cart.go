// Package cart is the client's in-memory shopping cart. It is volatile by
// design: nothing here survives a restart.
package cart

import (
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
)

// Item is a product snapshot taken when it was first added, plus a quantity
// that never drops below 1.
type Item struct {
	Product  models.Product
	Quantity int
}

func (i Item) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

type Store struct {
	mu       sync.Mutex
	items    []Item
	notifier notify.Notifier
	language string
}

// NewStore names products in notifications using language ("en" or "bn").
func NewStore(notifier notify.Notifier, language string) *Store {
	return &Store{notifier: notifier, language: language}
}

// Add increments the quantity of an existing line or appends a new one.
func (s *Store) Add(product models.Product) {
	s.mu.Lock()
	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, Item{Product: product, Quantity: 1})
	}
	s.mu.Unlock()

	s.notifier.Notify(notify.Info("Cart", product.Name(s.language)+" added to cart!"))
}

func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(item Item) bool {
		return item.Product.ID == productID
	})
}

// UpdateQuantity sets an exact quantity. Values below 1 are ignored; use
// Remove to drop a line.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.items[i].Quantity = quantity
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

// Items returns a copy in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items) == 0
}

// caller holds mu
func (s *Store) indexOf(productID int64) int {
	return slices.IndexFunc(s.items, func(item Item) bool {
		return item.Product.ID == productID
	})
}

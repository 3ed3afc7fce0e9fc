package services

import (
	"sync"

	"qr-dine/models"

	"github.com/shopspring/decimal"
)

// CartEntry snapshots the item name and price at add-time, so a later catalog
// edit does not change what the customer agreed to pay.
type CartEntry struct {
	ItemID          string          `json:"itemId"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
}

// Cart is one customer's in-progress selection. It lives in memory for the
// duration of the session and is never persisted.
type Cart struct {
	Entries []CartEntry
}

// Add puts one unit of the item in the cart, merging with an existing entry.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.Entries {
		if c.Entries[i].ItemID == item.ID {
			c.Entries[i].Quantity++
			return
		}
	}
	c.Entries = append(c.Entries, CartEntry{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// Remove takes one unit of the item out of the cart. An entry that reaches
// zero is dropped, never kept. Unknown ids are a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.Entries {
		if c.Entries[i].ItemID != itemID {
			continue
		}
		if c.Entries[i].Quantity > 1 {
			c.Entries[i].Quantity--
		} else {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
		}
		return
	}
}

// SetSpecialRequest attaches a free-text note to an entry. No-op if absent.
func (c *Cart) SetSpecialRequest(itemID, note string) {
	for i := range c.Entries {
		if c.Entries[i].ItemID == itemID {
			c.Entries[i].SpecialRequests = note
			return
		}
	}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

func (c *Cart) Clear() {
	c.Entries = nil
}

// Snapshot copies the entries into order items, detaching them from the cart.
func (c *Cart) Snapshot() []models.OrderItem {
	items := make([]models.OrderItem, len(c.Entries))
	for i, e := range c.Entries {
		items[i] = models.OrderItem{
			ItemID:          e.ItemID,
			Name:            e.Name,
			Price:           e.Price,
			Quantity:        e.Quantity,
			SpecialRequests: e.SpecialRequests,
		}
	}
	return items
}

// CartStore keeps one cart per session. Each cart is owned by exactly one
// customer session; the lock only guards the session map and concurrent
// requests from the same session.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*Cart)}
}

func (s *CartStore) get(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	return c
}

func (s *CartStore) Add(sessionID string, item models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).Add(item)
}

func (s *CartStore) Remove(sessionID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).Remove(itemID)
}

func (s *CartStore) SetSpecialRequest(sessionID, itemID, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).SetSpecialRequest(itemID, note)
}

func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// View returns a copy of the session's entries and total for rendering.
func (s *CartStore) View(sessionID string) ([]CartEntry, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(sessionID)
	entries := make([]CartEntry, len(c.Entries))
	copy(entries, c.Entries)
	return entries, c.Total()
}

// Snapshot returns the order items and frozen total for placement.
func (s *CartStore) Snapshot(sessionID string) ([]models.OrderItem, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(sessionID)
	return c.Snapshot(), c.Total()
}

package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrHotelMismatch is returned when an item belongs to a different hotel than the cart.
	ErrHotelMismatch = errors.New("cart: item belongs to a different hotel")
	// ErrNoHotelInfo is returned when a checkout summary is requested for an empty cart.
	ErrNoHotelInfo = errors.New("cart: no hotel information available")
)

// Cart aggregates the line items selected during one browsing session.
// A cart is scoped to a single hotel; items keep their insertion order.
type Cart struct {
	mu         sync.RWMutex
	items      []LineItem
	escapeDate time.Time
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges item into the entry sharing its (id, date) key or appends it.
// Quantity and price accumulate; options, name and hotel take the incoming values.
func (c *Cart) AddItem(item LineItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 && c.items[0].Hotel.ID != item.Hotel.ID {
		return ErrHotelMismatch
	}
	c.addLocked(item)
	return nil
}

// ReplaceWith empties the cart and starts it over with item.
func (c *Cart) ReplaceWith(item LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.addLocked(item)
}

func (c *Cart) addLocked(item LineItem) {
	item = item.clone()
	key := item.key()
	for i, existing := range c.items {
		if existing.key() != key {
			continue
		}
		item.Quantity = existing.Quantity + item.Quantity
		item.Price = existing.Price.Add(item.Price)
		c.items[i] = item
		return
	}
	c.items = append(c.items, item)
}

// RemoveItem drops every entry for the product id, whatever its date.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = c.filterLocked(func(item LineItem) bool { return item.ID == id })
}

// RemoveLine drops the entries of id booked for date and reports whether one existed.
// An empty date targets the undated entries.
func (c *Cart) RemoveLine(id, date string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = c.filterLocked(func(item LineItem) bool { return item.ID == id && item.Date() == date })
	return len(c.items) != before
}

func (c *Cart) filterLocked(drop func(LineItem) bool) []LineItem {
	kept := c.items[:0]
	for _, item := range c.items {
		if drop(item) {
			continue
		}
		kept = append(kept, item)
	}
	// clear the tail so dropped entries are not retained by the backing array
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = LineItem{}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// IsInCart reports whether any entry carries the product id.
func (c *Cart) IsInCart(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// UpdateEscapeDate sets the session-wide date shown in the cart header.
func (c *Cart) UpdateEscapeDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.escapeDate = date
}

// EscapeDate returns the session-wide date.
func (c *Cart) EscapeDate() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.escapeDate
}

// Total sums the line prices. Prices are line amounts, so quantity is not applied again.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.totalLocked()
}

func (c *Cart) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price)
	}
	return total
}

// ItemCount sums quantities across entries.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.itemCountLocked()
}

func (c *Cart) itemCountLocked() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// HotelInfo returns the hotel of the first entry, or nil for an empty cart.
func (c *Cart) HotelInfo() *HotelInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.hotelLocked()
}

func (c *Cart) hotelLocked() *HotelInfo {
	if len(c.items) == 0 {
		return nil
	}
	hotel := c.items[0].Hotel
	return &hotel
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.itemsLocked()
}

func (c *Cart) itemsLocked() []LineItem {
	items := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item.clone())
	}
	return items
}

// Len returns the number of distinct entries.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Clear removes every entry. The escape date is kept.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
}

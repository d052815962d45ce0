package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutSummary is the read-only view handed to checkout and billing.
type CheckoutSummary struct {
	Hotel      HotelInfo
	Items      []LineItem
	Total      decimal.Decimal
	ItemCount  int
	EscapeDate time.Time
	CapturedAt time.Time
}

// Checkout captures a consistent summary of the cart at now.
func (c *Cart) Checkout(now time.Time) (CheckoutSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hotel := c.hotelLocked()
	if hotel == nil {
		return CheckoutSummary{}, ErrNoHotelInfo
	}
	return CheckoutSummary{
		Hotel:      *hotel,
		Items:      c.itemsLocked(),
		Total:      c.totalLocked(),
		ItemCount:  c.itemCountLocked(),
		EscapeDate: c.escapeDate,
		CapturedAt: now.UTC(),
	}, nil
}

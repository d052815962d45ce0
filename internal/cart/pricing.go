package cart

import "github.com/shopspring/decimal"

// LinePrice computes the line amount for a product: unit price times the guest count.
// Items without options, or with no guests, are priced as a single unit.
func LinePrice(unit decimal.Decimal, opts *GuestOptions) decimal.Decimal {
	guests := 1
	if opts != nil && opts.Guests() > 0 {
		guests = opts.Guests()
	}
	return unit.Mul(decimal.NewFromInt(int64(guests)))
}

package cart

import "github.com/shopspring/decimal"

// HotelInfo is the snapshot of the owning hotel taken when a line item is added.
type HotelInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Address string `json:"address"`
}

// GuestOptions captures the guest mix and visit date for a line item.
type GuestOptions struct {
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
	Date     string `json:"date"`
}

// Guests returns the head count across all guest types.
func (o GuestOptions) Guests() int {
	return o.Adults + o.Children + o.Infants
}

// LineItem is a single cart entry. Price already covers the full quantity and guest mix.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Hotel    HotelInfo       `json:"hotel"`
	Options  *GuestOptions   `json:"options,omitempty"`
}

// Date returns the visit date, or "" when the item carries no options.
func (i LineItem) Date() string {
	if i.Options == nil {
		return ""
	}
	return i.Options.Date
}

func (i LineItem) key() lineKey {
	return lineKey{id: i.ID, date: i.Date(), hasOptions: i.Options != nil}
}

// clone detaches the options pointer so callers cannot mutate stored entries.
func (i LineItem) clone() LineItem {
	if i.Options != nil {
		opts := *i.Options
		i.Options = &opts
	}
	return i
}

// lineKey identifies the merge slot of a line item. Items without options only
// share a slot with other items without options, even against an empty date.
type lineKey struct {
	id         string
	date       string
	hasOptions bool
}

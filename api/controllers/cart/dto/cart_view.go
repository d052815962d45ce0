package cartdto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartView struct {
	Items      []LineItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	EscapeDate time.Time       `json:"escape_date"`
	Hotel      *Hotel          `json:"hotel"`
}

type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Hotel    Hotel           `json:"hotel"`
	Options  *GuestOptions   `json:"options,omitempty"`
}

type Hotel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Address string `json:"address"`
}

type GuestOptions struct {
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
	Date     string `json:"date"`
}

type InCart struct {
	InCart bool `json:"in_cart"`
}

type Badge struct {
	Count int `json:"count"`
}

// CheckoutSummary is the snapshot handed to the booking flow.
type CheckoutSummary struct {
	Hotel      Hotel           `json:"hotel"`
	Items      []LineItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	EscapeDate time.Time       `json:"escape_date"`
	CapturedAt time.Time       `json:"captured_at"`
}

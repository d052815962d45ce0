package cartdto

import "github.com/shopspring/decimal"

// AddItemRequest is the add-to-cart payload. Price covers the whole line; when it is absent the
// server derives it from UnitPrice and the guest mix.
type AddItemRequest struct {
	ID          string            `json:"id" validate:"required,max=128"`
	Name        string            `json:"name" validate:"required,max=256"`
	Quantity    int               `json:"quantity" validate:"min=1,max=100"`
	Price       *decimal.Decimal  `json:"price,omitempty"`
	UnitPrice   *decimal.Decimal  `json:"unit_price,omitempty"`
	Kind        string            `json:"kind,omitempty" validate:"omitempty,oneof=day_pass cabana day_room"`
	Hotel       HotelRequest      `json:"hotel"`
	Options     *GuestOptionsBody `json:"options,omitempty"`
	ReplaceCart bool              `json:"replace_cart"`
}

// HotelRequest carries the hotel snapshot captured by the product page.
type HotelRequest struct {
	ID      string `json:"id" validate:"required,max=128"`
	Name    string `json:"name" validate:"required,max=256"`
	Image   string `json:"image" validate:"max=2048"`
	Address string `json:"address" validate:"max=512"`
}

// GuestOptionsBody is the guest mix and visit date.
type GuestOptionsBody struct {
	Adults   int    `json:"adults" validate:"gte=0,max=50"`
	Children int    `json:"children" validate:"gte=0,max=50"`
	Infants  int    `json:"infants" validate:"gte=0,max=50"`
	Date     string `json:"date" validate:"required,isodate"`
}

// EscapeDateRequest sets the trip date shown by the date picker.
type EscapeDateRequest struct {
	EscapeDate string `json:"escape_date" validate:"required"`
}

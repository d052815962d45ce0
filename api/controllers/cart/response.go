package cart

import (
	cartdto "github.com/angelmondragon/daypass-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/daypass-backend/internal/cart"
	"github.com/angelmondragon/daypass-backend/internal/sessions"
)

func newCartView(view *sessions.CartView) cartdto.CartView {
	out := cartdto.CartView{
		Items:      newLineItems(view.Items),
		Total:      view.Total,
		ItemCount:  view.ItemCount,
		EscapeDate: view.EscapeDate.UTC(),
	}
	if view.Hotel != nil {
		hotel := newHotel(*view.Hotel)
		out.Hotel = &hotel
	}
	return out
}

func newCheckoutSummary(summary *cart.CheckoutSummary) cartdto.CheckoutSummary {
	return cartdto.CheckoutSummary{
		Hotel:      newHotel(summary.Hotel),
		Items:      newLineItems(summary.Items),
		Total:      summary.Total,
		ItemCount:  summary.ItemCount,
		EscapeDate: summary.EscapeDate.UTC(),
		CapturedAt: summary.CapturedAt,
	}
}

func newLineItems(items []cart.LineItem) []cartdto.LineItem {
	out := make([]cartdto.LineItem, 0, len(items))
	for _, item := range items {
		line := cartdto.LineItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Hotel:    newHotel(item.Hotel),
		}
		if item.Options != nil {
			line.Options = &cartdto.GuestOptions{
				Adults:   item.Options.Adults,
				Children: item.Options.Children,
				Infants:  item.Options.Infants,
				Date:     item.Options.Date,
			}
		}
		out = append(out, line)
	}
	return out
}

func newHotel(h cart.HotelInfo) cartdto.Hotel {
	return cartdto.Hotel{
		ID:      h.ID,
		Name:    h.Name,
		Image:   h.Image,
		Address: h.Address,
	}
}

package cart

import (
	cartdto "github.com/angelmondragon/daypass-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/daypass-backend/api/validators"
	"github.com/angelmondragon/daypass-backend/internal/cart"
	"github.com/angelmondragon/daypass-backend/internal/sessions"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

const (
	maxIDLen   = 128
	maxNameLen = 256
	maxURLLen  = 2048
	maxAddrLen = 512
)

func toAddItemInput(payload cartdto.AddItemRequest) (sessions.AddItemInput, error) {
	var opts *cart.GuestOptions
	if payload.Options != nil {
		opts = &cart.GuestOptions{
			Adults:   payload.Options.Adults,
			Children: payload.Options.Children,
			Infants:  payload.Options.Infants,
			Date:     payload.Options.Date,
		}
	}

	switch {
	case payload.Price != nil:
		if payload.Price.IsNegative() {
			return sessions.AddItemInput{}, priceError("price")
		}
	case payload.UnitPrice != nil:
		if payload.UnitPrice.IsNegative() {
			return sessions.AddItemInput{}, priceError("unit_price")
		}
	default:
		return sessions.AddItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			"price": "price or unit_price is required",
		})
	}

	productID, err := validators.SanitizeID("id", payload.ID, maxIDLen)
	if err != nil {
		return sessions.AddItemInput{}, err
	}
	hotelID, err := validators.SanitizeID("hotel.id", payload.Hotel.ID, maxIDLen)
	if err != nil {
		return sessions.AddItemInput{}, err
	}

	item := cart.LineItem{
		ID:       productID,
		Name:     validators.SanitizeString(payload.Name, maxNameLen),
		Quantity: payload.Quantity,
		Hotel: cart.HotelInfo{
			ID:      hotelID,
			Name:    validators.SanitizeString(payload.Hotel.Name, maxNameLen),
			Image:   validators.SanitizeString(payload.Hotel.Image, maxURLLen),
			Address: validators.SanitizeString(payload.Hotel.Address, maxAddrLen),
		},
		Options: opts,
	}
	if payload.Price != nil {
		item.Price = *payload.Price
	} else {
		item.Price = cart.LinePrice(*payload.UnitPrice, opts)
	}

	kind := enums.ProductKindDayPass
	if payload.Kind != "" {
		parsed, err := enums.ParseProductKind(payload.Kind)
		if err != nil {
			return sessions.AddItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
		kind = parsed
	}

	return sessions.AddItemInput{
		Item:    item,
		Kind:    kind,
		Replace: payload.ReplaceCart,
	}, nil
}

func priceError(field string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
		field: "must not be negative",
	})
}

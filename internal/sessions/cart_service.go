package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/daypass-backend/internal/cart"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
)

// CartService exposes the cart of a session to the HTTP layer.
type CartService interface {
	View(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, input AddItemInput) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) (*CartView, error)
	RemoveLine(ctx context.Context, sessionID uuid.UUID, productID, date string) (*CartView, error)
	IsInCart(ctx context.Context, sessionID uuid.UUID, productID string) (bool, error)
	SetEscapeDate(ctx context.Context, sessionID uuid.UUID, date time.Time) (*CartView, error)
	Clear(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	Checkout(ctx context.Context, sessionID uuid.UUID) (*cart.CheckoutSummary, error)
}

// AddItemInput carries one add-to-cart request.
type AddItemInput struct {
	Item    cart.LineItem
	Kind    enums.ProductKind
	Replace bool
}

// CartView is the state of a cart after a read or write.
type CartView struct {
	Items      []cart.LineItem
	Total      decimal.Decimal
	ItemCount  int
	EscapeDate time.Time
	Hotel      *cart.HotelInfo
}

type cartService struct {
	manager *Manager
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	now     func() time.Time
}

// NewCartService builds the cart service on top of the session manager.
func NewCartService(manager *Manager, logg *logger.Logger, m *metrics.CartMetrics) (CartService, error) {
	if manager == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &cartService{
		manager: manager,
		logg:    logg,
		metrics: m,
		now:     manager.now,
	}, nil
}

func (s *cartService) View(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	sess, err := s.manager.Get(ctx, sessionID)
	if err != nil {
		return nil, translate(err)
	}
	return viewOf(sess.Cart), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID uuid.UUID, input AddItemInput) (*CartView, error) {
	op := metrics.CartOpAdd
	if input.Replace {
		op = metrics.CartOpReplace
	}
	sess, err := s.manager.Update(ctx, sessionID, func(c *cart.Cart) error {
		if input.Replace {
			c.ReplaceWith(input.Item)
			return nil
		}
		return c.AddItem(input.Item)
	})
	if err != nil {
		s.record(op, err)
		return nil, translate(err)
	}
	s.record(op, nil)
	s.metrics.ItemsAdded(input.Kind.String(), input.Item.Quantity)

	logCtx := s.logg.WithSessionID(ctx, sessionID.String())
	logCtx = s.logg.WithHotelID(logCtx, input.Item.Hotel.ID)
	logCtx = s.logg.WithProductID(logCtx, input.Item.ID)
	s.logg.Info(logCtx, "cart.item_added")
	return viewOf(sess.Cart), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) (*CartView, error) {
	sess, err := s.manager.Update(ctx, sessionID, func(c *cart.Cart) error {
		c.RemoveItem(productID)
		return nil
	})
	s.record(metrics.CartOpRemove, err)
	if err != nil {
		return nil, translate(err)
	}
	return viewOf(sess.Cart), nil
}

func (s *cartService) RemoveLine(ctx context.Context, sessionID uuid.UUID, productID, date string) (*CartView, error) {
	sess, err := s.manager.Update(ctx, sessionID, func(c *cart.Cart) error {
		c.RemoveLine(productID, date)
		return nil
	})
	s.record(metrics.CartOpRemove, err)
	if err != nil {
		return nil, translate(err)
	}
	return viewOf(sess.Cart), nil
}

func (s *cartService) IsInCart(ctx context.Context, sessionID uuid.UUID, productID string) (bool, error) {
	sess, err := s.manager.Get(ctx, sessionID)
	if err != nil {
		return false, translate(err)
	}
	return sess.Cart.IsInCart(productID), nil
}

func (s *cartService) SetEscapeDate(ctx context.Context, sessionID uuid.UUID, date time.Time) (*CartView, error) {
	sess, err := s.manager.Update(ctx, sessionID, func(c *cart.Cart) error {
		c.UpdateEscapeDate(date)
		return nil
	})
	s.record(metrics.CartOpEscapeDate, err)
	if err != nil {
		return nil, translate(err)
	}
	return viewOf(sess.Cart), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	sess, err := s.manager.Update(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	s.record(metrics.CartOpClear, err)
	if err != nil {
		return nil, translate(err)
	}
	return viewOf(sess.Cart), nil
}

func (s *cartService) Checkout(ctx context.Context, sessionID uuid.UUID) (*cart.CheckoutSummary, error) {
	sess, err := s.manager.Get(ctx, sessionID)
	if err != nil {
		return nil, translate(err)
	}
	summary, err := sess.Cart.Checkout(s.now())
	if err != nil {
		return nil, translate(err)
	}
	return &summary, nil
}

func (s *cartService) record(op string, err error) {
	switch {
	case err == nil:
		s.metrics.Operation(op, metrics.CartResultOK)
	case errors.Is(err, cart.ErrHotelMismatch), errors.Is(err, ErrNotFound):
		s.metrics.Operation(op, metrics.CartResultRejected)
	default:
		s.metrics.Operation(op, metrics.CartResultError)
	}
}

func viewOf(c *cart.Cart) *CartView {
	return &CartView{
		Items:      c.Items(),
		Total:      c.Total(),
		ItemCount:  c.ItemCount(),
		EscapeDate: c.EscapeDate(),
		Hotel:      c.HotelInfo(),
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "session not found")
	case errors.Is(err, cart.ErrHotelMismatch):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart holds items from another hotel").
			WithDetails(map[string]any{"hint": "resend with replace_cart=true to start a new cart"})
	case errors.Is(err, ErrVersionConflict):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart was modified concurrently").WithRetryable(true)
	case errors.Is(err, cart.ErrNoHotelInfo):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "no hotel information available")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart operation failed")
	}
}

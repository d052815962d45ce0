package sessions

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/internal/cart"
)

var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("sessions: session not found")
	// ErrVersionConflict is returned when a save loses to a concurrent writer.
	ErrVersionConflict = errors.New("sessions: session modified concurrently")
)

// Session is one browsing session and the cart it owns.
type Session struct {
	ID        uuid.UUID
	Cart      *cart.Cart
	Version   int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// record is the persisted form of a session.
type record struct {
	ID        uuid.UUID     `json:"id"`
	Cart      cart.Snapshot `json:"cart"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func toRecord(s *Session) record {
	snap := cart.Snapshot{}
	if s.Cart != nil {
		snap = s.Cart.Snapshot()
	}
	return record{
		ID:        s.ID,
		Cart:      snap,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func (r record) session() *Session {
	return &Session{
		ID:        r.ID,
		Cart:      cart.FromSnapshot(r.Cart),
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

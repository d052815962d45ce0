package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists sessions between requests.
// Save is optimistic: it fails with ErrVersionConflict when the stored version
// no longer matches s.Version, and bumps s.Version on success.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// expirer is implemented by stores that do not expire entries on their own.
type expirer interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

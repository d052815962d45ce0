package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/internal/cart"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
)

const (
	defaultTTL        = 12 * time.Hour
	maxUpdateAttempts = 3
)

// ManagerParams configure the session manager.
type ManagerParams struct {
	Store   Store
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
	TTL     time.Duration
	Now     func() time.Time
}

// Manager owns the lifecycle of browsing sessions and serializes cart mutations per session.
type Manager struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	ttl     time.Duration
	now     func() time.Time
	locks   *keyedLocks
}

// NewManager builds a session manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		ttl:     ttl,
		now:     now,
		locks:   newKeyedLocks(),
	}, nil
}

// TTL returns the idle lifetime granted on each write.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session with an empty cart.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	now := m.now().UTC()
	s := &Session{
		ID:        uuid.New(),
		Cart:      cart.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	m.metrics.SessionEvent("created", 1)
	m.logg.Info(m.logg.WithSessionID(ctx, s.ID.String()), "session.created")
	return s, nil
}

// Get loads a session. The returned cart is a private copy.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return m.store.Load(ctx, id)
}

// Update applies fn to the session's cart and persists the result.
// An error from fn aborts the update without saving.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, fn func(*cart.Cart) error) (*Session, error) {
	unlock := m.locks.lock(id)
	defer unlock()

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		s, err := m.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(s.Cart); err != nil {
			return nil, err
		}
		s.ExpiresAt = m.now().UTC().Add(m.ttl)
		err = m.store.Save(ctx, s)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		retryCtx := m.logg.WithFields(ctx, map[string]any{
			"session_id": id.String(),
			"attempt":    attempt,
		})
		m.logg.Warn(retryCtx, "session.version_conflict")
	}
	return nil, ErrVersionConflict
}

// End discards the session and its cart.
func (m *Manager) End(ctx context.Context, id uuid.UUID) error {
	if _, err := m.store.Load(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	m.metrics.SessionEvent("ended", 1)
	m.logg.Info(m.logg.WithSessionID(ctx, id.String()), "session.ended")
	return nil
}

// ActiveCount returns how many sessions the store currently holds.
func (m *Manager) ActiveCount(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

type keyedLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[uuid.UUID]*refMutex)}
}

func (k *keyedLocks) lock(id uuid.UUID) func() {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &refMutex{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]record
	now     func() time.Time
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]record),
		now:     time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[s.ID]; ok {
		return ErrVersionConflict
	}
	m.records[s.ID] = toRecord(s)
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()

	if !ok || !rec.ExpiresAt.After(m.now()) {
		return nil, ErrNotFound
	}
	return rec.session(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[s.ID]
	if !ok || !current.ExpiresAt.After(m.now()) {
		return ErrNotFound
	}
	if current.Version != s.Version {
		return ErrVersionConflict
	}
	next := toRecord(s)
	next.Version++
	m.records[s.ID] = next
	s.Version = next.Version
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// Count returns the number of unexpired sessions.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	n := 0
	for _, rec := range m.records {
		if rec.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

// DeleteExpired drops every session whose expiry is at or before now.
func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, rec := range m.records {
		if !rec.ExpiresAt.After(now) {
			delete(m.records, id)
			removed++
		}
	}
	return removed, nil
}

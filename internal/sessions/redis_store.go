package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/angelmondragon/daypass-backend/pkg/redis"
)

// redisBackend is the subset of the redis client used by RedisStore.
type redisBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Update(ctx context.Context, key string, ttl time.Duration, fn redisclient.UpdateFunc) error
	Del(ctx context.Context, keys ...string) error
	CountKeys(ctx context.Context, pattern string) (int, error)
	SessionKey(sessionID string) string
	SessionKeyPattern() string
}

// RedisStore keeps sessions as JSON values that expire with the session.
type RedisStore struct {
	client redisBackend
	now    func() time.Time
}

// NewRedisStore builds a redis-backed store.
func NewRedisStore(client redisBackend) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required for session store")
	}
	return &RedisStore{client: client, now: time.Now}, nil
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	payload, ttl, err := r.encode(toRecord(s))
	if err != nil {
		return err
	}
	return r.client.Update(ctx, r.client.SessionKey(s.ID.String()), ttl, func(_ string, found bool) (string, error) {
		if found {
			return "", ErrVersionConflict
		}
		return payload, nil
	})
}

func (r *RedisStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	raw, err := r.client.Get(ctx, r.client.SessionKey(id.String()))
	if errors.Is(err, redisclient.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return rec.session(), nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	next := toRecord(s)
	next.Version++
	payload, ttl, err := r.encode(next)
	if err != nil {
		return err
	}
	err = r.client.Update(ctx, r.client.SessionKey(s.ID.String()), ttl, func(current string, found bool) (string, error) {
		if !found {
			return "", ErrNotFound
		}
		stored, err := decodeRecord(current)
		if err != nil {
			return "", err
		}
		if stored.Version != s.Version {
			return "", ErrVersionConflict
		}
		return payload, nil
	})
	if errors.Is(err, redisclient.ErrWatchConflict) {
		return ErrVersionConflict
	}
	if err != nil {
		return err
	}
	s.Version = next.Version
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.client.SessionKey(id.String())); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Count scans the session keyspace; expired keys are already gone.
func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.CountKeys(ctx, r.client.SessionKeyPattern())
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *RedisStore) encode(rec record) (string, time.Duration, error) {
	ttl := rec.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return "", 0, ErrNotFound
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", 0, fmt.Errorf("encode session: %w", err)
	}
	return string(payload), ttl, nil
}

func decodeRecord(raw string) (record, error) {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return record{}, fmt.Errorf("decode session: %w", err)
	}
	return rec, nil
}

package drivers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	dindr "github.com/dindr/services"
	"github.com/dindr/services/session"
)

const (
	// Redis key prefix for sessions
	sessionKeyPrefix = "session:"
	// scanBatchSize caps keys fetched per SCAN round during the sweep.
	scanBatchSize = 100
)

// RedisStore implements session.Store using Redis with optimistic
// locking via WATCH/MULTI/EXEC. Keys carry a TTL equal to the
// expiration window as a backstop behind the created_at policy.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-based session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = session.Expiration
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Insert implements session.Store.
// SET NX enforces session id uniqueness.
func (s *RedisStore) Insert(ctx context.Context, rec *dindr.SessionRecord) error {
	key := s.key(rec.SessionID)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.Version = 1

	val, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, key, val, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrSessionExists
	}
	return nil
}

// Select implements session.Store.
// Returns nil if the session is not found (not an error). The TTL is
// not refreshed: session lifetime is anchored to created_at.
func (s *RedisStore) Select(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec dindr.SessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update implements session.Store.
// Uses WATCH/MULTI/EXEC for optimistic locking: verifies the version,
// increments it, and persists while keeping the original TTL.
func (s *RedisStore) Update(ctx context.Context, rec *dindr.SessionRecord) error {
	key := s.key(rec.SessionID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return session.ErrNotFound
		}
		if err != nil {
			return err
		}

		var stored dindr.SessionRecord
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return err
		}

		if stored.Version != rec.Version {
			return session.ErrVersionConflict
		}

		rec.Version++

		newVal, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newVal, redis.KeepTTL)
			return nil
		})
		return err
	}, key)

	// A concurrent write between WATCH and EXEC aborts the transaction;
	// report it as a version conflict so callers can retry.
	if err == redis.TxFailedErr {
		return session.ErrVersionConflict
	}
	return err
}

// Delete implements session.Store.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

// DeleteCreatedBefore implements session.Store.
// Walks session keys with SCAN and removes rows older than the cutoff.
// The key TTL usually gets there first; this covers clock drift and
// keys written with a longer TTL.
func (s *RedisStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) error {
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		val, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return err
		}

		var rec dindr.SessionRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			continue
		}
		if rec.CreatedAt.Before(cutoff) {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return err
			}
		}
	}
	return iter.Err()
}

// Close implements session.Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key constructs the Redis key for a session ID.
func (s *RedisStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Compile-time check that RedisStore implements session.Store.
var _ session.Store = (*RedisStore)(nil)

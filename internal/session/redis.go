package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces session keys so the store can share a Redis
// database with other applications.
const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL equal to the session
// lifetime, so expiry is enforced by the server and no sweep is needed.
type RedisStore struct {
	rdb    *redis.Client
	maxAge time.Duration
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(rdb *redis.Client, maxAge time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, maxAge: maxAge}
}

var _ Store = (*RedisStore)(nil)

// Create generates a token and writes the JSON-encoded record with TTL.
func (r *RedisStore) Create(ctx context.Context, username string) (string, error) {
	s, err := newSession(username, r.maxAge)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+s.ID, body, r.maxAge).Err(); err != nil {
		return "", err
	}
	return s.ID, nil
}

// Get returns the session or (nil, nil) when the key is gone. The expiry
// check is repeated here in case the key outlived its TTL by a clock skew.
func (r *RedisStore) Get(ctx context.Context, sid string) (*Session, error) {
	body, err := r.rdb.Get(ctx, redisKeyPrefix+sid).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}
	if s.Expired(time.Now().UTC()) {
		_ = r.Destroy(ctx, sid)
		return nil, nil
	}
	return &s, nil
}

// Destroy deletes the key; deleting an absent key is not an error.
func (r *RedisStore) Destroy(ctx context.Context, sid string) error {
	return r.rdb.Del(ctx, redisKeyPrefix+sid).Err()
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (r *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// idempEntry is what the store keeps per key: first a lock, then the final response.
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// IdempotencyStore keeps request fingerprints and finished responses in Redis.
type IdempotencyStore struct {
	rdb     *redis.Client
	prefix  string
	lockTTL time.Duration
	ttl     time.Duration
}

// NewIdempotencyStore keeps finished responses for ttl; in-progress locks expire after a minute.
func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, prefix: "idemp:ax:", lockTTL: 60 * time.Second, ttl: ttl}
}

// Key scopes a request id to the route and the caller.
func (s *IdempotencyStore) Key(method, route, userID, requestID string) string {
	return s.prefix + strings.Join([]string{strings.ToLower(method), route, userID, requestID}, ":")
}

// Reserve takes the in-progress lock; false means the key is already held or done.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, e idempEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.lockTTL).Result()
}

// Load returns redis.Nil when the key expired between Reserve and Load.
func (s *IdempotencyStore) Load(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return e, errors.Join(errors.New("corrupt idempotency entry"), err)
	}
	return e, nil
}

// Complete replaces the lock with the final response.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, e idempEntry) error {
	e.InProgress = false
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

// Release drops the lock so the client may retry with the same request id.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

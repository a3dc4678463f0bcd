package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/placement-backend/internal/config"
)

// SessionStore keeps one active session JTI per account and counts failed
// sign-ins.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Save records jti as the active session, replacing any previous one.
func (s *SessionStore) Save(ctx context.Context, role, email, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, config.CacheKey.SessionKey(role, email), jti, ttl).Err()
}

// Get returns the active JTI, or "" when there is none.
func (s *SessionStore) Get(ctx context.Context, role, email string) (string, error) {
	v, err := s.rdb.Get(ctx, config.CacheKey.SessionKey(role, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

// Delete ends the active session.
func (s *SessionStore) Delete(ctx context.Context, role, email string) error {
	return s.rdb.Del(ctx, config.CacheKey.SessionKey(role, email)).Err()
}

// FailedSignIns returns the failures counted in the current window.
func (s *SessionStore) FailedSignIns(ctx context.Context, role, email string) (int64, error) {
	n, err := s.rdb.Get(ctx, config.CacheKey.SignInAttemptsKey(role, email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// RecordFailedSignIn increments the failure counter. The window starts at the
// first failure and is not extended by later ones.
func (s *SessionStore) RecordFailedSignIn(ctx context.Context, role, email string, window time.Duration) (int64, error) {
	key := config.CacheKey.SignInAttemptsKey(role, email)

	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// ResetFailedSignIns clears the counter after a successful sign-in.
func (s *SessionStore) ResetFailedSignIns(ctx context.Context, role, email string) error {
	return s.rdb.Del(ctx, config.CacheKey.SignInAttemptsKey(role, email)).Err()
}

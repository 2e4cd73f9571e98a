// Package sessions maps session tokens to users. Sessions live in Redis under
// "auth_<sessionID>" with a TTL; the token handed to clients is a signed JWT
// carrying the session id.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth_"

// Store persists session id → user id mappings.
type Store interface {
	Put(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Put(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get returns the user bound to sessionID, or common.ErrorNotFound when the
// session is unknown or expired.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionData is the cached projection of a session row.
type SessionData struct {
	SessionID string    `json:"session_id"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

var ErrCacheMiss = errors.New("session not cached")

type SessionCacheRepository struct {
	client *redis.Client
}

func NewSessionCacheRepository(client *redis.Client) *SessionCacheRepository {
	return &SessionCacheRepository{
		client: client,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Store caches a session until it expires. A non-positive TTL is dropped
// silently, there is nothing worth caching.
func (r *SessionCacheRepository) Store(ctx context.Context, data SessionData) error {
	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(data.SessionID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionCacheRepository) Get(ctx context.Context, sessionID string) (SessionData, error) {
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SessionData{}, ErrCacheMiss
		}
		return SessionData{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return SessionData{}, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return data, nil
}

func (r *SessionCacheRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}

	return nil
}

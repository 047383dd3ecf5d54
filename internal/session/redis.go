package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"financial-hub/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps contexts in Redis so sessions survive restarts and
// are shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis at the given URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get returns the stored context or nil when absent
func (s *RedisStore) Get(ctx context.Context, userID int64) (*models.ConversationContext, error) {
	payload, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var conv models.ConversationContext
	if err := json.Unmarshal(payload, &conv); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &conv, nil
}

// Put stores the context and resets its TTL
func (s *RedisStore) Put(ctx context.Context, userID int64, conv *models.ConversationContext) error {
	payload, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete removes the context for a user
func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

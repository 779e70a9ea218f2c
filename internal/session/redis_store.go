// Package session persists the cart and the admin identity in Redis so they
// survive a restart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gleaming-gallery/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Config locates one session's keys.
type Config struct {
	KeyPrefix string
	SessionID string
	// AdminTTL bounds the admin session. Zero keeps it until logout.
	AdminTTL time.Duration
}

// RedisStore stores one session's cart snapshot and admin identity as JSON
// values under "<prefix>:cart:<id>" and "<prefix>:admin:<id>".
type RedisStore struct {
	client *redis.Client
	config Config
}

// NewRedisStore creates a RedisStore on client.
func NewRedisStore(client *redis.Client, config Config) *RedisStore {
	return &RedisStore{client: client, config: config}
}

func (s *RedisStore) CartKey() string {
	return fmt.Sprintf("%s:cart:%s", s.config.KeyPrefix, s.config.SessionID)
}

func (s *RedisStore) AdminKey() string {
	return fmt.Sprintf("%s:admin:%s", s.config.KeyPrefix, s.config.SessionID)
}

// LoadCart returns the saved cart, or nil when there is none.
func (s *RedisStore) LoadCart(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	found, err := s.load(ctx, s.CartKey(), &items)
	if err != nil || !found {
		return nil, err
	}
	return items, nil
}

// SaveCart replaces the cart snapshot. An empty cart deletes the key.
func (s *RedisStore) SaveCart(ctx context.Context, items []domain.CartItem) error {
	if len(items) == 0 {
		return s.delete(ctx, s.CartKey())
	}
	return s.save(ctx, s.CartKey(), items, 0)
}

// LoadAdmin returns the saved admin identity, or nil when there is none.
func (s *RedisStore) LoadAdmin(ctx context.Context) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	found, err := s.load(ctx, s.AdminKey(), &admin)
	if err != nil || !found {
		return nil, err
	}
	return &admin, nil
}

// SaveAdmin stores admin with the configured TTL. A nil admin deletes the key.
func (s *RedisStore) SaveAdmin(ctx context.Context, admin *domain.AdminUser) error {
	if admin == nil {
		return s.delete(ctx, s.AdminKey())
	}
	return s.save(ctx, s.AdminKey(), admin, s.config.AdminTTL)
}

func (s *RedisStore) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) save(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

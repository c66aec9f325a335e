// Package cache provides the Redis-backed account cache used on the wallet
// read path. Cached snapshots are advisory: every balance mutation
// invalidates them, and the ledger is never served from cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cashpoint/internal/models"
)

// ErrCacheMiss is returned when the requested key is not cached.
var ErrCacheMiss = errors.New("cache miss")

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, ttl: defaultTTL}
}

func accountKey(id uint) string {
	return fmt.Sprintf("account:%d", id)
}

func (s *Service) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached account: %w", err)
	}
	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached account: %w", err)
	}
	return &account, nil
}

func (s *Service) SetAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("cannot cache nil account")
	}
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	return s.client.Set(ctx, accountKey(account.ID), data, s.ttl).Err()
}

func (s *Service) InvalidateAccount(ctx context.Context, id uint) error {
	return s.client.Del(ctx, accountKey(id)).Err()
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.client.Close()
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/pet-adventure/pkg/storage"
)

// Key prefixes, one per store.
const (
	prefixGameState = "progress:"
	prefixPlayer    = "player:"
	prefixPet       = "pet:"
	prefixBattle    = "battle:"
)

// RedisStorage keeps every store as a JSON blob under its own key.
type RedisStorage struct {
	client    *redis.Client
	logger    *slog.Logger
	saveTTL   time.Duration
	battleTTL time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisClient parses redisURL and builds a client. A bare host:port is
// accepted as well as a redis:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if !strings.Contains(redisURL, "://") {
		return redis.NewClient(&redis.Options{Addr: redisURL}), nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return redis.NewClient(opt), nil
}

// NewRedisStorage wraps client. A zero TTL keeps records forever.
func NewRedisStorage(client *redis.Client, saveTTL, battleTTL time.Duration, logger *slog.Logger) *RedisStorage {
	return &RedisStorage{
		client:    client,
		logger:    logger,
		saveTTL:   saveTTL,
		battleTTL: battleTTL,
	}
}

// Client exposes the underlying connection for pub/sub.
func (r *RedisStorage) Client() *redis.Client {
	return r.client
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) put(ctx context.Context, kind, prefix string, id uuid.UUID, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("Failed to marshal record", "kind", kind, "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	if err := r.client.Set(ctx, prefix+id.String(), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save record", "kind", kind, "uuid", id, "error", err)
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}

// get decodes the record into v. It reports false when the key is missing.
func (r *RedisStorage) get(ctx context.Context, kind, prefix string, id uuid.UUID, v any) (bool, error) {
	data, err := r.client.Get(ctx, prefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Record not found", "kind", kind, "uuid", id)
			return false, nil
		}
		r.logger.Error("Failed to load record", "kind", kind, "uuid", id, "error", err)
		return false, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.logger.Error("Failed to unmarshal record", "kind", kind, "uuid", id, "error", err)
		return false, fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}
	return true, nil
}

func (r *RedisStorage) del(ctx context.Context, kind, prefix string, id uuid.UUID) error {
	if err := r.client.Del(ctx, prefix+id.String()).Err(); err != nil {
		r.logger.Error("Failed to delete record", "kind", kind, "uuid", id, "error", err)
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return nil
}

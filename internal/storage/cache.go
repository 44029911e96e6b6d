package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jwebster45206/pet-adventure/internal/metrics"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/storage"
)

// CachedStorage puts a read-through LRU in front of another Storage.
// Entries are kept as JSON so callers can mutate what they load. Battles are
// not cached; they change on every action.
type CachedStorage struct {
	storage.Storage
	lru *expirable.LRU[string, []byte]
}

// Ensure CachedStorage implements Storage interface
var _ storage.Storage = (*CachedStorage)(nil)

// NewCachedStorage wraps next with a cache of size entries living ttl.
func NewCachedStorage(next storage.Storage, size int, ttl time.Duration) *CachedStorage {
	return &CachedStorage{
		Storage: next,
		lru:     expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func cacheKey(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

func cached[T any](c *CachedStorage, store, prefix string, id uuid.UUID, load func() (*T, error)) (*T, error) {
	key := cacheKey(prefix, id)
	if data, ok := c.lru.Get(key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			metrics.CacheLookups.WithLabelValues(store, "hit").Inc()
			return &v, nil
		}
		c.lru.Remove(key)
	}
	metrics.CacheLookups.WithLabelValues(store, "miss").Inc()

	v, err := load()
	if err != nil || v == nil {
		return v, err
	}
	c.remember(key, v)
	return v, nil
}

func (c *CachedStorage) remember(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.lru.Remove(key)
		return
	}
	c.lru.Add(key, data)
}

func (c *CachedStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	key := cacheKey(prefixGameState, id)
	c.lru.Remove(key)
	if err := c.Storage.SaveGameState(ctx, id, gs); err != nil {
		return err
	}
	c.remember(key, gs)
	return nil
}

func (c *CachedStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	return cached(c, "gamestate", prefixGameState, id, func() (*state.GameState, error) {
		return c.Storage.LoadGameState(ctx, id)
	})
}

func (c *CachedStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	c.lru.Remove(cacheKey(prefixGameState, id))
	return c.Storage.DeleteGameState(ctx, id)
}

func (c *CachedStorage) SavePlayer(ctx context.Context, id uuid.UUID, p *actor.Player) error {
	key := cacheKey(prefixPlayer, id)
	c.lru.Remove(key)
	if err := c.Storage.SavePlayer(ctx, id, p); err != nil {
		return err
	}
	c.remember(key, p)
	return nil
}

func (c *CachedStorage) LoadPlayer(ctx context.Context, id uuid.UUID) (*actor.Player, error) {
	return cached(c, "player", prefixPlayer, id, func() (*actor.Player, error) {
		return c.Storage.LoadPlayer(ctx, id)
	})
}

func (c *CachedStorage) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	c.lru.Remove(cacheKey(prefixPlayer, id))
	return c.Storage.DeletePlayer(ctx, id)
}

func (c *CachedStorage) SavePet(ctx context.Context, id uuid.UUID, p *actor.Pet) error {
	key := cacheKey(prefixPet, id)
	c.lru.Remove(key)
	if err := c.Storage.SavePet(ctx, id, p); err != nil {
		return err
	}
	c.remember(key, p)
	return nil
}

func (c *CachedStorage) LoadPet(ctx context.Context, id uuid.UUID) (*actor.Pet, error) {
	return cached(c, "pet", prefixPet, id, func() (*actor.Pet, error) {
		return c.Storage.LoadPet(ctx, id)
	})
}

func (c *CachedStorage) DeletePet(ctx context.Context, id uuid.UUID) error {
	c.lru.Remove(cacheKey(prefixPet, id))
	return c.Storage.DeletePet(ctx, id)
}

// Purge drops every cached entry.
func (c *CachedStorage) Purge() {
	c.lru.Purge()
}

// Len is the number of cached entries.
func (c *CachedStorage) Len() int {
	return c.lru.Len()
}

package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/pkg/state"
)

// GameState operations

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	gs.UpdatedAt = time.Now().UTC()
	return r.put(ctx, "gamestate", prefixGameState, id, gs, r.saveTTL)
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	var gs state.GameState
	found, err := r.get(ctx, "gamestate", prefixGameState, id, &gs)
	if err != nil || !found {
		return nil, err
	}
	return &gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	return r.del(ctx, "gamestate", prefixGameState, id)
}

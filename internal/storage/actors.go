package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
)

// Player operations

func (r *RedisStorage) SavePlayer(ctx context.Context, id uuid.UUID, p *actor.Player) error {
	return r.put(ctx, "player", prefixPlayer, id, p, r.saveTTL)
}

func (r *RedisStorage) LoadPlayer(ctx context.Context, id uuid.UUID) (*actor.Player, error) {
	var p actor.Player
	found, err := r.get(ctx, "player", prefixPlayer, id, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *RedisStorage) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	return r.del(ctx, "player", prefixPlayer, id)
}

// Pet operations

func (r *RedisStorage) SavePet(ctx context.Context, id uuid.UUID, p *actor.Pet) error {
	return r.put(ctx, "pet", prefixPet, id, p, r.saveTTL)
}

func (r *RedisStorage) LoadPet(ctx context.Context, id uuid.UUID) (*actor.Pet, error) {
	var p actor.Pet
	found, err := r.get(ctx, "pet", prefixPet, id, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *RedisStorage) DeletePet(ctx context.Context, id uuid.UUID) error {
	return r.del(ctx, "pet", prefixPet, id)
}

// Battle operations. Battles use their own, shorter TTL.

func (r *RedisStorage) SaveBattle(ctx context.Context, id uuid.UUID, b *battle.Battle) error {
	return r.put(ctx, "battle", prefixBattle, id, b, r.battleTTL)
}

func (r *RedisStorage) LoadBattle(ctx context.Context, id uuid.UUID) (*battle.Battle, error) {
	var b battle.Battle
	found, err := r.get(ctx, "battle", prefixBattle, id, &b)
	if err != nil || !found {
		return nil, err
	}
	return &b, nil
}

func (r *RedisStorage) DeleteBattle(ctx context.Context, id uuid.UUID) error {
	return r.del(ctx, "battle", prefixBattle, id)
}

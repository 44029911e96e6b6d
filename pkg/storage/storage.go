package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

// Storage holds the per-game stores. Every Load returns nil, nil when the
// record does not exist.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Game progress store
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// Player store
	SavePlayer(ctx context.Context, id uuid.UUID, p *actor.Player) error
	LoadPlayer(ctx context.Context, id uuid.UUID) (*actor.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error

	// Pet store
	SavePet(ctx context.Context, id uuid.UUID, p *actor.Pet) error
	LoadPet(ctx context.Context, id uuid.UUID) (*actor.Pet, error)
	DeletePet(ctx context.Context, id uuid.UUID) error

	// Active battle, short-lived
	SaveBattle(ctx context.Context, id uuid.UUID, b *battle.Battle) error
	LoadBattle(ctx context.Context, id uuid.UUID) (*battle.Battle, error)
	DeleteBattle(ctx context.Context, id uuid.UUID) error
}

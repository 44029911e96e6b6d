package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

// MockStorage is an in-memory Storage for tests. Records are stored as JSON
// so callers never share pointers with the store.
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID][]byte
	players    map[uuid.UUID][]byte
	pets       map[uuid.UUID][]byte
	battles    map[uuid.UUID][]byte
	pingError  error
	saveError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[uuid.UUID][]byte),
		players:    make(map[uuid.UUID][]byte),
		pets:       make(map[uuid.UUID][]byte),
		battles:    make(map[uuid.UUID][]byte),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes every Save call fail with err. Pass nil to clear.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func put[T any](m *MockStorage, into map[uuid.UUID][]byte, id uuid.UUID, v *T) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	into[id] = data
	return nil
}

func get[T any](m *MockStorage, from map[uuid.UUID][]byte, id uuid.UUID) (*T, error) {
	m.mu.RLock()
	data, ok := from[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (m *MockStorage) del(from map[uuid.UUID][]byte, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(from, id)
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	return put(m, m.gamestates, id, gs)
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	return get[state.GameState](m, m.gamestates, id)
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	return m.del(m.gamestates, id)
}

func (m *MockStorage) SavePlayer(ctx context.Context, id uuid.UUID, p *actor.Player) error {
	return put(m, m.players, id, p)
}

func (m *MockStorage) LoadPlayer(ctx context.Context, id uuid.UUID) (*actor.Player, error) {
	return get[actor.Player](m, m.players, id)
}

func (m *MockStorage) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	return m.del(m.players, id)
}

func (m *MockStorage) SavePet(ctx context.Context, id uuid.UUID, p *actor.Pet) error {
	return put(m, m.pets, id, p)
}

func (m *MockStorage) LoadPet(ctx context.Context, id uuid.UUID) (*actor.Pet, error) {
	return get[actor.Pet](m, m.pets, id)
}

func (m *MockStorage) DeletePet(ctx context.Context, id uuid.UUID) error {
	return m.del(m.pets, id)
}

func (m *MockStorage) SaveBattle(ctx context.Context, id uuid.UUID, b *battle.Battle) error {
	return put(m, m.battles, id, b)
}

func (m *MockStorage) LoadBattle(ctx context.Context, id uuid.UUID) (*battle.Battle, error) {
	return get[battle.Battle](m, m.battles, id)
}

func (m *MockStorage) DeleteBattle(ctx context.Context, id uuid.UUID) error {
	return m.del(m.battles, id)
}

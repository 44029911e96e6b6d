// Package game coordinates the player, pet, progress and battle stores for
// one session at a time.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/metrics"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/storage"
	"github.com/jwebster45206/pet-adventure/pkg/textfilter"
	"github.com/jwebster45206/pet-adventure/pkg/town"
)

// Broadcaster receives game events. *events.Broadcaster satisfies it.
type Broadcaster interface {
	PublishBattleStarted(ctx context.Context, gameID uuid.UUID, enemy string, level int) error
	PublishBattleStep(ctx context.Context, gameID uuid.UUID, turn int, battleState, message string) error
	PublishBattleEnded(ctx context.Context, gameID uuid.UUID, won bool, coins, experience int) error
	PublishGameStateUpdated(ctx context.Context, gameID uuid.UUID, phase, location string) error
}

// Snapshot is everything a client needs to draw the current screen.
type Snapshot struct {
	Game         *state.GameState `json:"game"`
	Player       *actor.Player    `json:"player"`
	PlayerLevel  int              `json:"player_level"`
	Pet          *actor.Pet       `json:"pet,omitempty"`
	Battle       *battle.Battle   `json:"battle,omitempty"`
	MathQuestion string           `json:"math_question,omitempty"`
}

// Result is a snapshot plus what just happened.
type Result struct {
	Message  string           `json:"message,omitempty"`
	Unlocked []state.Location `json:"unlocked,omitempty"`
	Steps    []battle.Step    `json:"steps,omitempty"`
	*Snapshot
}

// Service runs game operations against a Storage. Calls for the same game
// are serialized; different games run in parallel.
type Service struct {
	store  storage.Storage
	events Broadcaster
	names  *textfilter.NameFilter
	rand   actor.Rand
	logger *slog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*gameLock
}

// gameLock serializes work on one game. refs counts holders and waiters;
// the entry leaves the map when it drops to zero.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

// Option configures a Service.
type Option func(*Service)

// WithBroadcaster publishes game events to b.
func WithBroadcaster(b Broadcaster) Option {
	return func(s *Service) { s.events = b }
}

// WithRand replaces the random source.
func WithRand(r actor.Rand) Option {
	return func(s *Service) { s.rand = r }
}

// NewService creates a game service.
func NewService(store storage.Storage, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		names:  textfilter.NewNameFilter(actor.MaxNameLength),
		rand:   actor.DefaultRand(),
		logger: logger,
		locks:  make(map[uuid.UUID]*gameLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) lock(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &gameLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// session is one game's stores, loaded together.
type session struct {
	id     uuid.UUID
	gs     *state.GameState
	player *actor.Player
	pet    *actor.Pet
	battle *battle.Battle

	battleDirty bool
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*session, error) {
	gs, err := s.store.LoadGameState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if gs == nil {
		return nil, ErrGameNotFound
	}
	player, err := s.store.LoadPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	if player == nil {
		player = actor.NewPlayer()
	}
	pet, err := s.store.LoadPet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load pet: %w", err)
	}
	b, err := s.store.LoadBattle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load battle: %w", err)
	}
	// A battle record that expired while the phase still says battle.
	if b == nil && gs.Phase == state.PhaseBattle {
		gs.SetPhase(state.PhaseTown)
	}
	return &session{id: id, gs: gs, player: player, pet: pet, battle: b}, nil
}

// persist writes the stores back one after another.
func (s *Service) persist(ctx context.Context, sess *session) error {
	if err := s.store.SaveGameState(ctx, sess.id, sess.gs); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	if err := s.store.SavePlayer(ctx, sess.id, sess.player); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	if sess.pet != nil {
		if err := s.store.SavePet(ctx, sess.id, sess.pet); err != nil {
			return fmt.Errorf("failed to save pet: %w", err)
		}
	} else if err := s.store.DeletePet(ctx, sess.id); err != nil {
		return fmt.Errorf("failed to clear pet: %w", err)
	}
	if !sess.battleDirty {
		return nil
	}
	if sess.battle != nil {
		if err := s.store.SaveBattle(ctx, sess.id, sess.battle); err != nil {
			return fmt.Errorf("failed to save battle: %w", err)
		}
	} else if err := s.store.DeleteBattle(ctx, sess.id); err != nil {
		return fmt.Errorf("failed to clear battle: %w", err)
	}
	return nil
}

func (sess *session) snapshot() *Snapshot {
	snap := &Snapshot{
		Game:        sess.gs,
		Player:      sess.player,
		PlayerLevel: sess.player.Level(),
		Pet:         sess.pet,
		Battle:      sess.battle,
	}
	if sess.gs.MathGame.Active {
		snap.MathQuestion = town.Question(sess.gs.MathGame)
	}
	return snap
}

// update loads a game, runs fn and saves the result if fn succeeds.
func (s *Service) update(ctx context.Context, id uuid.UUID, fn func(*session, *Result) error) (*Result, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	phase, location := sess.gs.Phase, sess.gs.Location

	res := &Result{}
	if err := fn(sess, res); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, sess); err != nil {
		s.logger.Error("Failed to persist game", "game_id", id, "error", err)
		return nil, err
	}
	if sess.gs.Phase != phase || sess.gs.Location != location {
		s.publishState(ctx, sess.gs)
	}
	res.Snapshot = sess.snapshot()
	return res, nil
}

func (s *Service) publishState(ctx context.Context, gs *state.GameState) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishGameStateUpdated(ctx, gs.ID, string(gs.Phase), string(gs.Location)); err != nil {
		s.logger.Warn("Failed to publish state update", "game_id", gs.ID, "error", err)
	}
}

// NewGame creates the stores for a fresh session and moves past the welcome
// screen.
func (s *Service) NewGame(ctx context.Context) (*Snapshot, error) {
	gs := state.NewGameState()
	gs.SetPhase(state.PhaseAgeVerification)
	sess := &session{id: gs.ID, gs: gs, player: actor.NewPlayer()}
	if err := s.persist(ctx, sess); err != nil {
		return nil, err
	}
	metrics.GamesCreated.Inc()
	s.logger.Info("Game created", "game_id", gs.ID)
	return sess.snapshot(), nil
}

// Snapshot returns the current state of a game.
func (s *Service) Snapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

// Reset puts every store back to its defaults, keeping the game ID.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		sess.gs.Reset()
		sess.gs.SetPhase(state.PhaseAgeVerification)
		sess.player = actor.NewPlayer()
		sess.pet = nil
		sess.battle = nil
		sess.battleDirty = true
		res.Message = "Game reset."
		return nil
	})
}

// Delete removes every store of a game.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lock(id)
	defer unlock()

	gs, err := s.store.LoadGameState(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	if gs == nil {
		return ErrGameNotFound
	}
	steps := []struct {
		name string
		del  func(context.Context, uuid.UUID) error
	}{
		{"battle", s.store.DeleteBattle},
		{"pet", s.store.DeletePet},
		{"player", s.store.DeletePlayer},
		{"game", s.store.DeleteGameState},
	}
	for _, st := range steps {
		if err := st.del(ctx, id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", st.name, err)
		}
	}
	s.logger.Info("Game deleted", "game_id", id)
	return nil
}

// requireTown fails unless the game is on the town screen.
func requireTown(gs *state.GameState) error {
	switch gs.Phase {
	case state.PhaseTown:
		return nil
	case state.PhaseBattle:
		return ErrBattleActive
	default:
		return fmt.Errorf("%w: game is in %s", ErrWrongPhase, gs.Phase)
	}
}

func requireLocation(gs *state.GameState, l state.Location) error {
	if gs.Location != l {
		return fmt.Errorf("%w: go to the %s first", ErrWrongLocation, l)
	}
	return nil
}

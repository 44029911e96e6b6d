package game

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/storage"
)

// scriptRand always draws the first option. Float64 replays floats and then
// returns 1, so park battles never trigger and enemies target the player.
type scriptRand struct {
	mu     sync.Mutex
	floats []float64
}

func (r *scriptRand) IntN(n int) int { return 0 }

func (r *scriptRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 1
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type recordedEvent struct {
	kind    string
	message string
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeBroadcaster) add(kind, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{kind, msg})
	return nil
}

func (f *fakeBroadcaster) PublishBattleStarted(ctx context.Context, gameID uuid.UUID, enemy string, level int) error {
	return f.add("battle.started", enemy)
}

func (f *fakeBroadcaster) PublishBattleStep(ctx context.Context, gameID uuid.UUID, turn int, battleState, message string) error {
	return f.add("battle.step", message)
}

func (f *fakeBroadcaster) PublishBattleEnded(ctx context.Context, gameID uuid.UUID, won bool, coins, experience int) error {
	return f.add("battle.ended", "")
}

func (f *fakeBroadcaster) PublishGameStateUpdated(ctx context.Context, gameID uuid.UUID, phase, location string) error {
	return f.add("game.state_updated", phase+"/"+location)
}

func (f *fakeBroadcaster) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.kind)
	}
	return out
}

func newTestService(t *testing.T, floats ...float64) (*Service, *storage.MockStorage, *fakeBroadcaster) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store := storage.NewMockStorage()
	events := &fakeBroadcaster{}
	svc := NewService(store, logger, WithRand(&scriptRand{floats: floats}), WithBroadcaster(events))
	return svc, store, events
}

// newTownGame plays through setup and returns a game standing in town with
// a dog named Doggy.
func newTownGame(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	snap, err := svc.NewGame(ctx)
	require.NoError(t, err)
	id := snap.Game.ID

	_, err = svc.VerifyAge(ctx, id, 8)
	require.NoError(t, err)
	_, err = svc.CreateCharacter(ctx, id, CharacterInput{Name: "sam"})
	require.NoError(t, err)
	_, err = svc.AssignPet(ctx, id)
	require.NoError(t, err)
	res, err := svc.NamePet(ctx, id, "")
	require.NoError(t, err)
	require.Equal(t, state.PhaseTown, res.Game.Phase)
	return id
}

func TestNewGame(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.NewGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseAgeVerification, snap.Game.Phase)
	assert.Equal(t, 20, snap.Player.Coins)
	assert.Nil(t, snap.Pet)
	assert.Equal(t, 1, snap.PlayerLevel)

	gs, err := store.LoadGameState(ctx, snap.Game.ID)
	require.NoError(t, err)
	require.NotNil(t, gs)

	_, err = svc.Snapshot(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestVerifyAge(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	snap, err := svc.NewGame(ctx)
	require.NoError(t, err)
	id := snap.Game.ID

	tests := []struct {
		age  int
		want error
	}{
		{0, ErrInvalidAge},
		{-3, ErrInvalidAge},
		{120, ErrInvalidAge},
		{6, ErrTooYoung},
	}
	for _, tt := range tests {
		_, err := svc.VerifyAge(ctx, id, tt.age)
		assert.ErrorIs(t, err, tt.want, "age %d", tt.age)
	}

	res, err := svc.VerifyAge(ctx, id, 7)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseCharacterCreation, res.Game.Phase)
	assert.Equal(t, 7, res.Player.Age)

	_, err = svc.VerifyAge(ctx, id, 9)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestCreateCharacter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	snap, err := svc.NewGame(ctx)
	require.NoError(t, err)
	id := snap.Game.ID
	_, err = svc.VerifyAge(ctx, id, 10)
	require.NoError(t, err)

	_, err = svc.CreateCharacter(ctx, id, CharacterInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = svc.CreateCharacter(ctx, id, CharacterInput{Name: "stupid head"})
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = svc.CreateCharacter(ctx, id, CharacterInput{Name: "abcdefghijklmnopqrstu"})
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = svc.CreateCharacter(ctx, id, CharacterInput{Name: "Sam", Color: "blue"})
	assert.ErrorIs(t, err, ErrInvalidColor)

	res, err := svc.CreateCharacter(ctx, id, CharacterInput{Name: "  mary   jane ", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "Mary Jane", res.Player.Name)
	assert.Equal(t, 10, res.Player.Age)
	assert.Equal(t, "#FF0000", res.Player.Color)
	assert.Equal(t, state.PhasePetAssignment, res.Game.Phase)
}

func TestAssignAndNamePet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	snap, err := svc.NewGame(ctx)
	require.NoError(t, err)
	id := snap.Game.ID

	_, err = svc.AssignPet(ctx, id)
	assert.ErrorIs(t, err, ErrWrongPhase)

	_, err = svc.VerifyAge(ctx, id, 8)
	require.NoError(t, err)
	_, err = svc.CreateCharacter(ctx, id, CharacterInput{Name: "Sam"})
	require.NoError(t, err)

	_, err = svc.NamePet(ctx, id, "Rex")
	assert.ErrorIs(t, err, ErrNoPet)

	res, err := svc.AssignPet(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res.Pet)
	assert.Equal(t, actor.SpeciesDog, res.Pet.Type)
	assert.Equal(t, "Doggy", res.Pet.Name)

	// Assigning again keeps the same pet.
	again, err := svc.AssignPet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Pet.Color, again.Pet.Color)

	res, err = svc.NamePet(ctx, id, "rex")
	require.NoError(t, err)
	assert.Equal(t, "Rex", res.Pet.Name)
	assert.Equal(t, state.PhaseTown, res.Game.Phase)
	assert.Equal(t, state.LocationCenter, res.Game.Location)
}

func TestMove(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	_, err := svc.Move(ctx, id, "moon")
	assert.ErrorIs(t, err, ErrUnknownLocation)
	_, err = svc.Move(ctx, id, state.LocationPark)
	assert.ErrorIs(t, err, ErrLocationLocked)

	res, err := svc.Move(ctx, id, state.LocationHome)
	require.NoError(t, err)
	assert.Equal(t, state.LocationHome, res.Game.Location)
	assert.Contains(t, events.kinds(), "game.state_updated")
}

func TestMoveToParkCanStartBattle(t *testing.T) {
	// Floats: park roll 0.1 triggers a battle.
	svc, store, events := newTestService(t, 0.1)
	ctx := context.Background()
	id := newTownGame(t, svc)

	gs, err := store.LoadGameState(ctx, id)
	require.NoError(t, err)
	gs.Unlock(state.LocationPark)
	require.NoError(t, store.SaveGameState(ctx, id, gs))

	res, err := svc.Move(ctx, id, state.LocationPark)
	require.NoError(t, err)
	require.NotNil(t, res.Battle)
	assert.Equal(t, state.PhaseBattle, res.Game.Phase)
	assert.Equal(t, actor.EnemyWildCat, res.Battle.Enemy.Name)
	assert.Equal(t, 1, res.Battle.Enemy.Level)
	assert.Contains(t, res.Message, "jumps out")
	assert.Contains(t, events.kinds(), "battle.started")

	_, err = svc.Move(ctx, id, state.LocationHome)
	assert.ErrorIs(t, err, ErrBattleActive)
}

func TestDoActivity(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	_, err := svc.DoActivity(ctx, id, "feed_pet")
	assert.ErrorIs(t, err, ErrWrongLocation)
	_, err = svc.DoActivity(ctx, id, "juggle")
	assert.ErrorIs(t, err, ErrUnknownActivity)

	_, err = svc.Move(ctx, id, state.LocationHome)
	require.NoError(t, err)

	res, err := svc.DoActivity(ctx, id, "feed_pet")
	require.NoError(t, err)
	assert.Equal(t, 15, res.Player.Coins)
	assert.Equal(t, 100, res.Pet.Happiness)
	assert.Equal(t, 1, res.Game.CompletedActivities)
	assert.Equal(t, []state.Location{state.LocationSchool}, res.Unlocked)
	assert.Contains(t, res.Message, "School is now open!")

	for range 2 {
		_, err = svc.DoActivity(ctx, id, "cook_meal")
		require.NoError(t, err)
	}
	snap, err := svc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.True(t, snap.Game.IsUnlocked(state.LocationPark))
}

func TestDoActivityInsufficientCoins(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)
	_, err := svc.Move(ctx, id, state.LocationShop)
	require.NoError(t, err)

	_, err = svc.DoActivity(ctx, id, "vet_surgery")
	var coinsErr *InsufficientCoinsError
	require.True(t, errors.As(err, &coinsErr))
	assert.Equal(t, 40, coinsErr.Needed)
	assert.Equal(t, "You need 40 more coins", err.Error())

	p, err := store.LoadPlayer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Coins)
}

func TestBuyUseAndDiscard(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	_, err := svc.Buy(ctx, id, "apple")
	assert.ErrorIs(t, err, ErrWrongLocation)

	_, err = svc.Move(ctx, id, state.LocationShop)
	require.NoError(t, err)
	_, err = svc.Buy(ctx, id, "caviar")
	assert.ErrorIs(t, err, ErrUnknownItem)

	res, err := svc.Buy(ctx, id, "carrot")
	require.NoError(t, err)
	assert.Equal(t, 14, res.Player.Coins)
	res, err = svc.Buy(ctx, id, "carrot")
	require.NoError(t, err)
	held, ok := res.Player.FindItem("carrot")
	require.True(t, ok)
	assert.Equal(t, 2, held.Quantity)

	res, err = svc.UseItem(ctx, id, "carrot")
	require.NoError(t, err)
	assert.Equal(t, 50, res.Pet.Health)
	held, _ = res.Player.FindItem("carrot")
	assert.Equal(t, 1, held.Quantity)

	res, err = svc.DiscardItem(ctx, id, "carrot")
	require.NoError(t, err)
	_, ok = res.Player.FindItem("carrot")
	assert.False(t, ok)

	_, err = svc.UseItem(ctx, id, "carrot")
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = svc.DiscardItem(ctx, id, "carrot")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestAdopt(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)
	_, err := svc.Move(ctx, id, state.LocationShop)
	require.NoError(t, err)

	_, err = svc.Adopt(ctx, id, "dragon")
	assert.ErrorIs(t, err, ErrUnknownSpecies)

	_, err = svc.Adopt(ctx, id, actor.SpeciesCat)
	var coinsErr *InsufficientCoinsError
	require.ErrorAs(t, err, &coinsErr)
	assert.Equal(t, 80, coinsErr.Needed)

	p, err := store.LoadPlayer(ctx, id)
	require.NoError(t, err)
	p.Coins = 150
	require.NoError(t, store.SavePlayer(ctx, id, p))

	res, err := svc.Adopt(ctx, id, actor.SpeciesCat)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Player.Coins)
	assert.Equal(t, actor.SpeciesCat, res.Pet.Type)
	assert.Equal(t, "Kitty", res.Pet.Name)
}

func TestMathGame(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	_, err := svc.AnswerMath(ctx, id, 2)
	assert.ErrorIs(t, err, ErrWrongLocation)

	gs, err := store.LoadGameState(ctx, id)
	require.NoError(t, err)
	gs.Unlock(state.LocationSchool)
	require.NoError(t, store.SaveGameState(ctx, id, gs))
	_, err = svc.Move(ctx, id, state.LocationSchool)
	require.NoError(t, err)

	_, err = svc.AnswerMath(ctx, id, 2)
	assert.ErrorIs(t, err, ErrNoMathGame)

	res, err := svc.StartMath(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "1 + 1 = ?", res.MathQuestion)

	// Answers only count at school.
	_, err = svc.Move(ctx, id, state.LocationCenter)
	require.NoError(t, err)
	_, err = svc.AnswerMath(ctx, id, 2)
	assert.ErrorIs(t, err, ErrWrongLocation)
	_, err = svc.Move(ctx, id, state.LocationSchool)
	require.NoError(t, err)

	for range 9 {
		res, err = svc.AnswerMath(ctx, id, 2)
		require.NoError(t, err)
	}
	assert.Equal(t, 38, res.Player.Coins)
	res, err = svc.AnswerMath(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Player.Coins)
	assert.False(t, res.Game.MathGame.Active)
	assert.Equal(t, 1, res.Game.CompletedActivities)
	assert.Empty(t, res.MathQuestion)
}

func TestOpenTreasure(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	gs, err := store.LoadGameState(ctx, id)
	require.NoError(t, err)
	gs.Unlock(state.LocationAdventure)
	require.NoError(t, store.SaveGameState(ctx, id, gs))

	_, err = svc.OpenTreasure(ctx, id)
	assert.ErrorIs(t, err, ErrWrongLocation)

	_, err = svc.Move(ctx, id, state.LocationAdventure)
	require.NoError(t, err)
	res, err := svc.OpenTreasure(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Player.Coins)

	_, err = svc.OpenTreasure(ctx, id)
	assert.ErrorIs(t, err, ErrTreasureTaken)

	// Leaving and coming back refills the chest.
	_, err = svc.Move(ctx, id, state.LocationCenter)
	require.NoError(t, err)
	_, err = svc.Move(ctx, id, state.LocationAdventure)
	require.NoError(t, err)
	_, err = svc.OpenTreasure(ctx, id)
	assert.NoError(t, err)
}

func TestBattleWin(t *testing.T) {
	svc, store, events := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	_, err := svc.BattleAction(ctx, id, battle.ActionAttack)
	assert.ErrorIs(t, err, ErrNoBattle)

	res, err := svc.StartBattle(ctx, id, BattleInput{})
	require.NoError(t, err)
	assert.Equal(t, state.PhaseBattle, res.Game.Phase)
	assert.Equal(t, "Battle started against Wild Cat (Level 1)!", res.Message)

	_, err = svc.StartBattle(ctx, id, BattleInput{})
	assert.ErrorIs(t, err, ErrBattleActive)

	res, err = svc.BattleAction(ctx, id, battle.ActionAttack)
	require.NoError(t, err)
	assert.Len(t, res.Steps, 3)
	assert.Equal(t, 23, res.Battle.Enemy.Health)
	assert.Equal(t, 95, res.Player.Health)

	_, err = svc.LeaveBattle(ctx, id)
	assert.ErrorIs(t, err, ErrBattleActive)

	res, err = svc.BattleAction(ctx, id, battle.ActionSpecial)
	require.NoError(t, err)
	assert.Equal(t, battle.StateWin, res.Battle.State)
	assert.Equal(t, state.PhaseTown, res.Game.Phase)
	assert.Equal(t, 25, res.Player.Coins)
	assert.Equal(t, 10, res.Player.Experience)
	assert.Equal(t, 1, res.Game.CompletedBattles)
	assert.Equal(t, []state.Location{state.LocationAdventure}, res.Unlocked)

	_, err = svc.BattleAction(ctx, id, battle.ActionAttack)
	assert.ErrorIs(t, err, battle.ErrBattleOver)
	assert.True(t, IsBattleError(err))

	kinds := events.kinds()
	assert.Contains(t, kinds, "battle.started")
	assert.Contains(t, kinds, "battle.step")
	assert.Contains(t, kinds, "battle.ended")

	res, err = svc.LeaveBattle(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, res.Battle)
	b, err := store.LoadBattle(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestStartBattleNamedEnemy(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	_, err := svc.StartBattle(ctx, id, BattleInput{Enemy: "Dragon"})
	assert.ErrorIs(t, err, ErrUnknownEnemy)

	res, err := svc.StartBattle(ctx, id, BattleInput{Enemy: "mischievous_monkey", Level: 3})
	require.NoError(t, err)
	assert.Equal(t, 52, res.Battle.Enemy.MaxHealth)
	assert.Equal(t, 3, res.Battle.Enemy.Level)
}

func TestStartBattleTooTired(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	p, err := store.LoadPlayer(ctx, id)
	require.NoError(t, err)
	p.Health = 0
	require.NoError(t, store.SavePlayer(ctx, id, p))

	_, err = svc.StartBattle(ctx, id, BattleInput{})
	assert.ErrorIs(t, err, ErrTooTired)
}

func TestBattleLoss(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	p, err := store.LoadPlayer(ctx, id)
	require.NoError(t, err)
	p.Health = 1
	require.NoError(t, store.SavePlayer(ctx, id, p))

	_, err = svc.StartBattle(ctx, id, BattleInput{Enemy: actor.EnemySnake, Level: 3})
	require.NoError(t, err)

	res, err := svc.BattleAction(ctx, id, battle.ActionDefend)
	require.NoError(t, err)
	assert.Equal(t, battle.StateLose, res.Battle.State)
	assert.Equal(t, state.PhaseTown, res.Game.Phase)
	assert.Equal(t, 0, res.Game.CompletedBattles)
	assert.Equal(t, 20, res.Player.Coins)
}

func TestSaveAndLoad(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	data, err := svc.Save(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sam", data.Player.Name)
	require.NotNil(t, data.Pet)

	other := newTownGame(t, svc)
	data.Player.Coins = -5
	data.GameProgress.CompletedBattles = 2
	res, err := svc.Load(ctx, other, data)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Player.Coins)
	assert.Equal(t, 2, res.Game.CompletedBattles)
	assert.True(t, res.Game.IsUnlocked(state.LocationAdventure))
	assert.Equal(t, state.PhaseTown, res.Game.Phase)

	_, err = svc.Load(ctx, other, nil)
	assert.ErrorIs(t, err, ErrInvalidSave)
}

func TestLoadPetChecks(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	data, err := svc.Save(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, data.Pet)

	data.Pet.Name = "  rex  "
	res, err := svc.Load(ctx, id, data)
	require.NoError(t, err)
	assert.Equal(t, "Rex", res.Pet.Name)

	data.Pet.Type = "dragon"
	_, err = svc.Load(ctx, id, data)
	assert.ErrorIs(t, err, ErrInvalidSave)

	snap, err := svc.Snapshot(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, snap.Pet)
	assert.Equal(t, actor.SpeciesDog, snap.Pet.Type)
	assert.Equal(t, "Rex", snap.Pet.Name)
}

func TestGameLocksReleased(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for range 100 {
		_, err := svc.Snapshot(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrGameNotFound)
	}
	assert.Empty(t, svc.locks)

	id := newTownGame(t, svc)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Move(ctx, id, state.LocationHome)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = svc.Delete(ctx, id)
	}()
	wg.Wait()
	assert.Empty(t, svc.locks)
}

func TestResetAndDelete(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	res, err := svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, res.Game.ID)
	assert.Equal(t, state.PhaseAgeVerification, res.Game.Phase)
	assert.Nil(t, res.Pet)
	assert.Empty(t, res.Player.Name)

	require.NoError(t, svc.Delete(ctx, id))
	gs, err := store.LoadGameState(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gs)
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrGameNotFound)
}

func TestPersistFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	id := newTownGame(t, svc)

	store.SetSaveError(errors.New("disk full"))
	_, err := svc.Move(ctx, id, state.LocationHome)
	assert.Error(t, err)

	store.SetSaveError(nil)
	snap, err := svc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, state.LocationCenter, snap.Game.Location)
}

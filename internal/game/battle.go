package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/metrics"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/town"
)

// BattleInput picks the opponent. An empty Enemy draws a forest encounter.
type BattleInput struct {
	Enemy string
	Level int
}

func (s *Service) startBattle(ctx context.Context, sess *session, enemy *actor.Enemy) {
	sess.battle = battle.New(uuid.NewString(), enemy)
	sess.battleDirty = true
	sess.gs.SetPhase(state.PhaseBattle)
	s.logger.Info("Battle started", "game_id", sess.id, "enemy", enemy.Name, "level", enemy.Level)
	if s.events != nil {
		if err := s.events.PublishBattleStarted(ctx, sess.id, enemy.Name, enemy.Level); err != nil {
			s.logger.Warn("Failed to publish battle start", "game_id", sess.id, "error", err)
		}
	}
}

// StartBattle begins a fight. Only one battle may be active per game.
func (s *Service) StartBattle(ctx context.Context, id uuid.UUID, in BattleInput) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		if sess.battle != nil && !sess.battle.IsOver() {
			return ErrBattleActive
		}
		if sess.player.IsDefeated() {
			return ErrTooTired
		}

		var enemy *actor.Enemy
		if in.Enemy == "" {
			enemy = town.RandomEncounter(s.rand).Spawn(uuid.NewString())
		} else {
			tmpl, ok := actor.LookupEnemy(in.Enemy)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownEnemy, in.Enemy)
			}
			enemy = actor.NewEnemy(uuid.NewString(), tmpl, max(1, in.Level))
		}
		s.startBattle(ctx, sess, enemy)
		res.Message = sess.battle.Log[len(sess.battle.Log)-1]
		return nil
	})
}

// BattleAction plays one round: the chosen action, then the pet and the
// enemy. The steps come back for the client to pace.
func (s *Service) BattleAction(ctx context.Context, id uuid.UUID, action int) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		b := sess.battle
		if b == nil {
			return ErrNoBattle
		}
		steps, err := b.Act(action, battle.Env{
			Player: sess.player,
			Pet:    sess.pet,
			Rand:   s.rand,
			Finder: town.RandomFindItem,
		})
		if err != nil {
			return err
		}
		sess.battleDirty = true
		res.Steps = steps
		s.publishSteps(ctx, sess.id, steps)

		if !b.IsOver() {
			return nil
		}
		outcome := "lose"
		if b.Won() {
			outcome = "win"
			res.Unlocked = sess.gs.IncrementCompletedBattles()
			metrics.CoinsEarned.Add(float64(b.Enemy.Coins))
		}
		metrics.BattlesFinished.WithLabelValues(b.Enemy.Type, outcome).Inc()
		sess.gs.SetPhase(state.PhaseTown)

		res.Message = unlockMessage(steps[len(steps)-1].Message, res.Unlocked)
		if b.Won() && sess.gs.Finished() {
			res.Message = fmt.Sprintf("%s You have won all %d battles!", res.Message, sess.gs.TotalBattles)
		}
		s.logger.Info("Battle finished", "game_id", sess.id, "enemy", b.Enemy.Name, "outcome", outcome, "turns", b.Turn)
		if s.events != nil {
			coins, xp := 0, 0
			if b.Won() {
				coins, xp = b.Enemy.Coins, b.Enemy.Experience
			}
			if err := s.events.PublishBattleEnded(ctx, sess.id, b.Won(), coins, xp); err != nil {
				s.logger.Warn("Failed to publish battle end", "game_id", sess.id, "error", err)
			}
		}
		return nil
	})
}

func (s *Service) publishSteps(ctx context.Context, id uuid.UUID, steps []battle.Step) {
	if s.events == nil {
		return
	}
	for _, st := range steps {
		if err := s.events.PublishBattleStep(ctx, id, st.Turn, string(st.State), st.Message); err != nil {
			s.logger.Warn("Failed to publish battle step", "game_id", id, "error", err)
			return
		}
	}
}

// LeaveBattle clears a finished battle.
func (s *Service) LeaveBattle(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if sess.battle == nil {
			return ErrNoBattle
		}
		if !sess.battle.IsOver() {
			return ErrBattleActive
		}
		sess.battle = nil
		sess.battleDirty = true
		if sess.gs.Phase == state.PhaseBattle {
			sess.gs.SetPhase(state.PhaseTown)
		}
		res.Message = "Back to town."
		return nil
	})
}

// IsBattleError reports errors raised by the battle engine itself.
func IsBattleError(err error) bool {
	return errors.Is(err, battle.ErrNotPlayerTurn) ||
		errors.Is(err, battle.ErrBattleOver) ||
		errors.Is(err, battle.ErrUnknownAction)
}

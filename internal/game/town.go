package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/metrics"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/town"
)

func unlockMessage(msg string, unlocked []state.Location) string {
	for _, l := range unlocked {
		if p, ok := town.LookupPlace(l); ok {
			msg = fmt.Sprintf("%s %s is now open!", msg, p.Name)
		}
	}
	return msg
}

// Move walks to another location. Entering the park may start a battle.
func (s *Service) Move(ctx context.Context, id uuid.UUID, to state.Location) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		place, ok := town.LookupPlace(to)
		if !ok || !slices.Contains(state.Locations, to) {
			return fmt.Errorf("%w: %s", ErrUnknownLocation, to)
		}
		if !sess.gs.IsUnlocked(to) {
			return fmt.Errorf("%w: %s", ErrLocationLocked, place.Name)
		}
		sess.gs.SetLocation(to)
		res.Message = fmt.Sprintf("You arrive at %s.", place.Name)

		if to == state.LocationPark && !sess.player.IsDefeated() && s.rand.Float64() < town.ParkBattleChance {
			enemy := town.RandomParkEnemy(uuid.NewString(), s.rand)
			s.startBattle(ctx, sess, enemy)
			res.Message = fmt.Sprintf("%s A wild %s jumps out!", res.Message, enemy.Name)
		}
		return nil
	})
}

// DoActivity performs an activity at the current location.
func (s *Service) DoActivity(ctx context.Context, id uuid.UUID, activityID string) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		act, ok := town.LookupActivity(activityID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownActivity, activityID)
		}
		if err := requireLocation(sess.gs, act.Location); err != nil {
			return err
		}
		out, err := act.Perform(sess.player, sess.pet, s.rand)
		if err != nil {
			return err
		}

		metrics.ActivitiesCompleted.WithLabelValues(act.ID).Inc()
		metrics.CoinsSpent.Add(float64(act.Cost))
		metrics.CoinsEarned.Add(float64(out.CoinsFound))

		res.Unlocked = sess.gs.IncrementCompletedActivities()
		res.Message = unlockMessage(out.Message, res.Unlocked)
		return nil
	})
}

// Buy purchases a shop item into the inventory.
func (s *Service) Buy(ctx context.Context, id uuid.UUID, itemID string) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		if err := requireLocation(sess.gs, state.LocationShop); err != nil {
			return err
		}
		it, ok := town.LookupShopItem(itemID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
		}
		if err := town.Buy(sess.player, it); err != nil {
			return err
		}
		metrics.ItemsBought.WithLabelValues(it.ID).Inc()
		metrics.CoinsSpent.Add(float64(it.Price))
		res.Message = fmt.Sprintf("You bought %s.", it.Name)
		return nil
	})
}

// Adopt swaps the current pet for a new one of the chosen species.
func (s *Service) Adopt(ctx context.Context, id uuid.UUID, species actor.Species) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		if err := requireLocation(sess.gs, state.LocationShop); err != nil {
			return err
		}
		if _, ok := actor.LookupSpecies(species); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSpecies, species)
		}
		if err := town.Charge(sess.player, town.AdoptionPrice); err != nil {
			return err
		}
		pet, err := actor.NewPet(species, "", "")
		if err != nil {
			return err
		}
		sess.pet = pet
		metrics.CoinsSpent.Add(town.AdoptionPrice)
		res.Message = fmt.Sprintf("You adopted %s the %s!", pet.Name, pet.Type)
		return nil
	})
}

// UseItem applies one unit of a held item.
func (s *Service) UseItem(ctx context.Context, id uuid.UUID, itemID string) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requirePhase(sess.gs, state.PhaseTown, state.PhaseBattle); err != nil {
			return err
		}
		if _, ok := sess.player.FindItem(itemID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
		}
		it, err := town.UseItem(sess.player, sess.pet, itemID)
		if err != nil {
			if errors.Is(err, actor.ErrNoPet) {
				return ErrNoPet
			}
			return err
		}
		res.Message = fmt.Sprintf("You used %s.", it.Name)
		return nil
	})
}

// DiscardItem throws one unit of a held item away.
func (s *Service) DiscardItem(ctx context.Context, id uuid.UUID, itemID string) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		it, ok := sess.player.FindItem(itemID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
		}
		sess.player.RemoveItem(itemID)
		res.Message = fmt.Sprintf("You threw away %s.", it.Name)
		return nil
	})
}

// StartMath begins a math quiz at school.
func (s *Service) StartMath(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		if err := requireLocation(sess.gs, state.LocationSchool); err != nil {
			return err
		}
		town.StartMath(&sess.gs.MathGame, s.rand)
		res.Message = fmt.Sprintf("Math time! %d problems, %d coins each.", town.MathProblems, town.MathCoinsPerCorrect)
		return nil
	})
}

// AnswerMath scores one answer and pays for it. Finishing a quiz counts as
// a completed activity.
func (s *Service) AnswerMath(ctx context.Context, id uuid.UUID, answer int) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		if err := requireLocation(sess.gs, state.LocationSchool); err != nil {
			return err
		}
		if !sess.gs.MathGame.Active {
			return ErrNoMathGame
		}
		out, err := town.AnswerMath(&sess.gs.MathGame, answer, s.rand)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNoMathGame, err)
		}
		paid := out.Coins + out.Bonus
		sess.player.UpdateCoins(paid)
		metrics.CoinsEarned.Add(float64(paid))

		res.Message = out.Message
		if out.Done {
			metrics.ActivitiesCompleted.WithLabelValues("math_game").Inc()
			res.Unlocked = sess.gs.IncrementCompletedActivities()
			res.Message = unlockMessage(res.Message, res.Unlocked)
		}
		return nil
	})
}

// OpenTreasure opens the forest chest, once per visit.
func (s *Service) OpenTreasure(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requireTown(sess.gs); err != nil {
			return err
		}
		if err := requireLocation(sess.gs, state.LocationAdventure); err != nil {
			return err
		}
		if sess.gs.Adventure.TreasureFound {
			return ErrTreasureTaken
		}
		coins := town.TreasureCoins(s.rand)
		sess.player.UpdateCoins(coins)
		sess.gs.Adventure.TreasureFound = true
		metrics.CoinsEarned.Add(float64(coins))
		res.Message = fmt.Sprintf("You found a treasure chest with %d coins!", coins)
		return nil
	})
}

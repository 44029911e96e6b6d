package game

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CharacterInput is the character creation form.
type CharacterInput struct {
	Name  string
	Age   int
	Color string
}

func checkAge(age int) error {
	switch {
	case age <= 0 || age > actor.MaxAge:
		return fmt.Errorf("%w: %d", ErrInvalidAge, age)
	case age < actor.MinAge:
		return ErrTooYoung
	}
	return nil
}

func requirePhase(gs *state.GameState, phases ...state.Phase) error {
	for _, p := range phases {
		if gs.Phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: game is in %s", ErrWrongPhase, gs.Phase)
}

// VerifyAge checks the player's age and opens character creation.
func (s *Service) VerifyAge(ctx context.Context, id uuid.UUID, age int) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requirePhase(sess.gs, state.PhaseWelcome, state.PhaseAgeVerification); err != nil {
			return err
		}
		if err := checkAge(age); err != nil {
			return err
		}
		sess.player.Age = age
		sess.gs.SetPhase(state.PhaseCharacterCreation)
		res.Message = "Welcome! Let's create your character."
		return nil
	})
}

// CreateCharacter names the player and moves on to pet assignment. A zero
// age keeps the verified one.
func (s *Service) CreateCharacter(ctx context.Context, id uuid.UUID, in CharacterInput) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requirePhase(sess.gs, state.PhaseCharacterCreation); err != nil {
			return err
		}
		name, err := s.names.Clean(in.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidName, err)
		}
		age := in.Age
		if age == 0 {
			age = sess.player.Age
		}
		if err := checkAge(age); err != nil {
			return err
		}
		color := in.Color
		if color == "" {
			color = actor.DefaultPlayerColor
		}
		if !hexColor.MatchString(color) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, color)
		}

		sess.player.Name = s.names.DisplayName(name)
		sess.player.Age = age
		sess.player.Color = color
		sess.gs.SetPhase(state.PhasePetAssignment)
		res.Message = fmt.Sprintf("Nice to meet you, %s!", sess.player.Name)
		return nil
	})
}

// AssignPet gives the player a random pet. Calling it again returns the same
// pet until it is named.
func (s *Service) AssignPet(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requirePhase(sess.gs, state.PhasePetAssignment); err != nil {
			return err
		}
		if sess.pet == nil {
			sess.pet = actor.NewRandomPet(s.rand)
			s.logger.Info("Pet assigned", "game_id", sess.id, "species", sess.pet.Type)
		}
		res.Message = fmt.Sprintf("You got a %s named %s!", sess.pet.Type, sess.pet.Name)
		return nil
	})
}

// NamePet renames the assigned pet and enters town. An empty name keeps the
// default.
func (s *Service) NamePet(ctx context.Context, id uuid.UUID, name string) (*Result, error) {
	return s.update(ctx, id, func(sess *session, res *Result) error {
		if err := requirePhase(sess.gs, state.PhasePetAssignment, state.PhaseTown); err != nil {
			return err
		}
		if sess.pet == nil {
			return ErrNoPet
		}
		if name != "" {
			clean, err := s.names.Clean(name)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidName, err)
			}
			sess.pet.Name = s.names.DisplayName(clean)
		}
		if sess.gs.Phase == state.PhasePetAssignment {
			sess.gs.SetPhase(state.PhaseTown)
			sess.gs.SetLocation(state.LocationCenter)
		}
		res.Message = fmt.Sprintf("Say hello to %s!", sess.pet.Name)
		return nil
	})
}

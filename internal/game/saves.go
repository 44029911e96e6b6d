package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/save"
)

// Save exports the game as a save document.
func (s *Service) Save(ctx context.Context, id uuid.UUID) (*save.Data, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return save.Export(sess.player, sess.pet, sess.gs), nil
}

// Load replaces the game's stores with a save document. Any battle is
// dropped and play continues in town.
func (s *Service) Load(ctx context.Context, id uuid.UUID, data *save.Data) (*Result, error) {
	if data == nil || data.Player == nil {
		return nil, fmt.Errorf("%w: save has no player", ErrInvalidSave)
	}
	var species actor.SpeciesTemplate
	if data.Pet != nil {
		var ok bool
		if species, ok = actor.LookupSpecies(data.Pet.Type); !ok {
			return nil, fmt.Errorf("%w: unknown pet type %q", ErrInvalidSave, data.Pet.Type)
		}
	}
	return s.update(ctx, id, func(sess *session, res *Result) error {
		player, pet := data.Apply(sess.gs)
		if player.Name != "" {
			clean, err := s.names.Clean(player.Name)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidName, err)
			}
			player.Name = s.names.DisplayName(clean)
		}
		if pet != nil {
			if pet.Name == "" {
				pet.Name = species.DefaultName
			} else {
				clean, err := s.names.Clean(pet.Name)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidName, err)
				}
				pet.Name = s.names.DisplayName(clean)
			}
		}
		sess.player, sess.pet = player, pet
		sess.battle = nil
		sess.battleDirty = true
		res.Message = "Game loaded."
		return nil
	})
}

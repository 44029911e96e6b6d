package actor

import "errors"

// ErrNoPet is returned when a pet effect is applied without a pet.
var ErrNoPet = errors.New("no pet")

// ApplyEffect applies e to the player or the pet. Unknown properties are a
// no-op and report false. Effects aimed at the pet need a non-nil pet.
func ApplyEffect(e Effect, player *Player, pet *Pet) (bool, error) {
	switch e.Target {
	case TargetPet:
		if pet == nil {
			return false, ErrNoPet
		}
		return pet.UpdateStat(e.Property, e.Value), nil
	case TargetPlayer, TargetSelf, "":
		if player == nil {
			return false, nil
		}
		return player.UpdateStat(e.Property, e.Value), nil
	default:
		return false, nil
	}
}

// ApplyEffects applies each effect in order, stopping at the first error.
func ApplyEffects(effects []Effect, player *Player, pet *Pet) error {
	for _, e := range effects {
		if _, err := ApplyEffect(e, player, pet); err != nil {
			return err
		}
	}
	return nil
}

package actor

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

// AttrAttack is the d20 attribute key holding a combatant's attack stat.
const AttrAttack = "attack"

// Combatant is the battle read model of a player, pet or enemy. Its d20 actor
// carries HP, AC (the defense stat) and the active defense buffs as combat
// modifiers keyed by reason.
type Combatant struct {
	Name  string
	Actor *d20.Actor
	down  bool
}

// NewCombatant builds a combatant snapshot.
func NewCombatant(name string, hp, maxHP, attack, defense int, buffs map[string]int) (*Combatant, error) {
	if maxHP <= 0 {
		maxHP = 1
	}
	a, err := d20.NewActor(name).
		WithHP(maxHP).
		WithAC(defense).
		WithAttributes(map[string]int{AttrAttack: attack}).
		WithCombatModifiers(buffs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build combatant %s: %w", name, err)
	}
	if hp > 0 && hp != maxHP {
		if err := a.SetHP(min(hp, maxHP)); err != nil {
			return nil, fmt.Errorf("failed to set HP for %s: %w", name, err)
		}
	}
	return &Combatant{Name: name, Actor: a, down: hp <= 0}, nil
}

// PlayerCombatant snapshots the player with the given buffs.
func PlayerCombatant(p *Player, buffs map[string]int) (*Combatant, error) {
	return NewCombatant("player", p.Health, p.MaxHealth, p.Attack, p.Defense, buffs)
}

// PetCombatant snapshots the pet with the given buffs.
func PetCombatant(p *Pet, buffs map[string]int) (*Combatant, error) {
	return NewCombatant("pet", p.Health, p.MaxHealth, p.Attack, p.Defense, buffs)
}

// EnemyCombatant snapshots the enemy with the given buffs.
func EnemyCombatant(e *Enemy, buffs map[string]int) (*Combatant, error) {
	return NewCombatant(e.Type, e.Health, e.MaxHealth, e.Attack, e.Defense, buffs)
}

// Health is the current HP, 0 when the combatant is down.
func (c *Combatant) Health() int {
	if c.down {
		return 0
	}
	return c.Actor.HP()
}

// AttackPower reads the attack attribute.
func (c *Combatant) AttackPower() int {
	v, _ := c.Actor.Attribute(AttrAttack)
	return v
}

// BuffTotal sums the active combat modifiers.
func (c *Combatant) BuffTotal() int {
	total := 0
	for _, mod := range c.Actor.GetCombatModifiers() {
		total += mod.Value
	}
	return total
}

// EffectiveDefense is base defense plus active buffs.
func (c *Combatant) EffectiveDefense() int {
	return max(0, c.Actor.AC()+c.BuffTotal())
}

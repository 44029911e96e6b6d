// Package battle runs the turn-based fight between the player, their pet and
// a single enemy.
//
// A round is: player turn (chosen action), pet turn (automatic), enemy turn
// (automatic). Act resolves a whole round synchronously and returns the steps
// so clients can pace the display.
package battle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
)

// State is a node of the battle state machine.
type State string

const (
	StateStart      State = "start"
	StatePlayerTurn State = "player_turn"
	StatePetTurn    State = "pet_turn"
	StateEnemyTurn  State = "enemy_turn"
	StateWin        State = "win"
	StateLose       State = "lose"
)

var (
	ErrNotPlayerTurn = errors.New("it is not the player's turn")
	ErrBattleOver    = errors.New("battle is over")
	ErrUnknownAction = errors.New("unknown battle action")
)

// Buff is a temporary defense bonus. Turns counts remaining enemy turns.
type Buff struct {
	Reason string       `json:"reason"`
	Target actor.Target `json:"target"`
	Value  int          `json:"value"`
	Turns  int          `json:"turns"`
}

// Step is one resolved turn.
type Step struct {
	Turn    int    `json:"turn"`
	State   State  `json:"state"`
	Message string `json:"message"`
}

// ItemFinder draws a random item for abilities that find things.
type ItemFinder func(r actor.Rand) actor.InventoryItem

// Env is what a round reads and mutates besides the battle itself.
type Env struct {
	Player *actor.Player
	Pet    *actor.Pet
	Rand   actor.Rand
	Finder ItemFinder
}

// Battle is the persisted state of one fight.
type Battle struct {
	ID        string       `json:"id"`
	Enemy     *actor.Enemy `json:"enemy"`
	State     State        `json:"state"`
	Turn      int          `json:"turn"`
	Log       []string     `json:"log"`
	Buffs     []Buff       `json:"buffs,omitempty"`
	PetEvade  bool         `json:"pet_evade,omitempty"`
	Stunned   bool         `json:"enemy_stunned,omitempty"`
	MissPct   int          `json:"enemy_miss_chance,omitempty"`
	Rewarded  bool         `json:"rewarded,omitempty"`
	LastSteps []Step       `json:"last_steps,omitempty"`
}

// New starts a battle against enemy. The player moves first.
func New(id string, enemy *actor.Enemy) *Battle {
	b := &Battle{
		ID:    id,
		Enemy: enemy,
		State: StateStart,
		Turn:  1,
		Log:   []string{},
	}
	b.State = StatePlayerTurn
	b.Log = append(b.Log, fmt.Sprintf("Battle started against %s (Level %d)!", enemy.Name, enemy.Level))
	return b
}

// IsOver reports whether the battle reached a terminal state.
func (b *Battle) IsOver() bool {
	return b.State == StateWin || b.State == StateLose
}

// Won reports a player victory.
func (b *Battle) Won() bool {
	return b.State == StateWin
}

// Act performs the player's action and resolves the pet and enemy turns that
// follow. It returns every step taken this round.
func (b *Battle) Act(index int, env Env) ([]Step, error) {
	if b.IsOver() {
		return nil, ErrBattleOver
	}
	if b.State != StatePlayerTurn {
		return nil, ErrNotPlayerTurn
	}
	action, ok := LookupAction(index)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, index)
	}
	if env.Rand == nil {
		env.Rand = actor.DefaultRand()
	}

	var steps []Step
	emit := func(msg string) {
		b.Log = append(b.Log, msg)
		steps = append(steps, Step{Turn: b.Turn, State: b.State, Message: msg})
	}

	if err := b.playerTurn(action, env, emit); err != nil {
		return nil, err
	}
	if !b.IsOver() {
		b.State = StatePetTurn
		if err := b.petTurn(env, emit); err != nil {
			return nil, err
		}
	}
	if !b.IsOver() {
		b.State = StateEnemyTurn
		if err := b.enemyTurn(env, emit); err != nil {
			return nil, err
		}
	}
	if !b.IsOver() {
		b.Turn++
		b.tick()
		b.State = StatePlayerTurn
	}
	if b.State == StateWin && !b.Rewarded {
		env.Player.UpdateCoins(b.Enemy.Coins)
		env.Player.Experience += b.Enemy.Experience
		b.Rewarded = true
		emit(fmt.Sprintf("You won! You earned %d coins and %d experience.", b.Enemy.Coins, b.Enemy.Experience))
	}
	if b.State == StateLose {
		emit("You were defeated. Rest up and try again!")
	}
	b.LastSteps = steps
	return steps, nil
}

func (b *Battle) playerTurn(action Action, env Env, emit func(string)) error {
	p := env.Player
	switch {
	case action.DefenseUp > 0:
		b.Buffs = append(b.Buffs, Buff{Reason: "defend", Target: actor.TargetPlayer, Value: action.DefenseUp, Turns: 1})
		emit(fmt.Sprintf("You brace yourself. Defense +%d!", action.DefenseUp))
		return nil
	case action.Heal > 0:
		before := p.Health
		p.UpdateHealth(action.Heal)
		emit(fmt.Sprintf("You heal for %d health.", p.Health-before))
		return nil
	}

	attacker, err := actor.PlayerCombatant(p, b.buffsFor(actor.TargetPlayer))
	if err != nil {
		return err
	}
	defender, err := actor.EnemyCombatant(b.Enemy, nil)
	if err != nil {
		return err
	}
	base := math.Max(0, float64(attacker.AttackPower())-float64(defender.EffectiveDefense())/2)
	dmg := int(math.Floor(base * action.Multiplier))
	b.Enemy.TakeDamage(dmg)
	emit(fmt.Sprintf("You used %s and dealt %d damage!", action.Name, dmg))
	if b.Enemy.IsDefeated() {
		b.State = StateWin
		emit(fmt.Sprintf("%s was defeated!", b.Enemy.Name))
	}
	return nil
}

func (b *Battle) petTurn(env Env, emit func(string)) error {
	pet := env.Pet
	if pet == nil {
		return nil
	}
	if pet.IsFainted() {
		emit(fmt.Sprintf("%s is too tired to help and rests.", pet.Name))
		return nil
	}
	if pet.UseSpecialAbility() {
		b.useAbility(pet.SpecialAbility, env, emit)
		return nil
	}

	attacker, err := actor.PetCombatant(pet, b.buffsFor(actor.TargetPet))
	if err != nil {
		return err
	}
	defender, err := actor.EnemyCombatant(b.Enemy, nil)
	if err != nil {
		return err
	}
	dmg := int(math.Floor(math.Max(0, float64(attacker.AttackPower())-float64(defender.EffectiveDefense())/3)))
	b.Enemy.TakeDamage(dmg)
	pet.DecreaseCooldowns()
	emit(fmt.Sprintf("%s attacks and deals %d damage!", pet.Name, dmg))
	if b.Enemy.IsDefeated() {
		b.State = StateWin
		emit(fmt.Sprintf("%s was defeated!", b.Enemy.Name))
	}
	return nil
}

func (b *Battle) enemyTurn(env Env, emit func(string)) error {
	e := b.Enemy
	if b.Stunned {
		b.Stunned = false
		emit(fmt.Sprintf("%s is stuck and can't move!", e.Name))
		return nil
	}

	pet := env.Pet
	targetPet := pet != nil && !pet.IsFainted() && env.Rand.Float64() <= 0.5

	if b.MissPct > 0 {
		chance := b.MissPct
		b.MissPct = 0
		if env.Rand.Float64()*100 < float64(chance) {
			emit(fmt.Sprintf("%s is confused and misses!", e.Name))
			return nil
		}
	}

	attacker, err := actor.EnemyCombatant(e, nil)
	if err != nil {
		return err
	}

	if targetPet {
		if b.PetEvade {
			b.PetEvade = false
			emit(fmt.Sprintf("%s hops out of the way!", pet.Name))
			return nil
		}
		defender, err := actor.PetCombatant(pet, b.buffsFor(actor.TargetPet))
		if err != nil {
			return err
		}
		dmg := enemyDamage(attacker, defender)
		pet.UpdateHealth(-dmg)
		emit(fmt.Sprintf("%s attacks %s for %d damage!", e.Name, pet.Name, dmg))
		if pet.IsFainted() {
			emit(fmt.Sprintf("%s is too tired to continue!", pet.Name))
		}
		return nil
	}

	// Fresh snapshot: the player may have healed this round.
	defender, err := actor.PlayerCombatant(env.Player, b.buffsFor(actor.TargetPlayer))
	if err != nil {
		return err
	}
	dmg := enemyDamage(attacker, defender)
	env.Player.UpdateHealth(-dmg)
	emit(fmt.Sprintf("%s attacks you for %d damage!", e.Name, dmg))
	if env.Player.IsDefeated() {
		b.State = StateLose
	}
	return nil
}

func enemyDamage(attacker, defender *actor.Combatant) int {
	raw := float64(attacker.AttackPower()) - float64(defender.EffectiveDefense())/2
	return max(1, int(math.Floor(raw)))
}

func (b *Battle) useAbility(a actor.SpecialAbility, env Env, emit func(string)) {
	pet := env.Pet
	eff := a.Effect
	reason := strings.ReplaceAll(strings.ToLower(a.Name), " ", "_")
	msg := fmt.Sprintf("%s used %s!", pet.Name, a.Name)

	switch {
	case eff.Target == actor.TargetEnemy && eff.Property == actor.PropHealth:
		dmg := -eff.Value
		b.Enemy.TakeDamage(dmg)
		emit(fmt.Sprintf("%s It deals %d damage!", msg, dmg))
		if b.Enemy.IsDefeated() {
			b.State = StateWin
			emit(fmt.Sprintf("%s was defeated!", b.Enemy.Name))
		}
	case eff.Target == actor.TargetPlayer && eff.Property == actor.PropDefense:
		b.Buffs = append(b.Buffs, Buff{Reason: reason, Target: actor.TargetPlayer, Value: eff.Value, Turns: 3})
		emit(fmt.Sprintf("%s Your defense rises by %d!", msg, eff.Value))
	case eff.Target == actor.TargetSelf && eff.Property == actor.PropDefense:
		b.Buffs = append(b.Buffs, Buff{Reason: reason, Target: actor.TargetPet, Value: eff.Value, Turns: 1})
		emit(fmt.Sprintf("%s %s's defense rises by %d!", msg, pet.Name, eff.Value))
	case eff.Property == actor.PropEvasion:
		b.PetEvade = true
		emit(fmt.Sprintf("%s %s will dodge the next attack!", msg, pet.Name))
	case eff.Target == actor.TargetPlayer && eff.Property == actor.PropHealth:
		env.Player.UpdateHealth(eff.Value)
		pet.UpdateHealth(eff.Value)
		emit(fmt.Sprintf("%s You and %s recover %d health!", msg, pet.Name, eff.Value))
	case eff.Property == actor.PropStun:
		b.Stunned = true
		emit(fmt.Sprintf("%s %s can't move next turn!", msg, b.Enemy.Name))
	case eff.Property == actor.PropAccuracy:
		b.MissPct = abs(eff.Value)
		emit(fmt.Sprintf("%s %s is confused!", msg, b.Enemy.Name))
	case eff.Property == actor.PropItemFind:
		if env.Finder == nil {
			emit(fmt.Sprintf("%s but found nothing.", strings.TrimSuffix(msg, "!")))
			return
		}
		item := env.Finder(env.Rand)
		env.Player.AddItem(item)
		emit(fmt.Sprintf("%s Found %s!", msg, item.Name))
	default:
		emit(msg)
	}
}

func (b *Battle) buffsFor(t actor.Target) map[string]int {
	out := map[string]int{}
	for _, buff := range b.Buffs {
		if buff.Target == t {
			out[buff.Reason] += buff.Value
		}
	}
	return out
}

// tick ends a round: every buff loses a turn and spent ones drop.
func (b *Battle) tick() {
	kept := b.Buffs[:0]
	for _, buff := range b.Buffs {
		buff.Turns--
		if buff.Turns > 0 {
			kept = append(kept, buff)
		}
	}
	b.Buffs = kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

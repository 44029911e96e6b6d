package actor

import "fmt"

// Species is one of the adoptable pet kinds.
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesRabbit  Species = "rabbit"
	SpeciesBird    Species = "bird"
	SpeciesFrog    Species = "frog"
	SpeciesTurtle  Species = "turtle"
	SpeciesFish    Species = "fish"
	SpeciesHamster Species = "hamster"
)

// SpecialAbility is a pet's signature move with a cooldown counted in pet turns.
type SpecialAbility struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Effect          Effect `json:"effect"`
	Cooldown        int    `json:"cooldown"`
	CurrentCooldown int    `json:"current_cooldown"`
}

// Ready reports whether the ability can be used this turn.
func (a SpecialAbility) Ready() bool {
	return a.CurrentCooldown == 0
}

// Pet is the child's companion. It is persisted as its own store.
type Pet struct {
	Type           Species        `json:"type"`
	Name           string         `json:"name"`
	Color          string         `json:"color"`
	Health         int            `json:"health"`
	MaxHealth      int            `json:"max_health"`
	Attack         int            `json:"attack"`
	Defense        int            `json:"defense"`
	Happiness      int            `json:"happiness"`
	SpecialAbility SpecialAbility `json:"special_ability"`
}

// NewPet builds a pet from the species template. An empty name or color
// falls back to the template defaults.
func NewPet(species Species, name, color string) (*Pet, error) {
	tmpl, ok := LookupSpecies(species)
	if !ok {
		return nil, fmt.Errorf("unknown species: %s", species)
	}
	if name == "" {
		name = tmpl.DefaultName
	}
	if color == "" {
		color = tmpl.Colors[0]
	}
	return &Pet{
		Type:           tmpl.Type,
		Name:           name,
		Color:          color,
		Health:         tmpl.Health,
		MaxHealth:      tmpl.Health,
		Attack:         tmpl.Attack,
		Defense:        tmpl.Defense,
		Happiness:      tmpl.Happiness,
		SpecialAbility: tmpl.Ability,
	}, nil
}

// NewRandomPet picks a species and one of its colors at random.
func NewRandomPet(r Rand) *Pet {
	tmpl := speciesTemplates[r.IntN(len(speciesTemplates))]
	color := tmpl.Colors[r.IntN(len(tmpl.Colors))]
	pet, _ := NewPet(tmpl.Type, "", color)
	return pet
}

// UpdateHealth adds amount and clamps to [0, MaxHealth].
func (p *Pet) UpdateHealth(amount int) {
	p.Health = clamp(p.Health+amount, MinStat, p.MaxHealth)
}

// UpdateHappiness adds amount and clamps to [0, 100].
func (p *Pet) UpdateHappiness(amount int) {
	p.Happiness = clamp(p.Happiness+amount, MinStat, MaxHappiness)
}

// UpdateStat changes a named stat, keeping clamps. Unknown properties are ignored.
func (p *Pet) UpdateStat(prop Property, amount int) bool {
	switch prop {
	case PropHealth:
		p.UpdateHealth(amount)
	case PropHappiness:
		p.UpdateHappiness(amount)
	case PropMaxHealth:
		p.MaxHealth = max(1, p.MaxHealth+amount)
		p.Health = min(p.Health, p.MaxHealth)
	case PropAttack:
		p.Attack = max(0, p.Attack+amount)
	case PropDefense:
		p.Defense = max(0, p.Defense+amount)
	default:
		return false
	}
	return true
}

// UseSpecialAbility starts the cooldown. It reports false when the ability
// is still cooling down.
func (p *Pet) UseSpecialAbility() bool {
	if !p.SpecialAbility.Ready() {
		return false
	}
	p.SpecialAbility.CurrentCooldown = p.SpecialAbility.Cooldown
	return true
}

// DecreaseCooldowns ticks the ability cooldown down by one turn.
func (p *Pet) DecreaseCooldowns() {
	if p.SpecialAbility.CurrentCooldown > 0 {
		p.SpecialAbility.CurrentCooldown--
	}
}

// IsFainted is true when the pet is too tired to act.
func (p *Pet) IsFainted() bool {
	return p.Health <= 0
}

// Normalize pulls every field back inside its invariant.
func (p *Pet) Normalize() {
	if p.MaxHealth <= 0 {
		p.MaxHealth = 1
	}
	p.Health = clamp(p.Health, MinStat, p.MaxHealth)
	p.Happiness = clamp(p.Happiness, MinStat, MaxHappiness)
	p.Attack = max(0, p.Attack)
	p.Defense = max(0, p.Defense)
	p.SpecialAbility.CurrentCooldown = clamp(p.SpecialAbility.CurrentCooldown, 0, p.SpecialAbility.Cooldown)
}

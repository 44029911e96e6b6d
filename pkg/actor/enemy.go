package actor

import (
	"math"
	"strings"
)

// Enemy is a battle-only opponent. It is never persisted outside a battle.
type Enemy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Level      int    `json:"level"`
	Health     int    `json:"health"`
	MaxHealth  int    `json:"max_health"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Coins      int    `json:"coins"`
	Experience int    `json:"experience"`
}

// EnemyTemplate is the level-independent base of an enemy.
type EnemyTemplate struct {
	Name    string `json:"name"`
	Health  int    `json:"health"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
}

// EnemyLevel scales a template and sets the rewards for beating it.
type EnemyLevel struct {
	Multiplier float64
	Coins      int
	Experience int
}

const (
	EnemyWildCat   = "Wild Cat"
	EnemyAngryBird = "Angry Bird"
	EnemyMonkey    = "Mischievous Monkey"
	EnemySnake     = "Sneaky Snake"
)

var enemyTemplates = []EnemyTemplate{
	{Name: EnemyWildCat, Health: 30, Attack: 10, Defense: 5},
	{Name: EnemyAngryBird, Health: 25, Attack: 12, Defense: 3},
	{Name: EnemyMonkey, Health: 35, Attack: 8, Defense: 8},
	{Name: EnemySnake, Health: 20, Attack: 15, Defense: 4},
}

var enemyLevels = map[string]map[int]EnemyLevel{
	EnemyWildCat: {
		1: {1.0, 5, 10},
		2: {1.2, 8, 15},
		3: {1.5, 12, 20},
	},
	EnemyAngryBird: {
		1: {1.0, 4, 8},
		2: {1.2, 7, 12},
		3: {1.5, 10, 18},
	},
	EnemyMonkey: {
		1: {1.0, 6, 12},
		2: {1.2, 10, 18},
		3: {1.5, 15, 25},
	},
	EnemySnake: {
		1: {1.0, 7, 14},
		2: {1.2, 12, 20},
		3: {1.5, 18, 30},
	},
}

// EnemyTemplates returns the bestiary in catalog order.
func EnemyTemplates() []EnemyTemplate {
	return append([]EnemyTemplate(nil), enemyTemplates...)
}

// LookupEnemy finds a template by display name or snake_case type.
func LookupEnemy(name string) (EnemyTemplate, bool) {
	for _, t := range enemyTemplates {
		if strings.EqualFold(t.Name, name) || EnemyType(t.Name) == name {
			return t, true
		}
	}
	return EnemyTemplate{}, false
}

// EnemyType turns a display name into its snake_case type.
func EnemyType(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NewEnemy scales tmpl to level. A level missing from the table uses the
// level-1 row and keeps the requested level number.
func NewEnemy(id string, tmpl EnemyTemplate, level int) *Enemy {
	row, ok := enemyLevels[tmpl.Name][level]
	if !ok {
		row, ok = enemyLevels[tmpl.Name][1]
		if !ok {
			row = EnemyLevel{Multiplier: 1}
		}
	}
	scale := func(v int) int {
		return int(math.Floor(float64(v) * row.Multiplier))
	}
	hp := scale(tmpl.Health)
	return &Enemy{
		ID:         id,
		Name:       tmpl.Name,
		Type:       EnemyType(tmpl.Name),
		Level:      level,
		Health:     hp,
		MaxHealth:  hp,
		Attack:     scale(tmpl.Attack),
		Defense:    scale(tmpl.Defense),
		Coins:      row.Coins,
		Experience: row.Experience,
	}
}

// Rename keeps the stats but shows a different name, as forest encounters do.
func (e *Enemy) Rename(name string) {
	e.Name = name
	e.Type = EnemyType(name)
}

// TakeDamage reduces health, never below 0.
func (e *Enemy) TakeDamage(amount int) {
	e.Health = clamp(e.Health-amount, MinStat, e.MaxHealth)
}

// IsDefeated returns true once health reaches 0.
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}

package actor

import "math"

const (
	DefaultPlayerColor = "#4FC3F7"
	MinAge             = 7
	MaxAge             = 99
	MaxNameLength      = 20
)

// Player is the child's character. It is persisted as its own store.
type Player struct {
	Name       string          `json:"name"`
	Age        int             `json:"age"`
	Color      string          `json:"color"`
	Health     int             `json:"health"`
	MaxHealth  int             `json:"max_health"`
	Attack     int             `json:"attack"`
	Defense    int             `json:"defense"`
	Coins      int             `json:"coins"`
	Experience int             `json:"experience"`
	Inventory  []InventoryItem `json:"inventory"`
}

// NewPlayer returns a player with the starting stats.
func NewPlayer() *Player {
	return &Player{
		Color:     DefaultPlayerColor,
		Health:    100,
		MaxHealth: 100,
		Attack:    10,
		Defense:   5,
		Coins:     20,
		Inventory: []InventoryItem{},
	}
}

// Level is derived from experience: floor(sqrt(xp)/5) + 1.
func (p *Player) Level() int {
	return int(math.Floor(math.Sqrt(float64(p.Experience))/5)) + 1
}

// UpdateHealth adds amount (may be negative) and clamps to [0, MaxHealth].
func (p *Player) UpdateHealth(amount int) {
	p.Health = clamp(p.Health+amount, MinStat, p.MaxHealth)
}

// UpdateCoins adds amount; coins never go below zero.
func (p *Player) UpdateCoins(amount int) {
	p.Coins = max(0, p.Coins+amount)
}

// UpdateStat changes a named stat. Health and coins keep their clamps and
// unknown properties are ignored. It reports whether the property applied.
func (p *Player) UpdateStat(prop Property, amount int) bool {
	switch prop {
	case PropHealth:
		p.UpdateHealth(amount)
	case PropMaxHealth:
		p.MaxHealth = max(1, p.MaxHealth+amount)
		p.Health = min(p.Health, p.MaxHealth)
	case PropAttack:
		p.Attack = max(0, p.Attack+amount)
	case PropDefense:
		p.Defense = max(0, p.Defense+amount)
	case PropCoins:
		p.UpdateCoins(amount)
	default:
		return false
	}
	return true
}

// IsDefeated returns true when the player has no health left.
func (p *Player) IsDefeated() bool {
	return p.Health <= 0
}

// Normalize pulls every field back inside its invariant. Used on import.
func (p *Player) Normalize() {
	if p.MaxHealth <= 0 {
		p.MaxHealth = 100
	}
	p.Health = clamp(p.Health, MinStat, p.MaxHealth)
	p.Coins = max(0, p.Coins)
	p.Attack = max(0, p.Attack)
	p.Defense = max(0, p.Defense)
	p.Experience = max(0, p.Experience)
	if p.Color == "" {
		p.Color = DefaultPlayerColor
	}
	if p.Inventory == nil {
		p.Inventory = []InventoryItem{}
	}
	kept := p.Inventory[:0]
	for _, it := range p.Inventory {
		if it.Quantity > 0 && it.ID != "" {
			kept = append(kept, it)
		}
	}
	p.Inventory = kept
}

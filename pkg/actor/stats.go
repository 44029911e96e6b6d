package actor

import "math/rand/v2"

// Property names a numeric stat that items, activities and abilities can change.
type Property string

const (
	PropHealth    Property = "health"
	PropMaxHealth Property = "maxHealth"
	PropAttack    Property = "attack"
	PropDefense   Property = "defense"
	PropHappiness Property = "happiness"
	PropCoins     Property = "coins"

	// Battle-only properties used by pet special abilities.
	PropEvasion  Property = "evasion"
	PropStun     Property = "stun"
	PropAccuracy Property = "accuracy"
	PropItemFind Property = "itemFind"
)

// Target says who an effect applies to.
type Target string

const (
	TargetPlayer Target = "player"
	TargetPet    Target = "pet"
	TargetEnemy  Target = "enemy"
	TargetSelf   Target = "self"
)

const (
	MaxHappiness = 100
	MinStat      = 0
)

// Effect is a single (target, property, value) change.
type Effect struct {
	Target   Target   `json:"target"`
	Property Property `json:"property"`
	Value    int      `json:"value"`
}

// Rand is the randomness the game draws on. *rand.Rand satisfies it; tests
// substitute scripted sources.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// DefaultRand returns the process-wide random source.
func DefaultRand() Rand {
	return globalRand{}
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// RandomBetween returns an integer in [lo, hi].
func RandomBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

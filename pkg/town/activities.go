package town

import (
	"fmt"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

// InsufficientCoinsError reports how many more coins a purchase needs.
type InsufficientCoinsError struct {
	Needed int
}

func (e *InsufficientCoinsError) Error() string {
	return fmt.Sprintf("You need %d more coins", e.Needed)
}

// ErrNoPet is returned by activities that need a pet when there is none.
var ErrNoPet = actor.ErrNoPet

// CoinFind is a chance of digging up coins.
type CoinFind struct {
	Chance float64 `json:"chance"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// Activity is something to do at a location. Cost is paid first, then
// Effects apply. PetBonus applies only when the player has a pet.
type Activity struct {
	ID          string         `json:"id"`
	Location    state.Location `json:"location"`
	Room        string         `json:"room"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Cost        int            `json:"cost,omitempty"`
	RequiresPet bool           `json:"requires_pet,omitempty"`
	Effects     []actor.Effect `json:"effects"`
	PetBonus    []actor.Effect `json:"pet_bonus,omitempty"`
	CoinFind    *CoinFind      `json:"coin_find,omitempty"`
}

// Outcome is the result of performing an activity.
type Outcome struct {
	Activity   string `json:"activity"`
	Message    string `json:"message"`
	CoinsFound int    `json:"coins_found,omitempty"`
}

func playerFx(p actor.Property, v int) actor.Effect {
	return actor.Effect{Target: actor.TargetPlayer, Property: p, Value: v}
}

func petFx(p actor.Property, v int) actor.Effect {
	return actor.Effect{Target: actor.TargetPet, Property: p, Value: v}
}

var activities = []Activity{
	// Home
	{ID: "feed_pet", Location: state.LocationHome, Room: "kitchen", Name: "Feed Pet", Description: "A tasty bowl of pet food", Cost: 5, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHealth, 15), petFx(actor.PropHappiness, 20)}},
	{ID: "cook_meal", Location: state.LocationHome, Room: "kitchen", Name: "Cook a Meal", Description: "A warm meal for you",
		Effects: []actor.Effect{playerFx(actor.PropHealth, 10)}},
	{ID: "deep_clean", Location: state.LocationHome, Room: "bathroom", Name: "Deep Clean", Description: "A full bubble bath", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 15), petFx(actor.PropHealth, 5)}},
	{ID: "quick_wash", Location: state.LocationHome, Room: "bathroom", Name: "Quick Wash", Description: "A quick rinse", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 8)}},
	{ID: "nap", Location: state.LocationHome, Room: "bedroom", Name: "Take a Nap", Description: "A short rest",
		Effects:  []actor.Effect{playerFx(actor.PropHealth, 20)},
		PetBonus: []actor.Effect{petFx(actor.PropHealth, 15), petFx(actor.PropHappiness, 10)}},
	{ID: "full_sleep", Location: state.LocationHome, Room: "bedroom", Name: "Full Night's Sleep", Description: "Wake up refreshed",
		Effects:  []actor.Effect{playerFx(actor.PropHealth, 50)},
		PetBonus: []actor.Effect{petFx(actor.PropHealth, 30), petFx(actor.PropHappiness, 25)}},

	// School library: coins, attack from what you learn.
	{ID: "story_pets", Location: state.LocationSchool, Room: "library", Name: "Adventures of Fluffy", Description: "A story about a brave pet",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 3), playerFx(actor.PropAttack, 2)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 10)}},
	{ID: "story_science", Location: state.LocationSchool, Room: "library", Name: "How Animals Live", Description: "Facts about animal homes",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 4), playerFx(actor.PropAttack, 3)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 10)}},
	{ID: "story_friendship", Location: state.LocationSchool, Room: "library", Name: "Best Pet Friends", Description: "A story about friendship",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 5), playerFx(actor.PropAttack, 2)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 10)}},
	{ID: "story_nature", Location: state.LocationSchool, Room: "library", Name: "Wild Animal Facts", Description: "All about wild animals",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 6), playerFx(actor.PropAttack, 4)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 10)}},

	// Classroom: coins, defense is half the reward.
	{ID: "class_science", Location: state.LocationSchool, Room: "classroom", Name: "Science Class", Description: "Learn how things work",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 6), playerFx(actor.PropDefense, 3)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 5)}},
	{ID: "class_language", Location: state.LocationSchool, Room: "classroom", Name: "Language Class", Description: "Practice reading and writing",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 5), playerFx(actor.PropDefense, 2)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 5)}},
	{ID: "class_history", Location: state.LocationSchool, Room: "classroom", Name: "Pet History", Description: "How people and pets became friends",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 8), playerFx(actor.PropDefense, 4)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 5)}},

	// Study room: coins, max health is a fifth of the experience.
	{ID: "drill_focus", Location: state.LocationSchool, Room: "study", Name: "Focus Drill", Description: "Practice paying attention",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 3), playerFx(actor.PropMaxHealth, 3)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 8)}},
	{ID: "drill_memory", Location: state.LocationSchool, Room: "study", Name: "Memory Game", Description: "Remember the cards",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 5), playerFx(actor.PropMaxHealth, 4)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 8)}},
	{ID: "drill_homework", Location: state.LocationSchool, Room: "study", Name: "Homework", Description: "Finish today's homework",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 7), playerFx(actor.PropMaxHealth, 5)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 8)}},
	{ID: "drill_review", Location: state.LocationSchool, Room: "study", Name: "Quick Review", Description: "Go over what you learned",
		Effects: []actor.Effect{playerFx(actor.PropCoins, 2), playerFx(actor.PropMaxHealth, 2)}, PetBonus: []actor.Effect{petFx(actor.PropHappiness, 8)}},

	// Park
	{ID: "slide", Location: state.LocationPark, Room: "slide", Name: "Slide Down", Description: "Wheee!", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 25)}},
	{ID: "agility", Location: state.LocationPark, Room: "slide", Name: "Agility Course", Description: "Climb, jump and run", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 20), petFx(actor.PropHealth, 10)}},
	{ID: "play_together", Location: state.LocationPark, Room: "slide", Name: "Play Together", Description: "Find a coin while playing", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 30), playerFx(actor.PropCoins, 5)}},
	{ID: "swing_gentle", Location: state.LocationPark, Room: "swings", Name: "Gentle Swing", Description: "Back and forth", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 15)}},
	{ID: "swing_relax", Location: state.LocationPark, Room: "swings", Name: "Relax", Description: "Rest in the shade", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 25), petFx(actor.PropHealth, 15)}},
	{ID: "swing_bonding", Location: state.LocationPark, Room: "swings", Name: "Bonding Time", Description: "Swing side by side", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 30), playerFx(actor.PropCoins, 3)}},
	{ID: "quick_dig", Location: state.LocationPark, Room: "sandpit", Name: "Quick Dig", Description: "Maybe there are coins?", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 20)}, CoinFind: &CoinFind{Chance: 0.5, Min: 1, Max: 3}},
	{ID: "treasure_hunt", Location: state.LocationPark, Room: "sandpit", Name: "Treasure Hunt", Description: "Dig deep for treasure", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 25)}, CoinFind: &CoinFind{Chance: 1, Min: 3, Max: 10}},
	{ID: "sandcastle", Location: state.LocationPark, Room: "sandpit", Name: "Build a Sandcastle", Description: "The tallest one yet", RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHappiness, 35), petFx(actor.PropHealth, 10)}},

	// Shop: vet services and accessories act on the pet right away.
	{ID: "vet_checkup", Location: state.LocationShop, Room: "vet", Name: "Checkup", Description: "A friendly checkup", Cost: 20, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHealth, 15), petFx(actor.PropHappiness, 10)}},
	{ID: "vet_treatment", Location: state.LocationShop, Room: "vet", Name: "Treatment", Description: "Medicine for a poorly pet", Cost: 35, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHealth, 30), petFx(actor.PropHappiness, 5)}},
	{ID: "vet_surgery", Location: state.LocationShop, Room: "vet", Name: "Surgery", Description: "A big fix. A little scary", Cost: 60, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropHealth, 50), petFx(actor.PropHappiness, -5)}},
	{ID: "collar_basic", Location: state.LocationShop, Room: "accessories", Name: "Basic Collar", Description: "Defense +3", Cost: 25, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropDefense, 3)}},
	{ID: "collar_premium", Location: state.LocationShop, Room: "accessories", Name: "Premium Collar", Description: "Defense +5", Cost: 45, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropDefense, 5)}},
	{ID: "training_book", Location: state.LocationShop, Room: "accessories", Name: "Training Book", Description: "Attack +4", Cost: 35, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropAttack, 4)}},
	{ID: "energy_charm", Location: state.LocationShop, Room: "accessories", Name: "Energy Charm", Description: "Max health +10", Cost: 50, RequiresPet: true,
		Effects: []actor.Effect{petFx(actor.PropMaxHealth, 10)}},
}

// Activities returns the whole catalog.
func Activities() []Activity {
	return append([]Activity(nil), activities...)
}

// ActivitiesAt lists the activities at one location.
func ActivitiesAt(l state.Location) []Activity {
	var out []Activity
	for _, a := range activities {
		if a.Location == l {
			out = append(out, a)
		}
	}
	return out
}

// LookupActivity finds an activity by ID.
func LookupActivity(id string) (Activity, bool) {
	for _, a := range activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// Perform pays the cost and applies the effects. Nothing changes when the
// pet is missing or coins are short.
func (a Activity) Perform(player *actor.Player, pet *actor.Pet, r actor.Rand) (Outcome, error) {
	if a.RequiresPet && pet == nil {
		return Outcome{}, ErrNoPet
	}
	if err := Charge(player, a.Cost); err != nil {
		return Outcome{}, err
	}
	if err := actor.ApplyEffects(a.Effects, player, pet); err != nil {
		return Outcome{}, fmt.Errorf("failed to apply %s: %w", a.ID, err)
	}
	if pet != nil {
		if err := actor.ApplyEffects(a.PetBonus, player, pet); err != nil {
			return Outcome{}, fmt.Errorf("failed to apply %s pet bonus: %w", a.ID, err)
		}
	}

	out := Outcome{Activity: a.ID, Message: fmt.Sprintf("%s done!", a.Name)}
	if a.CoinFind != nil {
		if r == nil {
			r = actor.DefaultRand()
		}
		if a.CoinFind.Chance >= 1 || r.Float64() < a.CoinFind.Chance {
			out.CoinsFound = actor.RandomBetween(r, a.CoinFind.Min, a.CoinFind.Max)
			player.UpdateCoins(out.CoinsFound)
			out.Message = fmt.Sprintf("%s You found %d coins!", out.Message, out.CoinsFound)
		}
	}
	return out, nil
}

// Charge takes cost coins from the player or reports the shortfall.
func Charge(player *actor.Player, cost int) error {
	if cost <= 0 {
		return nil
	}
	if player.Coins < cost {
		return &InsufficientCoinsError{Needed: cost - player.Coins}
	}
	player.UpdateCoins(-cost)
	return nil
}

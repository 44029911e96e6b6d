// Package save exports and imports a game as a single JSON document.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

const Version = 1

// Progress is the part of the progress store that travels in a save.
type Progress struct {
	UnlockedLocations []state.Location `json:"unlocked_locations"`
	CompletedBattles  int              `json:"completed_battles"`
}

// Data is a save file.
type Data struct {
	Version      int            `json:"version"`
	SavedAt      time.Time      `json:"saved_at"`
	Player       *actor.Player  `json:"player"`
	Pet          *actor.Pet     `json:"pet,omitempty"`
	GameProgress Progress       `json:"game_progress"`
	Settings     state.Settings `json:"settings"`
}

// Export snapshots the three stores.
func Export(player *actor.Player, pet *actor.Pet, gs *state.GameState) *Data {
	d := &Data{
		Version: Version,
		SavedAt: time.Now().UTC(),
		Player:  player,
		Pet:     pet,
		GameProgress: Progress{
			UnlockedLocations: slices.Clone(gs.UnlockedLocations),
			CompletedBattles:  gs.CompletedBattles,
		},
		Settings: gs.Settings,
	}
	return d
}

// Parse decodes a save document.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse save data: %w", err)
	}
	if d.Player == nil {
		return nil, errors.New("save data has no player")
	}
	return &d, nil
}

// Apply writes the save into the stores. Values are clamped into range and
// the game continues in town.
func (d *Data) Apply(gs *state.GameState) (*actor.Player, *actor.Pet) {
	player := *d.Player
	player.Inventory = slices.Clone(d.Player.Inventory)
	player.Normalize()

	var pet *actor.Pet
	if d.Pet != nil {
		p := *d.Pet
		p.Normalize()
		pet = &p
	}

	gs.UnlockedLocations = slices.Clone(d.GameProgress.UnlockedLocations)
	gs.CompletedBattles = d.GameProgress.CompletedBattles
	gs.MathGame = state.MathGame{}
	gs.Adventure = state.Adventure{}
	gs.Location = state.LocationCenter
	gs.Normalize()
	gs.ApplyUnlocks()
	gs.SetSettings(d.Settings)
	gs.SetPhase(state.PhaseTown)
	return &player, pet
}

// Validate reports every invariant the save breaks without changing it.
func (d *Data) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if d.Version > Version {
		add("unsupported version %d", d.Version)
	}
	if p := d.Player; p == nil {
		add("player is missing")
	} else {
		if p.MaxHealth <= 0 {
			add("player max_health must be positive, got %d", p.MaxHealth)
		}
		if p.Health < 0 || p.Health > p.MaxHealth {
			add("player health %d outside [0, %d]", p.Health, p.MaxHealth)
		}
		if p.Coins < 0 {
			add("player coins %d is negative", p.Coins)
		}
		if p.Age != 0 && (p.Age < actor.MinAge || p.Age > actor.MaxAge) {
			add("player age %d outside [%d, %d]", p.Age, actor.MinAge, actor.MaxAge)
		}
		if len([]rune(p.Name)) > actor.MaxNameLength {
			add("player name longer than %d characters", actor.MaxNameLength)
		}
		for _, it := range p.Inventory {
			if it.ID == "" {
				add("inventory item without id")
			}
			if it.Quantity <= 0 {
				add("inventory item %s has quantity %d", it.ID, it.Quantity)
			}
		}
	}
	if p := d.Pet; p != nil {
		if _, ok := actor.LookupSpecies(p.Type); !ok {
			add("unknown pet type %q", p.Type)
		}
		if p.MaxHealth <= 0 {
			add("pet max_health must be positive, got %d", p.MaxHealth)
		}
		if p.Health < 0 || p.Health > p.MaxHealth {
			add("pet health %d outside [0, %d]", p.Health, p.MaxHealth)
		}
		if p.Happiness < 0 || p.Happiness > actor.MaxHappiness {
			add("pet happiness %d outside [0, %d]", p.Happiness, actor.MaxHappiness)
		}
	}
	for _, l := range d.GameProgress.UnlockedLocations {
		if !slices.Contains(state.Locations, l) {
			add("unknown location %q", l)
		}
	}
	if d.GameProgress.CompletedBattles < 0 {
		add("completed_battles %d is negative", d.GameProgress.CompletedBattles)
	}
	for name, v := range map[string]float64{"music_volume": d.Settings.MusicVolume, "sound_volume": d.Settings.SoundVolume} {
		if v < 0 || v > 1 {
			add("%s %.2f outside [0, 1]", name, v)
		}
	}
	return errors.Join(errs...)
}

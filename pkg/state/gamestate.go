package state

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Phase is the top-level screen the game is on.
type Phase string

const (
	PhaseWelcome           Phase = "welcome"
	PhaseAgeVerification   Phase = "age_verification"
	PhaseCharacterCreation Phase = "character_creation"
	PhasePetAssignment     Phase = "pet_assignment"
	PhaseTown              Phase = "town"
	PhaseBattle            Phase = "battle"
)

// Location is a place in town.
type Location string

const (
	LocationCenter    Location = "center"
	LocationHome      Location = "home"
	LocationShop      Location = "shop"
	LocationSchool    Location = "school"
	LocationPark      Location = "park"
	LocationAdventure Location = "adventure"
)

// Locations lists every location in map order.
var Locations = []Location{
	LocationCenter, LocationHome, LocationShop, LocationSchool, LocationPark, LocationAdventure,
}

const (
	DefaultTotalBattles = 10
	DefaultMusicVolume  = 0.5
	DefaultSoundVolume  = 0.7

	// Unlock thresholds.
	SchoolUnlockActivities = 1
	ParkUnlockActivities   = 3
	AdventureUnlockBattles = 1
)

// Settings are the player's audio preferences, each in [0, 1].
type Settings struct {
	MusicVolume float64 `json:"music_volume"`
	SoundVolume float64 `json:"sound_volume"`
}

// MathGame tracks a running arithmetic quiz.
type MathGame struct {
	Active    bool   `json:"active"`
	Operation string `json:"operation"`
	Num1      int    `json:"num1"`
	Num2      int    `json:"num2"`
	Answer    int    `json:"answer"`
	Asked     int    `json:"asked"`
	Correct   int    `json:"correct"`
	Earned    int    `json:"earned"`
}

// Adventure tracks the current forest visit.
type Adventure struct {
	TreasureFound bool `json:"treasure_found"`
}

// GameState is the game progress store: everything about a session that is
// not the player or the pet.
type GameState struct {
	ID                  uuid.UUID  `json:"id"`
	Phase               Phase      `json:"phase"`
	Location            Location   `json:"location"`
	UnlockedLocations   []Location `json:"unlocked_locations"`
	CompletedBattles    int        `json:"completed_battles"`
	TotalBattles        int        `json:"total_battles"`
	CompletedActivities int        `json:"completed_activities"`
	Settings            Settings   `json:"settings"`
	MathGame            MathGame   `json:"math_game"`
	Adventure           Adventure  `json:"adventure"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func NewGameState() *GameState {
	now := time.Now().UTC()
	gs := &GameState{ID: uuid.New(), CreatedAt: now}
	gs.Reset()
	gs.UpdatedAt = now
	return gs
}

// Reset restores defaults, keeping the session ID.
func (gs *GameState) Reset() {
	id, created := gs.ID, gs.CreatedAt
	*gs = GameState{
		ID:                id,
		Phase:             PhaseWelcome,
		Location:          LocationCenter,
		UnlockedLocations: []Location{LocationCenter, LocationHome, LocationShop},
		TotalBattles:      DefaultTotalBattles,
		Settings:          Settings{MusicVolume: DefaultMusicVolume, SoundVolume: DefaultSoundVolume},
		CreatedAt:         created,
	}
	gs.touch()
}

func (gs *GameState) touch() {
	gs.UpdatedAt = time.Now().UTC()
}

func (gs *GameState) SetPhase(p Phase) {
	gs.Phase = p
	gs.touch()
}

func (gs *GameState) SetLocation(l Location) {
	gs.Location = l
	if l != LocationAdventure {
		gs.Adventure = Adventure{}
	}
	gs.touch()
}

// IsUnlocked reports whether l can be visited.
func (gs *GameState) IsUnlocked(l Location) bool {
	return slices.Contains(gs.UnlockedLocations, l)
}

// Unlock adds l to the unlocked list. It reports whether l was new.
func (gs *GameState) Unlock(l Location) bool {
	if gs.IsUnlocked(l) {
		return false
	}
	gs.UnlockedLocations = append(gs.UnlockedLocations, l)
	gs.touch()
	return true
}

// IncrementCompletedBattles counts a won battle and returns any locations it unlocked.
func (gs *GameState) IncrementCompletedBattles() []Location {
	gs.CompletedBattles++
	gs.touch()
	return gs.ApplyUnlocks()
}

func (gs *GameState) SetTotalBattles(n int) {
	gs.TotalBattles = max(1, n)
	gs.touch()
}

// IncrementCompletedActivities counts an activity and returns any locations it unlocked.
func (gs *GameState) IncrementCompletedActivities() []Location {
	gs.CompletedActivities++
	gs.touch()
	return gs.ApplyUnlocks()
}

// ApplyUnlocks unlocks every location whose threshold has been reached and
// returns the newly unlocked ones.
func (gs *GameState) ApplyUnlocks() []Location {
	var unlocked []Location
	if gs.CompletedActivities >= SchoolUnlockActivities && gs.Unlock(LocationSchool) {
		unlocked = append(unlocked, LocationSchool)
	}
	if gs.CompletedActivities >= ParkUnlockActivities && gs.Unlock(LocationPark) {
		unlocked = append(unlocked, LocationPark)
	}
	if gs.CompletedBattles >= AdventureUnlockBattles && gs.Unlock(LocationAdventure) {
		unlocked = append(unlocked, LocationAdventure)
	}
	return unlocked
}

// SetSettings stores volumes clamped to [0, 1].
func (gs *GameState) SetSettings(s Settings) {
	gs.Settings = Settings{
		MusicVolume: clampVolume(s.MusicVolume),
		SoundVolume: clampVolume(s.SoundVolume),
	}
	gs.touch()
}

// Finished is true once every battle has been won.
func (gs *GameState) Finished() bool {
	return gs.CompletedBattles >= gs.TotalBattles
}

// Normalize repairs an imported state.
func (gs *GameState) Normalize() {
	if gs.TotalBattles <= 0 {
		gs.TotalBattles = DefaultTotalBattles
	}
	gs.CompletedBattles = max(0, gs.CompletedBattles)
	gs.CompletedActivities = max(0, gs.CompletedActivities)
	for _, l := range []Location{LocationCenter, LocationHome, LocationShop} {
		gs.Unlock(l)
	}
	kept := gs.UnlockedLocations[:0]
	for _, l := range gs.UnlockedLocations {
		if slices.Contains(Locations, l) && !slices.Contains(kept, l) {
			kept = append(kept, l)
		}
	}
	gs.UnlockedLocations = kept
	if !gs.IsUnlocked(gs.Location) {
		gs.Location = LocationCenter
	}
	gs.Settings = Settings{
		MusicVolume: clampVolume(gs.Settings.MusicVolume),
		SoundVolume: clampVolume(gs.Settings.SoundVolume),
	}
}

func clampVolume(v float64) float64 {
	return min(1, max(0, v))
}

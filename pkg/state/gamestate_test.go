package state

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()
	if gs.ID == uuid.Nil {
		t.Error("expected an ID")
	}
	if gs.Phase != PhaseWelcome {
		t.Errorf("expected welcome phase, got %s", gs.Phase)
	}
	if gs.Location != LocationCenter {
		t.Errorf("expected center, got %s", gs.Location)
	}
	want := []Location{LocationCenter, LocationHome, LocationShop}
	if !slices.Equal(gs.UnlockedLocations, want) {
		t.Errorf("unlocked = %v, want %v", gs.UnlockedLocations, want)
	}
	if gs.TotalBattles != 10 {
		t.Errorf("expected 10 total battles, got %d", gs.TotalBattles)
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	gs := NewGameState()
	if !gs.Unlock(LocationPark) {
		t.Error("expected first unlock to report true")
	}
	if gs.Unlock(LocationPark) {
		t.Error("expected second unlock to report false")
	}
	count := 0
	for _, l := range gs.UnlockedLocations {
		if l == LocationPark {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected park once, got %d", count)
	}
}

func TestUnlockRules(t *testing.T) {
	gs := NewGameState()

	got := gs.IncrementCompletedActivities()
	if !slices.Equal(got, []Location{LocationSchool}) {
		t.Errorf("after 1 activity unlocked %v", got)
	}
	gs.IncrementCompletedActivities()
	if gs.IsUnlocked(LocationPark) {
		t.Error("park should need 3 activities")
	}
	got = gs.IncrementCompletedActivities()
	if !slices.Equal(got, []Location{LocationPark}) {
		t.Errorf("after 3 activities unlocked %v", got)
	}

	if gs.IsUnlocked(LocationAdventure) {
		t.Error("adventure should need a battle")
	}
	got = gs.IncrementCompletedBattles()
	if !slices.Equal(got, []Location{LocationAdventure}) {
		t.Errorf("after 1 battle unlocked %v", got)
	}
	if got := gs.IncrementCompletedBattles(); len(got) != 0 {
		t.Errorf("expected nothing new, got %v", got)
	}
}

func TestFinished(t *testing.T) {
	gs := NewGameState()
	gs.SetTotalBattles(2)
	gs.IncrementCompletedBattles()
	if gs.Finished() {
		t.Error("not finished after 1 of 2")
	}
	gs.IncrementCompletedBattles()
	if !gs.Finished() {
		t.Error("expected finished after 2 of 2")
	}
}

func TestSetLocationClearsAdventure(t *testing.T) {
	gs := NewGameState()
	gs.Unlock(LocationAdventure)
	gs.SetLocation(LocationAdventure)
	gs.Adventure.TreasureFound = true
	gs.SetLocation(LocationCenter)
	if gs.Adventure.TreasureFound {
		t.Error("expected a new visit to reset the treasure")
	}
}

func TestResetKeepsID(t *testing.T) {
	gs := NewGameState()
	id := gs.ID
	gs.SetPhase(PhaseTown)
	gs.IncrementCompletedActivities()
	gs.Reset()
	if gs.ID != id {
		t.Error("expected ID to survive reset")
	}
	if gs.Phase != PhaseWelcome || gs.CompletedActivities != 0 || gs.IsUnlocked(LocationSchool) {
		t.Errorf("expected defaults after reset, got %+v", gs)
	}
}

func TestNormalize(t *testing.T) {
	var gs GameState
	data := `{"location":"castle","unlocked_locations":["park","park","moon"],"completed_battles":-2,"settings":{"music_volume":3,"sound_volume":-1}}`
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	gs.Normalize()
	want := []Location{LocationPark, LocationCenter, LocationHome, LocationShop}
	if !slices.Equal(gs.UnlockedLocations, want) {
		t.Errorf("unlocked = %v, want %v", gs.UnlockedLocations, want)
	}
	if gs.Location != LocationCenter {
		t.Errorf("expected center, got %s", gs.Location)
	}
	if gs.CompletedBattles != 0 || gs.TotalBattles != DefaultTotalBattles {
		t.Errorf("unexpected counters %d/%d", gs.CompletedBattles, gs.TotalBattles)
	}
	if gs.Settings.MusicVolume != 1 || gs.Settings.SoundVolume != 0 {
		t.Errorf("unexpected settings %+v", gs.Settings)
	}
}

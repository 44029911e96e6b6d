package actor

import "testing"

type seqRand struct {
	ints   []int
	floats []float64
}

func (r *seqRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestNewPet(t *testing.T) {
	t.Run("uses template defaults", func(t *testing.T) {
		pet, err := NewPet(SpeciesTurtle, "", "")
		if err != nil {
			t.Fatalf("NewPet() error = %v", err)
		}
		if pet.Name != "Shelly" {
			t.Errorf("expected default name Shelly, got %s", pet.Name)
		}
		if pet.Health != 60 || pet.MaxHealth != 60 || pet.Defense != 20 {
			t.Errorf("unexpected stats %+v", pet)
		}
		if pet.SpecialAbility.Name != "Shell Shield" || pet.SpecialAbility.CurrentCooldown != 0 {
			t.Errorf("unexpected ability %+v", pet.SpecialAbility)
		}
		if pet.Color != "#4CAF50" {
			t.Errorf("expected first template color, got %s", pet.Color)
		}
	})

	t.Run("unknown species", func(t *testing.T) {
		if _, err := NewPet("dragon", "", ""); err == nil {
			t.Error("expected error for unknown species")
		}
	})
}

func TestNewRandomPet(t *testing.T) {
	pet := NewRandomPet(&seqRand{ints: []int{7, 2}})
	if pet.Type != SpeciesHamster {
		t.Errorf("expected hamster, got %s", pet.Type)
	}
	if pet.Color != "#FFCC80" {
		t.Errorf("expected third hamster color, got %s", pet.Color)
	}
}

func TestAllSpeciesHaveFourColors(t *testing.T) {
	species := AllSpecies()
	if len(species) != 8 {
		t.Fatalf("expected 8 species, got %d", len(species))
	}
	for _, s := range species {
		if len(s.Colors) != 4 {
			t.Errorf("%s has %d colors", s.Type, len(s.Colors))
		}
	}
}

func TestPetClamps(t *testing.T) {
	pet, _ := NewPet(SpeciesDog, "Rex", "")
	pet.UpdateHappiness(50)
	if pet.Happiness != 100 {
		t.Errorf("expected happiness 100, got %d", pet.Happiness)
	}
	pet.UpdateHappiness(-500)
	if pet.Happiness != 0 {
		t.Errorf("expected happiness 0, got %d", pet.Happiness)
	}
	pet.UpdateHealth(-100)
	if !pet.IsFainted() {
		t.Error("expected pet to faint")
	}
	pet.UpdateHealth(1000)
	if pet.Health != pet.MaxHealth {
		t.Errorf("expected full health, got %d", pet.Health)
	}
	if pet.UpdateStat(PropCoins, 5) {
		t.Error("pets have no coins")
	}
}

func TestPetSpecialAbilityCooldown(t *testing.T) {
	pet, _ := NewPet(SpeciesCat, "", "")
	if !pet.UseSpecialAbility() {
		t.Fatal("expected ability to be ready")
	}
	if pet.SpecialAbility.CurrentCooldown != 2 {
		t.Errorf("expected cooldown 2, got %d", pet.SpecialAbility.CurrentCooldown)
	}
	if pet.UseSpecialAbility() {
		t.Error("expected ability to be cooling down")
	}
	pet.DecreaseCooldowns()
	pet.DecreaseCooldowns()
	pet.DecreaseCooldowns()
	if pet.SpecialAbility.CurrentCooldown != 0 {
		t.Errorf("expected cooldown to stop at 0, got %d", pet.SpecialAbility.CurrentCooldown)
	}
}

func TestApplyEffect(t *testing.T) {
	player := NewPlayer()
	pet, _ := NewPet(SpeciesDog, "", "")
	pet.Happiness = 50

	if ok, err := ApplyEffect(Effect{Target: TargetPet, Property: PropHappiness, Value: 20}, player, pet); err != nil || !ok {
		t.Fatalf("ApplyEffect() = %v, %v", ok, err)
	}
	if pet.Happiness != 70 {
		t.Errorf("expected happiness 70, got %d", pet.Happiness)
	}

	if _, err := ApplyEffect(Effect{Target: TargetPet, Property: PropHealth, Value: 5}, player, nil); err != ErrNoPet {
		t.Errorf("expected ErrNoPet, got %v", err)
	}

	player.Health = 50
	if err := ApplyEffects([]Effect{
		{Target: TargetPlayer, Property: PropHealth, Value: 12},
		{Target: TargetPlayer, Property: "sparkle", Value: 3},
	}, player, pet); err != nil {
		t.Fatalf("ApplyEffects() error = %v", err)
	}
	if player.Health != 62 {
		t.Errorf("expected health 62, got %d", player.Health)
	}
}

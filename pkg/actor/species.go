package actor

// SpeciesTemplate holds the starting stats for a species.
type SpeciesTemplate struct {
	Type        Species        `json:"type"`
	DefaultName string         `json:"default_name"`
	Description string         `json:"description"`
	Health      int            `json:"health"`
	Attack      int            `json:"attack"`
	Defense     int            `json:"defense"`
	Happiness   int            `json:"happiness"`
	Ability     SpecialAbility `json:"special_ability"`
	Colors      []string       `json:"colors"`
}

var speciesTemplates = []SpeciesTemplate{
	{
		Type:        SpeciesDog,
		DefaultName: "Doggy",
		Description: "Loyal and friendly, dogs are great companions for adventures!",
		Health:      50, Attack: 15, Defense: 10, Happiness: 90,
		Ability: SpecialAbility{
			Name:        "Loyal Bark",
			Description: "Increases your defense for 3 turns",
			Effect:      Effect{Target: TargetPlayer, Property: PropDefense, Value: 5},
			Cooldown:    3,
		},
		Colors: []string{"#A87C5F", "#E0C097", "#333333", "#F5F5DC"},
	},
	{
		Type:        SpeciesCat,
		DefaultName: "Kitty",
		Description: "Clever and agile, cats can find hidden treasures!",
		Health:      40, Attack: 20, Defense: 5, Happiness: 80,
		Ability: SpecialAbility{
			Name:        "Sharp Claws",
			Description: "A powerful attack that deals extra damage",
			Effect:      Effect{Target: TargetEnemy, Property: PropHealth, Value: -15},
			Cooldown:    2,
		},
		Colors: []string{"#F6AD7B", "#5E5E5E", "#E0D8BB", "#FFFFFF"},
	},
	{
		Type:        SpeciesRabbit,
		DefaultName: "Bunny",
		Description: "Fast and cute, rabbits can help you escape danger!",
		Health:      30, Attack: 10, Defense: 5, Happiness: 95,
		Ability: SpecialAbility{
			Name:        "Quick Hop",
			Description: "Avoids the next enemy attack",
			Effect:      Effect{Target: TargetSelf, Property: PropEvasion, Value: 100},
			Cooldown:    4,
		},
		Colors: []string{"#FFFFFF", "#E0C097", "#A87C5F", "#888888"},
	},
	{
		Type:        SpeciesBird,
		DefaultName: "Birdie",
		Description: "Colorful and musical, birds bring joy to everyone!",
		Health:      25, Attack: 15, Defense: 5, Happiness: 90,
		Ability: SpecialAbility{
			Name:        "Melodic Song",
			Description: "Heals both you and your pet",
			Effect:      Effect{Target: TargetPlayer, Property: PropHealth, Value: 10},
			Cooldown:    3,
		},
		Colors: []string{"#F74371", "#4A8FE7", "#FFD166", "#06D6A0"},
	},
	{
		Type:        SpeciesFrog,
		DefaultName: "Froggy",
		Description: "Jumpy and fun, frogs can find water sources!",
		Health:      30, Attack: 12, Defense: 8, Happiness: 85,
		Ability: SpecialAbility{
			Name:        "Sticky Tongue",
			Description: "Stops the enemy from acting for a turn",
			Effect:      Effect{Target: TargetEnemy, Property: PropStun, Value: 1},
			Cooldown:    4,
		},
		Colors: []string{"#76C043", "#4CAF50", "#8BC34A", "#33691E"},
	},
	{
		Type:        SpeciesTurtle,
		DefaultName: "Shelly",
		Description: "Slow but steady, turtles have great defense!",
		Health:      60, Attack: 8, Defense: 20, Happiness: 75,
		Ability: SpecialAbility{
			Name:        "Shell Shield",
			Description: "Greatly reduces damage for one turn",
			Effect:      Effect{Target: TargetSelf, Property: PropDefense, Value: 15},
			Cooldown:    4,
		},
		Colors: []string{"#4CAF50", "#8D6E63", "#9E9D24", "#33691E"},
	},
	{
		Type:        SpeciesFish,
		DefaultName: "Bubbles",
		Description: "Shiny and peaceful, fish can swim through any water!",
		Health:      20, Attack: 10, Defense: 5, Happiness: 80,
		Ability: SpecialAbility{
			Name:        "Water Splash",
			Description: "Confuses the enemy, reducing their accuracy",
			Effect:      Effect{Target: TargetEnemy, Property: PropAccuracy, Value: -30},
			Cooldown:    3,
		},
		Colors: []string{"#42A5F5", "#29B6F6", "#FF9800", "#E91E63"},
	},
	{
		Type:        SpeciesHamster,
		DefaultName: "Hammy",
		Description: "Tiny and energetic, hamsters can store items for you!",
		Health:      25, Attack: 12, Defense: 6, Happiness: 95,
		Ability: SpecialAbility{
			Name:        "Cheek Pouch",
			Description: "Finds a random helpful item",
			Effect:      Effect{Target: TargetPlayer, Property: PropItemFind, Value: 1},
			Cooldown:    5,
		},
		Colors: []string{"#D7B49E", "#B38867", "#FFCC80", "#BCAAA4"},
	},
}

// AllSpecies returns a copy of every species template in catalog order.
func AllSpecies() []SpeciesTemplate {
	return append([]SpeciesTemplate(nil), speciesTemplates...)
}

// LookupSpecies finds a species template.
func LookupSpecies(s Species) (SpeciesTemplate, bool) {
	for _, t := range speciesTemplates {
		if t.Type == s {
			return t, true
		}
	}
	return SpeciesTemplate{}, false
}

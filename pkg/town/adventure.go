package town

import "github.com/jwebster45206/pet-adventure/pkg/actor"

const (
	// ParkBattleChance is the chance a wild animal jumps out on entering the park.
	ParkBattleChance = 0.5

	TreasureMin = 5
	TreasureMax = 14
)

// Encounter is a named forest foe built on a bestiary template.
type Encounter struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Level    int    `json:"level"`
}

var encounters = []Encounter{
	{Name: "Wild Cat", Template: actor.EnemyWildCat, Level: 1},
	{Name: "Forest Wolf", Template: actor.EnemyMonkey, Level: 2},
	{Name: "Angry Bird", Template: actor.EnemyAngryBird, Level: 3},
	{Name: "Sneaky Snake", Template: actor.EnemySnake, Level: 5},
}

// Encounters lists the forest foes.
func Encounters() []Encounter {
	return append([]Encounter(nil), encounters...)
}

// Spawn builds the enemy for an encounter.
func (e Encounter) Spawn(id string) *actor.Enemy {
	tmpl, ok := actor.LookupEnemy(e.Template)
	if !ok {
		tmpl = actor.EnemyTemplates()[0]
	}
	enemy := actor.NewEnemy(id, tmpl, e.Level)
	if e.Name != tmpl.Name {
		enemy.Rename(e.Name)
	}
	return enemy
}

// RandomEncounter picks a forest foe.
func RandomEncounter(r actor.Rand) Encounter {
	return encounters[r.IntN(len(encounters))]
}

// RandomParkEnemy picks any bestiary template at level 1.
func RandomParkEnemy(id string, r actor.Rand) *actor.Enemy {
	templates := actor.EnemyTemplates()
	return actor.NewEnemy(id, templates[r.IntN(len(templates))], 1)
}

// TreasureCoins rolls the contents of a forest chest.
func TreasureCoins(r actor.Rand) int {
	return actor.RandomBetween(r, TreasureMin, TreasureMax)
}

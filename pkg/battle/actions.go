package battle

// Action is one of the player's battle choices.
type Action struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
	DefenseUp   int     `json:"defense_up,omitempty"`
	Heal        int     `json:"heal,omitempty"`
}

const (
	ActionAttack = iota
	ActionDefend
	ActionSpecial
	ActionHeal
)

var actions = []Action{
	{Name: "Attack", Description: "A basic attack", Multiplier: 1},
	{Name: "Defend", Description: "Raise your guard until your next turn", DefenseUp: 5},
	{Name: "Special Attack", Description: "A strong attack", Multiplier: 1.5},
	{Name: "Heal", Description: "Recover some health", Heal: 10},
}

// Actions returns the fixed action list. Battle actions are chosen by index.
func Actions() []Action {
	return append([]Action(nil), actions...)
}

// LookupAction returns the action at index i.
func LookupAction(i int) (Action, bool) {
	if i < 0 || i >= len(actions) {
		return Action{}, false
	}
	return actions[i], true
}

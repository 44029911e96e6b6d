// Package controls maps key names to game inputs.
package controls

import "strings"

// Input is a logical game control.
type Input string

const (
	None      Input = ""
	Forward   Input = "forward"
	Backward  Input = "backward"
	Leftward  Input = "leftward"
	Rightward Input = "rightward"
	Interact  Input = "interact"
	Inventory Input = "inventory"
	Back      Input = "back"
	CopyID    Input = "copy_id"
	Quit      Input = "quit"
)

// Key names follow bubbletea's KeyMsg.String() values.
var bindings = map[string]Input{
	"w": Forward, "up": Forward,
	"s": Backward, "down": Backward,
	"a": Leftward, "left": Leftward,
	"d": Rightward, "right": Rightward,
	"e": Interact, " ": Interact, "space": Interact, "enter": Interact,
	"i":   Inventory,
	"esc": Back,
	"c":   CopyID,
	"q":   Quit, "ctrl+c": Quit,
}

// Lookup returns the input bound to key. Letter keys ignore case.
func Lookup(key string) Input {
	if in, ok := bindings[key]; ok {
		return in
	}
	if len(key) == 1 {
		return bindings[strings.ToLower(key)]
	}
	return None
}

// Help is a one-line summary of the bindings.
func Help() string {
	return "W/↑ forward · S/↓ back · A/← left · D/→ right · E/Space interact · I inventory · Esc back · C copy id · Q quit"
}

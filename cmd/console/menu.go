package main

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

type optionKind int

const (
	optActivity optionKind = iota
	optBuy
	optAdopt
	optMath
	optTreasure
	optFight
	optMove
	optUse
	optAction
	optLeave
)

// Option is one selectable menu row.
type Option struct {
	Label string
	Kind  optionKind
	Arg   string
	Index int
}

type tab int

const (
	tabDo tab = iota
	tabGo
	tabInventory
)

func (t tab) String() string {
	switch t {
	case tabGo:
		return "Go"
	case tabInventory:
		return "Inventory"
	default:
		return "Do"
	}
}

// menuFor lists what the player can pick on the given tab.
func menuFor(snap *game.Snapshot, cat *Catalog, t tab) []Option {
	if snap == nil || snap.Game == nil || cat == nil {
		return nil
	}
	if snap.Game.Phase == state.PhaseBattle || snap.Battle != nil {
		return battleMenu(snap, cat)
	}
	if snap.Game.Phase != state.PhaseTown {
		return nil
	}
	switch t {
	case tabGo:
		return moveMenu(snap.Game, cat)
	case tabInventory:
		return inventoryMenu(snap.Player)
	default:
		return doMenu(snap, cat)
	}
}

func doMenu(snap *game.Snapshot, cat *Catalog) []Option {
	gs := snap.Game
	var opts []Option
	for _, a := range cat.Activities {
		if a.Location != gs.Location {
			continue
		}
		label := a.Name
		if a.Cost > 0 {
			label = fmt.Sprintf("%s (%d coins)", a.Name, a.Cost)
		}
		opts = append(opts, Option{Label: label, Kind: optActivity, Arg: a.ID})
	}

	switch gs.Location {
	case state.LocationShop:
		for _, it := range cat.ShopItems {
			opts = append(opts, Option{Label: fmt.Sprintf("Buy %s (%d coins)", it.Name, it.Price), Kind: optBuy, Arg: it.ID})
		}
		for _, s := range cat.Species {
			opts = append(opts, Option{Label: fmt.Sprintf("Adopt a %s (%d coins)", s.Type, cat.AdoptionPrice), Kind: optAdopt, Arg: string(s.Type)})
		}
	case state.LocationSchool:
		opts = append(opts, Option{Label: "Play the math game", Kind: optMath})
	case state.LocationAdventure:
		if !gs.Adventure.TreasureFound {
			opts = append(opts, Option{Label: "Search for treasure", Kind: optTreasure})
		}
		opts = append(opts, Option{Label: "Look for a fight", Kind: optFight})
	}
	return opts
}

func moveMenu(gs *state.GameState, cat *Catalog) []Option {
	var opts []Option
	for _, p := range cat.Locations {
		if p.ID == gs.Location || !slices.Contains(gs.UnlockedLocations, p.ID) {
			continue
		}
		opts = append(opts, Option{Label: "Go to " + p.Name, Kind: optMove, Arg: string(p.ID)})
	}
	return opts
}

func inventoryMenu(p *actor.Player) []Option {
	if p == nil {
		return nil
	}
	var opts []Option
	for _, it := range p.Inventory {
		opts = append(opts, Option{Label: fmt.Sprintf("Use %s x%d", it.Name, it.Quantity), Kind: optUse, Arg: it.ID})
	}
	return opts
}

func battleMenu(snap *game.Snapshot, cat *Catalog) []Option {
	if snap.Battle == nil {
		return nil
	}
	if snap.Battle.IsOver() {
		return []Option{{Label: "Head back to town", Kind: optLeave}}
	}
	opts := make([]Option, 0, len(cat.Actions))
	for i, a := range cat.Actions {
		opts = append(opts, Option{Label: a.Name, Kind: optAction, Index: i})
	}
	return opts
}

// inputPrompt is the question for phases that need typed input, or "".
func inputPrompt(snap *game.Snapshot) string {
	if snap == nil || snap.Game == nil {
		return ""
	}
	switch snap.Game.Phase {
	case state.PhaseWelcome, state.PhaseAgeVerification:
		return "How old are you?"
	case state.PhaseCharacterCreation:
		return "What is your name?"
	case state.PhasePetAssignment:
		if snap.Pet == nil {
			return ""
		}
		return fmt.Sprintf("Name your %s (Enter keeps %s)", snap.Pet.Type, snap.Pet.Name)
	case state.PhaseTown:
		if snap.Game.MathGame.Active && snap.MathQuestion != "" {
			return snap.MathQuestion
		}
	}
	return ""
}

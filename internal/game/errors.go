package game

import (
	"errors"

	"github.com/jwebster45206/pet-adventure/pkg/town"
)

// Validation failures. Handlers turn these into client errors.
var (
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidAge      = errors.New("please enter a valid age")
	ErrTooYoung        = errors.New("you must be at least 7 years old to play")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidColor    = errors.New("color must look like #RRGGBB")
	ErrWrongPhase      = errors.New("not available right now")
	ErrWrongLocation   = errors.New("you need to be somewhere else to do that")
	ErrUnknownLocation = errors.New("unknown location")
	ErrLocationLocked  = errors.New("that place is still locked")
	ErrNoPet           = town.ErrNoPet
	ErrUnknownSpecies  = errors.New("unknown pet species")
	ErrBattleActive    = errors.New("a battle is in progress")
	ErrNoBattle        = errors.New("no battle in progress")
	ErrUnknownEnemy    = errors.New("unknown enemy")
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownActivity = errors.New("unknown activity")
	ErrNoMathGame      = errors.New("no math game in progress")
	ErrTreasureTaken   = errors.New("the treasure chest is empty")
	ErrTooTired        = errors.New("you are too tired; rest at home first")
	ErrInvalidSave     = errors.New("invalid save data")
)

// InsufficientCoinsError reports how many more coins are needed.
type InsufficientCoinsError = town.InsufficientCoinsError

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the fields that failed validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// CoinsErrorResponse tells the client how many coins are missing.
type CoinsErrorResponse struct {
	Error  string `json:"error"`
	Needed int    `json:"needed"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

var clientErrors = []error{
	game.ErrInvalidAge,
	game.ErrTooYoung,
	game.ErrInvalidName,
	game.ErrInvalidColor,
	game.ErrUnknownLocation,
	game.ErrUnknownSpecies,
	game.ErrUnknownEnemy,
	game.ErrUnknownItem,
	game.ErrUnknownActivity,
	game.ErrInvalidSave,
	battle.ErrUnknownAction,
}

var conflictErrors = []error{
	game.ErrWrongPhase,
	game.ErrWrongLocation,
	game.ErrLocationLocked,
	game.ErrNoPet,
	game.ErrBattleActive,
	game.ErrNoBattle,
	game.ErrNoMathGame,
	game.ErrTreasureTaken,
	game.ErrTooTired,
	battle.ErrNotPlayerTurn,
	battle.ErrBattleOver,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError maps a game error onto a status code. Unknown errors are
// logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var coins *game.InsufficientCoinsError
	switch {
	case errors.As(err, &coins):
		writeJSON(w, logger, http.StatusPaymentRequired, CoinsErrorResponse{Error: coins.Error(), Needed: coins.Needed})
	case errors.Is(err, game.ErrGameNotFound):
		writeJSON(w, logger, http.StatusNotFound, ErrorResponse{Error: "Game not found"})
	case isAny(err, clientErrors):
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case isAny(err, conflictErrors):
		writeJSON(w, logger, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func parseGameID(w http.ResponseWriter, logger *slog.Logger, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid game ID", "id", raw, "error", err)
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid game ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate reads a JSON body into req. On failure the response has
// been written and the handler should return.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Warn("Failed to decode request body", "path", r.URL.Path, "error", err)
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON in request body"})
		return false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, ValidationErrorResponse{
			Error:  "Invalid request",
			Fields: FormatValidationError(err),
		})
		return false
	}
	return true
}

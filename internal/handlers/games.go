package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/save"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

// Request bodies

type AgeRequest struct {
	Age int `json:"age" validate:"required"`
}

type CharacterRequest struct {
	Name  string `json:"name" validate:"required,max=40"`
	Age   int    `json:"age" validate:"omitempty,min=1,max=150"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type PetNameRequest struct {
	Name string `json:"name" validate:"max=40"`
}

type MoveRequest struct {
	Location string `json:"location" validate:"required,location"`
}

type BuyRequest struct {
	ItemID string `json:"item_id" validate:"required,max=40"`
}

type AdoptRequest struct {
	Species string `json:"species" validate:"required,species"`
}

type AnswerRequest struct {
	Answer *int `json:"answer" validate:"required"`
}

type BattleRequest struct {
	Enemy string `json:"enemy" validate:"max=40"`
	Level int    `json:"level" validate:"omitempty,min=1,max=10"`
}

type ActionRequest struct {
	Action *int `json:"action" validate:"required,min=0"`
}

// maxSaveBytes bounds an uploaded save document.
const maxSaveBytes = 1 << 20

// GameHandler serves /v1/games.
type GameHandler struct {
	games  *game.Service
	logger *slog.Logger
}

func NewGameHandler(games *game.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		games:  games,
		logger: logger,
	}
}

// Routes returns the router to mount at /v1/games.
func (h *GameHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.handleCreate)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Delete("/", h.handleDelete)
		r.Post("/reset", h.simple(h.games.Reset))
		r.Post("/age", h.handleAge)
		r.Post("/character", h.handleCharacter)
		r.Post("/pet", h.simple(h.games.AssignPet))
		r.Post("/pet/name", h.handlePetName)
		r.Post("/move", h.handleMove)
		r.Post("/activities/{activity}", h.handleActivity)
		r.Post("/shop/buy", h.handleBuy)
		r.Post("/shop/adopt", h.handleAdopt)
		r.Post("/inventory/{item}/use", h.handleUseItem)
		r.Delete("/inventory/{item}", h.handleDiscardItem)
		r.Post("/math", h.simple(h.games.StartMath))
		r.Post("/math/answer", h.handleAnswer)
		r.Post("/adventure/treasure", h.simple(h.games.OpenTreasure))
		r.Post("/battle", h.handleStartBattle)
		r.Get("/battle", h.handleSnapshot)
		r.Post("/battle/actions", h.handleBattleAction)
		r.Post("/battle/leave", h.simple(h.games.LeaveBattle))
		r.Get("/save", h.handleSave)
		r.Post("/load", h.handleLoad)
	})
	return r
}

func (h *GameHandler) gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return parseGameID(w, h.logger, chi.URLParam(r, "id"))
}

func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, res interface{}, err error) {
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, res)
}

// simple adapts operations that take nothing but the game ID.
func (h *GameHandler) simple(op func(context.Context, uuid.UUID) (*game.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.gameID(w, r)
		if !ok {
			return
		}
		res, err := op(r.Context(), id)
		h.respond(w, r, res, err)
	}
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	snap, err := h.games.NewGame(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Location", "/v1/games/"+snap.Game.ID.String())
	writeJSON(w, h.logger, http.StatusCreated, snap)
}

func (h *GameHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	snap, err := h.games.Snapshot(r.Context(), id)
	h.respond(w, r, snap, err)
}

func (h *GameHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	if err := h.games.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) handleAge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req AgeRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.VerifyAge(r.Context(), id, req.Age)
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req CharacterRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.CreateCharacter(r.Context(), id, game.CharacterInput{
		Name:  req.Name,
		Age:   req.Age,
		Color: req.Color,
	})
	h.respond(w, r, res, err)
}

func (h *GameHandler) handlePetName(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req PetNameRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.NamePet(r.Context(), id, req.Name)
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleMove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.Move(r.Context(), id, state.Location(req.Location))
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	res, err := h.games.DoActivity(r.Context(), id, chi.URLParam(r, "activity"))
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleBuy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req BuyRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.Buy(r.Context(), id, req.ItemID)
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleAdopt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req AdoptRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.Adopt(r.Context(), id, actor.Species(strings.ToLower(req.Species)))
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleUseItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	res, err := h.games.UseItem(r.Context(), id, chi.URLParam(r, "item"))
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleDiscardItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	res, err := h.games.DiscardItem(r.Context(), id, chi.URLParam(r, "item"))
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req AnswerRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.AnswerMath(r.Context(), id, *req.Answer)
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleStartBattle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req BattleRequest
	// The body is optional; an empty one picks a random foe.
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.StartBattle(r.Context(), id, game.BattleInput{Enemy: req.Enemy, Level: req.Level})
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleBattleAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	var req ActionRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}
	res, err := h.games.BattleAction(r.Context(), id, *req.Action)
	h.respond(w, r, res, err)
}

func (h *GameHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	data, err := h.games.Save(r.Context(), id)
	h.respond(w, r, data, err)
}

func (h *GameHandler) handleLoad(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSaveBytes))
	if err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Failed to read request body"})
		return
	}
	data, err := save.Parse(raw)
	if err != nil {
		h.logger.Warn("Rejected save upload", "game_id", id, "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	res, err := h.games.Load(r.Context(), id, data)
	h.respond(w, r, res, err)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/town"
)

// CatalogResponse is the static game data a client renders menus from.
type CatalogResponse struct {
	Locations     []town.Place            `json:"locations"`
	Activities    []town.Activity         `json:"activities"`
	ShopItems     []town.ShopItem         `json:"shop_items"`
	AdoptionPrice int                     `json:"adoption_price"`
	Actions       []battle.Action         `json:"actions"`
	Species       []actor.SpeciesTemplate `json:"species"`
	Enemies       []actor.EnemyTemplate   `json:"enemies"`
	Encounters    []town.Encounter        `json:"encounters"`
}

// CatalogHandler serves GET /v1/catalog.
type CatalogHandler struct {
	logger *slog.Logger
}

func NewCatalogHandler(logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, CatalogResponse{
		Locations:     town.Places(),
		Activities:    town.Activities(),
		ShopItems:     town.ShopItems(),
		AdoptionPrice: town.AdoptionPrice,
		Actions:       battle.Actions(),
		Species:       actor.AllSpecies(),
		Enemies:       actor.EnemyTemplates(),
		Encounters:    town.Encounters(),
	})
}

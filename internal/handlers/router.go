package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/internal/metrics"
	"github.com/jwebster45206/pet-adventure/internal/middleware"
	"github.com/jwebster45206/pet-adventure/pkg/storage"
)

// RouterDeps are the services the API routes need. Subscriber may be nil,
// which leaves the events stream unmounted.
type RouterDeps struct {
	Storage    storage.Storage
	Games      *game.Service
	Subscriber Subscriber
	Logger     *slog.Logger
}

// NewRouter wires every API route.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(deps.Logger))
	r.Use(metrics.Middleware)

	r.Handle("/health", NewHealthHandler(deps.Storage, deps.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", NewCatalogHandler(deps.Logger).ServeHTTP)
		r.Mount("/games", NewGameHandler(deps.Games, deps.Logger).Routes())
		if deps.Subscriber != nil {
			r.Get("/events/games/{id}", NewEventsHandler(deps.Subscriber, deps.Logger).ServeHTTP)
		}
	})
	return r
}

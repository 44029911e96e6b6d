package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/pet-adventure/internal/config"
	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/internal/handlers"
	"github.com/jwebster45206/pet-adventure/internal/logger"
	"github.com/jwebster45206/pet-adventure/internal/services/events"
	"github.com/jwebster45206/pet-adventure/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Pet Adventure API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"save_ttl", cfg.SaveTTL,
		"battle_ttl", cfg.BattleTTL)

	client, err := storage.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Error("Invalid Redis configuration", "error", err)
		os.Exit(1)
	}
	redisStore := storage.NewRedisStorage(client, cfg.SaveTTL, cfg.BattleTTL, log)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := redisStore.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	store := storage.NewCachedStorage(redisStore, cfg.CacheSize, cfg.CacheTTL)
	broadcaster := events.NewBroadcaster(client, log)
	games := game.NewService(store, log, game.WithBroadcaster(broadcaster))

	handler := handlers.NewRouter(handlers.RouterDeps{
		Storage:    store,
		Games:      games,
		Subscriber: broadcaster,
		Logger:     log,
	})
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the events stream stays open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}

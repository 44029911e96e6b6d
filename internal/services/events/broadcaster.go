package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/pet-adventure/internal/metrics"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeBattleStarted    EventType = "battle.started"
	EventTypeBattleStep       EventType = "battle.step"
	EventTypeBattleEnded      EventType = "battle.ended"
	EventTypeGameStateUpdated EventType = "game.state_updated"
)

// Event represents a generic event structure
type Event struct {
	Type   EventType              `json:"type"`
	GameID string                 `json:"game_id,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Channel is the pub/sub channel for one game.
func Channel(gameID uuid.UUID) string {
	return "game:" + gameID.String()
}

// Broadcaster publishes game events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishBattleStarted announces a new fight.
func (b *Broadcaster) PublishBattleStarted(ctx context.Context, gameID uuid.UUID, enemy string, level int) error {
	return b.publishToGame(ctx, gameID, Event{
		Type:   EventTypeBattleStarted,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"enemy": enemy,
			"level": level,
		},
	})
}

// PublishBattleStep publishes one line of the battle log.
func (b *Broadcaster) PublishBattleStep(ctx context.Context, gameID uuid.UUID, turn int, battleState, message string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type:   EventTypeBattleStep,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"turn":    turn,
			"state":   battleState,
			"message": message,
		},
	})
}

// PublishBattleEnded reports the outcome and rewards.
func (b *Broadcaster) PublishBattleEnded(ctx context.Context, gameID uuid.UUID, won bool, coins, experience int) error {
	return b.publishToGame(ctx, gameID, Event{
		Type:   EventTypeBattleEnded,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"won":        won,
			"coins":      coins,
			"experience": experience,
		},
	})
}

// PublishGameStateUpdated publishes a game.state_updated event
func (b *Broadcaster) PublishGameStateUpdated(ctx context.Context, gameID uuid.UUID, phase, location string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type:   EventTypeGameStateUpdated,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"phase":    phase,
			"location": location,
		},
	})
}

// Subscribe opens a subscription to one game's channel. The caller closes it.
func (b *Broadcaster) Subscribe(ctx context.Context, gameID uuid.UUID) *redis.PubSub {
	return b.redisClient.Subscribe(ctx, Channel(gameID))
}

// publishToGame publishes an event to the game-specific channel
func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	channel := Channel(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}
	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
	)

	return nil
}

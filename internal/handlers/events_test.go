package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/pet-adventure/internal/services/events"
)

func TestEventsHandler_InvalidID(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/v1/events/games/{id}", NewEventsHandler(nil, testLogger()).ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/events/games/nope", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEventsHandler_StreamsEvents(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	broadcaster := events.NewBroadcaster(client, testLogger())
	r := chi.NewRouter()
	r.Get("/v1/events/games/{id}", NewEventsHandler(broadcaster, testLogger()).ServeHTTP)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gameID := uuid.New()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/events/games/"+gameID.String(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var name, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "" && name != "":
				return name, data
			}
		}
	}

	name, _ := readEvent()
	assert.Equal(t, "connected", name)

	require.NoError(t, broadcaster.PublishBattleStarted(ctx, gameID, "Wild Cat", 1))
	name, data := readEvent()
	assert.Equal(t, string(events.EventTypeBattleStarted), name)
	assert.Contains(t, data, `"enemy":"Wild Cat"`)
}

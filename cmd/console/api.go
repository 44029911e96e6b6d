package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/town"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Needed int    `json:"needed,omitempty"`
}

// Catalog is the part of /v1/catalog the console shows.
type Catalog struct {
	Locations     []town.Place    `json:"locations"`
	Activities    []town.Activity `json:"activities"`
	ShopItems     []town.ShopItem `json:"shop_items"`
	AdoptionPrice int             `json:"adoption_price"`
	Actions       []battle.Action `json:"actions"`
	Species       []struct {
		Type actor.Species `json:"type"`
	} `json:"species"`
}

// APIError is a non-2xx reply from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// APIClient talks to the game API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, client: client}
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(respBody))}
		}
		return &APIError{Status: resp.StatusCode, Message: errorResp.Error}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *APIClient) result(ctx context.Context, method, path string, body interface{}) (*game.Result, error) {
	var res game.Result
	if err := c.do(ctx, method, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func gamePath(id uuid.UUID, suffix string) string {
	return "/v1/games/" + id.String() + suffix
}

func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *APIClient) Catalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	if err := c.do(ctx, http.MethodGet, "/v1/catalog", nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *APIClient) NewGame(ctx context.Context) (*game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.do(ctx, http.MethodPost, "/v1/games", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *APIClient) Snapshot(ctx context.Context, id uuid.UUID) (*game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.do(ctx, http.MethodGet, gamePath(id, ""), nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *APIClient) VerifyAge(ctx context.Context, id uuid.UUID, age int) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/age"), map[string]int{"age": age})
}

func (c *APIClient) CreateCharacter(ctx context.Context, id uuid.UUID, name string) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/character"), map[string]string{"name": name})
}

func (c *APIClient) AssignPet(ctx context.Context, id uuid.UUID) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/pet"), nil)
}

func (c *APIClient) NamePet(ctx context.Context, id uuid.UUID, name string) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/pet/name"), map[string]string{"name": name})
}

func (c *APIClient) Move(ctx context.Context, id uuid.UUID, to state.Location) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/move"), map[string]state.Location{"location": to})
}

func (c *APIClient) DoActivity(ctx context.Context, id uuid.UUID, activity string) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/activities/"+url.PathEscape(activity)), nil)
}

func (c *APIClient) Buy(ctx context.Context, id uuid.UUID, itemID string) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/shop/buy"), map[string]string{"item_id": itemID})
}

func (c *APIClient) Adopt(ctx context.Context, id uuid.UUID, species actor.Species) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/shop/adopt"), map[string]actor.Species{"species": species})
}

func (c *APIClient) UseItem(ctx context.Context, id uuid.UUID, itemID string) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/inventory/"+url.PathEscape(itemID)+"/use"), nil)
}

func (c *APIClient) StartMath(ctx context.Context, id uuid.UUID) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/math"), nil)
}

func (c *APIClient) AnswerMath(ctx context.Context, id uuid.UUID, answer int) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/math/answer"), map[string]int{"answer": answer})
}

func (c *APIClient) OpenTreasure(ctx context.Context, id uuid.UUID) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/adventure/treasure"), nil)
}

func (c *APIClient) StartBattle(ctx context.Context, id uuid.UUID) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/battle"), nil)
}

func (c *APIClient) BattleAction(ctx context.Context, id uuid.UUID, action int) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/battle/actions"), map[string]int{"action": action})
}

func (c *APIClient) LeaveBattle(ctx context.Context, id uuid.UUID) (*game.Result, error) {
	return c.result(ctx, http.MethodPost, gamePath(id, "/battle/leave"), nil)
}

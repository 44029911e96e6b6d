package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running pet-adventure API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	KeepGames         bool // Skip deleting games after each suite
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite on a fresh game
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	gameID, err := r.createGame(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create game: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Game = gameID
	if !r.KeepGames {
		defer r.deleteGame(gameID)
	}

	if suite.Seed != nil {
		seed, err := json.Marshal(suite.Seed)
		if err != nil {
			result.Error = fmt.Errorf("failed to marshal seed: %w", err)
			result.Duration = time.Since(start)
			return result, result.Error
		}
		status, body, err := r.send(ctx, http.MethodPost, gamePath(gameID, "/load"), seed)
		if err == nil && status != http.StatusOK {
			err = fmt.Errorf("load returned status %d: %s", status, string(body))
		}
		if err != nil {
			result.Error = fmt.Errorf("failed to seed game: %w", err)
			result.Duration = time.Since(start)
			return result, result.Error
		}
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, gameID, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func gamePath(id uuid.UUID, suffix string) string {
	return "/v1/games/" + id.String() + suffix
}

func (r *Runner) send(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func (r *Runner) createGame(ctx context.Context) (uuid.UUID, error) {
	status, body, err := r.send(ctx, http.MethodPost, "/v1/games", nil)
	if err != nil {
		return uuid.Nil, err
	}
	if status != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("create returned status %d: %s", status, string(body))
	}
	var snap game.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse created game: %w", err)
	}
	if snap.Game == nil {
		return uuid.Nil, fmt.Errorf("created game has no state")
	}
	return snap.Game.ID, nil
}

func (r *Runner) deleteGame(id uuid.UUID) {
	status, _, err := r.send(context.Background(), http.MethodDelete, gamePath(id, ""), nil)
	if err != nil || status != http.StatusNoContent {
		r.Logger("    failed to delete game %s (status %d): %v", id, status, err)
	}
}

func (r *Runner) getSnapshot(ctx context.Context, id uuid.UUID) (*game.Snapshot, error) {
	status, body, err := r.send(ctx, http.MethodGet, gamePath(id, ""), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("snapshot returned status %d: %s", status, string(body))
	}
	var snap game.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

func (r *Runner) runStep(ctx context.Context, id uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	method := step.Method
	if method == "" {
		method = http.MethodPost
	}
	status, body, err := r.send(ctx, method, gamePath(id, step.Path), step.Body)
	result.ResponseText = string(body)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	if err := r.checkResponse(step.Expectations, status, body); err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	snap, err := r.getSnapshot(ctx, id)
	if err == nil {
		err = checkSnapshot(step.Expectations, snap)
	}
	result.Error = err
	result.Success = err == nil
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) checkResponse(exp Expectations, status int, body []byte) error {
	want := exp.Status
	if want == 0 {
		want = http.StatusOK
	}
	if status != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, status, string(body))
	}

	if status >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err != nil {
			return fmt.Errorf("failed to parse error response: %w", err)
		}
		if exp.ErrContains != "" && !strings.Contains(errResp.Error, exp.ErrContains) {
			return fmt.Errorf("expected error containing %q, got %q", exp.ErrContains, errResp.Error)
		}
		return nil
	}

	if len(exp.ResponseContains) == 0 && exp.MinSteps == nil {
		return nil
	}
	var res game.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("failed to parse result: %w", err)
	}
	text := res.Message
	for _, s := range res.Steps {
		text += "\n" + s.Message
	}
	for _, want := range exp.ResponseContains {
		if !strings.Contains(strings.ToLower(text), strings.ToLower(want)) {
			return fmt.Errorf("expected response to contain %q, got %q", want, text)
		}
	}
	if exp.MinSteps != nil && len(res.Steps) < *exp.MinSteps {
		return fmt.Errorf("expected at least %d battle steps, got %d", *exp.MinSteps, len(res.Steps))
	}
	return nil
}

func checkSnapshot(exp Expectations, snap *game.Snapshot) error {
	gs, player := snap.Game, snap.Player
	if gs == nil || player == nil {
		return fmt.Errorf("snapshot is missing game or player")
	}

	var errs []string
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if exp.Phase != nil && string(gs.Phase) != *exp.Phase {
		fail("expected phase %q, got %q", *exp.Phase, gs.Phase)
	}
	if exp.Location != nil && string(gs.Location) != *exp.Location {
		fail("expected location %q, got %q", *exp.Location, gs.Location)
	}
	if exp.Coins != nil && player.Coins != *exp.Coins {
		fail("expected %d coins, got %d", *exp.Coins, player.Coins)
	}
	if exp.PlayerName != nil && player.Name != *exp.PlayerName {
		fail("expected player name %q, got %q", *exp.PlayerName, player.Name)
	}
	if exp.HasPet != nil && (snap.Pet != nil) != *exp.HasPet {
		fail("expected has_pet %v", *exp.HasPet)
	}
	if exp.PetName != nil && (snap.Pet == nil || snap.Pet.Name != *exp.PetName) {
		fail("expected pet name %q", *exp.PetName)
	}
	if exp.InBattle != nil && (gs.Phase == state.PhaseBattle) != *exp.InBattle {
		fail("expected in_battle %v, phase is %q", *exp.InBattle, gs.Phase)
	}
	for _, l := range exp.Unlocked {
		if !slices.Contains(gs.UnlockedLocations, state.Location(l)) {
			fail("expected %q to be unlocked", l)
		}
	}
	if exp.Inventory != nil {
		var got []string
		for _, it := range player.Inventory {
			got = append(got, it.ID)
		}
		want := slices.Clone(exp.Inventory)
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			fail("expected inventory %v, got %v", want, got)
		}
	}
	if exp.BattlesWon != nil && gs.CompletedBattles != *exp.BattlesWon {
		fail("expected %d battles won, got %d", *exp.BattlesWon, gs.CompletedBattles)
	}
	if exp.Activities != nil && gs.CompletedActivities != *exp.Activities {
		fail("expected %d activities, got %d", *exp.Activities, gs.CompletedActivities)
	}
	if exp.MinLevel != nil && snap.PlayerLevel < *exp.MinLevel {
		fail("expected level >= %d, got %d", *exp.MinLevel, snap.PlayerLevel)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

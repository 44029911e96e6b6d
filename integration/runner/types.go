package runner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/pet-adventure/pkg/save"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `json:"name"`
	Seed  *save.Data `json:"seed,omitempty"`  // Loaded into the new game before the first step
	Steps []TestStep `json:"steps,omitempty"` // Used for regular tests
	Cases []string   `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one request against the game under test. Path is relative to
// /v1/games/{id}.
type TestStep struct {
	Name         string          `json:"name,omitempty"`
	Method       string          `json:"method,omitempty"` // Defaults to POST
	Path         string          `json:"path"`
	Body         json.RawMessage `json:"body,omitempty"`
	Expectations Expectations    `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	Status int `json:"status,omitempty"` // Defaults to 200

	// Snapshot properties, checked against a fresh GET after the step
	Phase       *string  `json:"phase,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Coins       *int     `json:"coins,omitempty"`
	PlayerName  *string  `json:"player_name,omitempty"`
	HasPet      *bool    `json:"has_pet,omitempty"`
	PetName     *string  `json:"pet_name,omitempty"`
	InBattle    *bool    `json:"in_battle,omitempty"`
	Unlocked    []string `json:"unlocked,omitempty"`  // Locations that must be open
	Inventory   []string `json:"inventory,omitempty"` // Full inventory item IDs (order independent)
	BattlesWon  *int     `json:"battles_won,omitempty"`
	Activities  *int     `json:"activities,omitempty"`
	MinLevel    *int     `json:"min_level,omitempty"`
	ErrContains string   `json:"error_contains,omitempty"`

	// Response Analysis
	ResponseContains []string `json:"response_contains,omitempty"`
	MinSteps         *int     `json:"min_steps,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Game     uuid.UUID // ID of the game used for this test
}

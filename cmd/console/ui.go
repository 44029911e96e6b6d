package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/pet-adventure/internal/game"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/battle"
	"github.com/jwebster45206/pet-adventure/pkg/controls"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

// stepDelay paces battle steps so each one can be read.
const stepDelay = time.Second

const menuWidth = 38

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config  *ConsoleConfig
	api     *APIClient
	gameID  uuid.UUID
	snap    *game.Snapshot
	catalog *Catalog

	input   textinput.Model
	logView viewport.Model
	lines   []string

	tab     tab
	cursor  int
	pending []battle.Step
	busy    bool

	ready  bool
	width  int
	height int
}

type resultMsg struct {
	res *game.Result
	err error
}

type stepTickMsg struct{}

type copiedMsg struct {
	err error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	battleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func NewConsoleUI(cfg *ConsoleConfig, api *APIClient, snap *game.Snapshot, cat *Catalog) ConsoleUI {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 40
	ti.Width = menuWidth - 6
	ti.Focus()

	ui := ConsoleUI{
		config:  cfg,
		api:     api,
		snap:    snap,
		catalog: cat,
		input:   ti,
		logView: viewport.New(50, 20),
	}
	if snap != nil && snap.Game != nil {
		ui.gameID = snap.Game.ID
	}
	ui.addLine(titleStyle.Render("PET ADVENTURE"))
	ui.addLine("Welcome! Raise a pet, explore the town and win battles together.")
	return ui
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logView.Width = max(20, msg.Width-menuWidth-6)
		m.logView.Height = max(5, msg.Height-6)
		m.ready = true
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		return m.handleResult(msg)

	case stepTickMsg:
		if len(m.pending) == 0 {
			m.busy = false
			return m, nil
		}
		step := m.pending[0]
		m.pending = m.pending[1:]
		m.addLine(battleStyle.Render(step.Message))
		if len(m.pending) == 0 {
			m.busy = false
			return m, nil
		}
		return m, stepTick()

	case copiedMsg:
		if msg.err != nil {
			m.addLine(errorStyle.Render("Could not copy the game ID: " + msg.err.Error()))
		} else {
			m.addLine("Game ID copied to the clipboard.")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if prompt := inputPrompt(m.snap); prompt != "" {
		switch key {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			return m, m.submit(value)
		case "esc":
			m.input.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	opts := menuFor(m.snap, m.catalog, m.tab)
	switch controls.Lookup(key) {
	case controls.Quit:
		return m, tea.Quit
	case controls.Forward:
		if m.cursor > 0 {
			m.cursor--
		}
	case controls.Backward:
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case controls.Leftward:
		m.switchTab(tabDo)
	case controls.Rightward:
		m.switchTab(tabGo)
	case controls.Inventory:
		m.switchTab(tabInventory)
	case controls.Back:
		m.switchTab(tabDo)
	case controls.CopyID:
		return m, copyID(m.gameID)
	case controls.Interact:
		if m.busy || m.cursor >= len(opts) {
			return m, nil
		}
		return m, m.choose(opts[m.cursor])
	}
	return m, nil
}

func (m *ConsoleUI) switchTab(t tab) {
	m.tab = t
	m.cursor = 0
}

func (m ConsoleUI) call(fn func(ctx context.Context, id uuid.UUID) (*game.Result, error)) tea.Cmd {
	id := m.gameID
	timeout := m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := fn(ctx, id)
		return resultMsg{res: res, err: err}
	}
}

// submit sends typed input for the current phase.
func (m ConsoleUI) submit(value string) tea.Cmd {
	gs := m.snap.Game
	switch gs.Phase {
	case state.PhaseWelcome, state.PhaseAgeVerification:
		age, err := strconv.Atoi(value)
		if err != nil {
			return inputError("Please type your age as a number.")
		}
		return m.call(func(ctx context.Context, id uuid.UUID) (*game.Result, error) {
			return m.api.VerifyAge(ctx, id, age)
		})
	case state.PhaseCharacterCreation:
		return m.call(func(ctx context.Context, id uuid.UUID) (*game.Result, error) {
			return m.api.CreateCharacter(ctx, id, value)
		})
	case state.PhasePetAssignment:
		return m.call(func(ctx context.Context, id uuid.UUID) (*game.Result, error) {
			return m.api.NamePet(ctx, id, value)
		})
	default:
		answer, err := strconv.Atoi(value)
		if err != nil {
			return inputError("Type the answer as a number.")
		}
		return m.call(func(ctx context.Context, id uuid.UUID) (*game.Result, error) {
			return m.api.AnswerMath(ctx, id, answer)
		})
	}
}

func inputError(text string) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{err: errors.New(text)}
	}
}

// choose runs the request behind a menu option.
func (m ConsoleUI) choose(o Option) tea.Cmd {
	return m.call(func(ctx context.Context, id uuid.UUID) (*game.Result, error) {
		switch o.Kind {
		case optActivity:
			return m.api.DoActivity(ctx, id, o.Arg)
		case optBuy:
			return m.api.Buy(ctx, id, o.Arg)
		case optAdopt:
			return m.api.Adopt(ctx, id, actor.Species(o.Arg))
		case optMath:
			return m.api.StartMath(ctx, id)
		case optTreasure:
			return m.api.OpenTreasure(ctx, id)
		case optFight:
			return m.api.StartBattle(ctx, id)
		case optMove:
			return m.api.Move(ctx, id, state.Location(o.Arg))
		case optUse:
			return m.api.UseItem(ctx, id, o.Arg)
		case optAction:
			return m.api.BattleAction(ctx, id, o.Index)
		case optLeave:
			return m.api.LeaveBattle(ctx, id)
		}
		return nil, fmt.Errorf("unknown option %q", o.Label)
	})
}

func (m ConsoleUI) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addLine(errorStyle.Render(msg.err.Error()))
		return m, nil
	}
	res := msg.res
	if res.Snapshot != nil {
		m.snap = res.Snapshot
	}
	if n := len(menuFor(m.snap, m.catalog, m.tab)); m.cursor >= n {
		m.cursor = max(0, n-1)
	}

	var cmds []tea.Cmd
	if len(res.Steps) > 0 {
		m.pending = append(m.pending, res.Steps...)
		m.busy = true
		cmds = append(cmds, stepTick())
	} else if res.Message != "" {
		m.addLine(res.Message)
	}

	// A pet is handed out as soon as the character exists.
	if m.snap != nil && m.snap.Game != nil && m.snap.Game.Phase == state.PhasePetAssignment && m.snap.Pet == nil {
		cmds = append(cmds, m.call(m.api.AssignPet))
	}
	return m, tea.Batch(cmds...)
}

func stepTick() tea.Cmd {
	return tea.Tick(stepDelay, func(time.Time) tea.Msg {
		return stepTickMsg{}
	})
}

func copyID(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(id.String())}
	}
}

func (m *ConsoleUI) addLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshLog()
}

func (m *ConsoleUI) refreshLog() {
	width := max(10, m.logView.Width-2)
	wrapped := make([]string, len(m.lines))
	for i, l := range m.lines {
		wrapped[i] = wordwrap.String(l, width)
	}
	m.logView.SetContent(strings.Join(wrapped, "\n\n"))
	m.logView.GotoBottom()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	left := panelStyle.Width(menuWidth).Height(m.logView.Height).Render(m.leftPanel())
	right := panelStyle.Width(m.logView.Width).Render(m.logView.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		statusLine(m.snap),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		promptStyle.Render(controls.Help()),
	)
}

func (m ConsoleUI) leftPanel() string {
	var b strings.Builder
	if prompt := inputPrompt(m.snap); prompt != "" {
		b.WriteString(titleStyle.Render(prompt) + "\n\n")
		b.WriteString(m.input.View())
		return b.String()
	}

	heading := m.tab.String()
	if m.snap != nil && m.snap.Battle != nil {
		heading = "Battle"
		if e := m.snap.Battle.Enemy; e != nil {
			heading = fmt.Sprintf("Battle: %s L%d %d/%d", e.Name, e.Level, e.Health, e.MaxHealth)
		}
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")

	opts := menuFor(m.snap, m.catalog, m.tab)
	if len(opts) == 0 {
		b.WriteString(promptStyle.Render("Nothing here."))
	}
	for i, o := range opts {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+o.Label) + "\n")
			continue
		}
		b.WriteString("  " + o.Label + "\n")
	}
	if m.busy {
		b.WriteString("\n" + battleStyle.Render("..."))
	}
	return b.String()
}

func statusLine(snap *game.Snapshot) string {
	if snap == nil || snap.Game == nil || snap.Player == nil {
		return titleStyle.Render("PET ADVENTURE")
	}
	p := snap.Player
	parts := []string{
		titleStyle.Render("PET ADVENTURE"),
		fmt.Sprintf("%s L%d", p.Name, snap.PlayerLevel),
		fmt.Sprintf("HP %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Coins %d", p.Coins),
		"@ " + string(snap.Game.Location),
	}
	if pet := snap.Pet; pet != nil {
		parts = append(parts, fmt.Sprintf("%s HP %d/%d Joy %d", pet.Name, pet.Health, pet.MaxHealth, pet.Happiness))
	}
	return statStyle.Render(strings.Join(parts, "  |  "))
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/replay"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

// MaxNameLength caps the name typed for a high score.
const MaxNameLength = 12

// RunOptions configure a game run.
type RunOptions struct {
	Game       registry.Options // options the game was created with
	RecordPath string           // write a replay here when the program exits
	Logger     *log.Logger
	Session    bool // inside a menu session: leaving the game returns to the menu
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       RunOptions
	keys       GameKeyMap
	help       help.Model
	log        *log.Logger
	recorder   *replay.Recorder
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string
	loop       uint64

	nameInput  textinput.Model
	naming     bool
	scoreSaved bool

	quitting   bool
	backToMenu bool
	err        error
}

// NewModel creates a model for game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts RunOptions) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	input := textinput.New()
	input.Placeholder = "YOUR NAME"
	input.CharLimit = MaxNameLength
	input.Width = MaxNameLength + 1

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      store,
		config:     cfg,
		opts:       opts,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		log:        logger,
		inputFrame: core.NewInputFrame(),
		nameInput:  input,
		loop:       nextLoop(),
	}
	m.help.Width = cfg.ScreenW
	m.startRun()
	return m
}

// startRun resets the game for a fresh run with the current seed.
func (m *Model) startRun() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.naming = false
	m.inputFrame.Clear()
	if m.opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(m.game.ID(), m.config, m.opts.Game)
		m.runID = m.recorder.ID()
	} else {
		m.runID = uuid.NewString()
	}
	m.log.Debug("run started", "game", m.game.ID(), "seed", m.config.Seed, "run", m.runID)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop || m.Done() {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m Model) exit() (tea.Model, tea.Cmd) {
	if m.opts.Session && !m.quitting {
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionCancel:
		if m.gameState.GameOver {
			m.backToMenu = true
			return m.exit()
		}
		m.inputFrame.Set(action)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.saveScore("")
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.saveScore(strings.TrimSpace(m.nameInput.Value()))
		return m, nil
	case tea.KeyEsc:
		m.saveScore("")
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.nameInput.SetValue(SanitizeName(m.nameInput.Value()))
	return m, cmd
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver && !m.naming {
		m.config.Seed = time.Now().UnixNano()
		m.startRun()
		return m, tickCmd(m.loop, m.config.TickRate)
	}

	var result core.StepResult
	if m.recorder != nil {
		result = m.recorder.Step(m.game, m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame)
	}
	m.gameState = result.State
	m.inputFrame.Clear()
	for _, e := range result.Events {
		m.log.Debug("game event", "game", m.game.ID(), "event", e)
	}

	if f, ok := m.game.(registry.Faulter); ok && f.Err() != nil {
		m.err = f.Err()
		m.log.Error("game cannot continue", "game", m.game.ID(), "err", m.err)
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.gameState.GameOver && !m.scoreSaved && !m.naming {
		m.finishRun()
		if m.naming {
			cmd = m.nameInput.Focus()
		}
	}
	return m, tea.Batch(cmd, tickCmd(m.loop, m.config.TickRate))
}

// finishRun records the score of a finished run. Scores that make the
// table prompt for a name first; practice runs are never recorded.
func (m *Model) finishRun() {
	st := m.gameState
	if st.Practice || st.Score <= 0 || m.store == nil {
		m.scoreSaved = true
		return
	}
	if m.store.Qualifies(m.game.ID(), st.Score) {
		m.naming = true
		m.nameInput.Reset()
		return
	}
	m.saveScore("")
}

func (m *Model) saveScore(name string) {
	m.naming = false
	m.scoreSaved = true
	m.nameInput.Blur()
	if m.store == nil {
		return
	}
	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Name:   SanitizeName(name),
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
		RunID:  m.runID,
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.log.Warn("could not save score", "game", entry.GameID, "score", entry.Score, "err", err)
	}
}

// SanitizeName upper-cases a typed name, drops everything but letters and
// spaces and caps the length.
func SanitizeName(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToUpper(s) {
		if n == MaxNameLength {
			break
		}
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// saveScreenshot writes the current screen as plain text under the user dir.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)
	dir := config.UserDir()
	if dir == "" {
		return
	}
	dir = filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot failed", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "err", err)
	}
}

var (
	promptTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	promptBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("14")).Padding(1, 3)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the game, or the name prompt after a qualifying run.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.naming {
		body := lipgloss.JoinVertical(lipgloss.Center,
			promptTitle.Render("NEW HIGH SCORE"),
			fmt.Sprintf("Score %d", m.gameState.Score),
			"",
			m.nameInput.View(),
			"",
			helpStyle.Render("enter: save  esc: skip"),
		)
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, promptBox.Render(body))
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Done reports whether the player has left the game.
func (m Model) Done() bool { return m.quitting || m.backToMenu }

// Quitting reports whether the player asked to quit entirely.
func (m Model) Quitting() bool { return m.quitting }

// Err returns the failure that stopped the game, if any.
func (m Model) Err() error { return m.err }

// Recording returns the replay of the current run, or nil when not recording.
func (m Model) Recording() *replay.Recording {
	if m.recorder == nil {
		return nil
	}
	return m.recorder.Recording()
}

// Run plays game in the terminal until the player quits. A game that
// fails to start is reported as an error.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts RunOptions) error {
	opts.Session = false
	p := tea.NewProgram(NewModel(game, store, cfg, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	m, ok := final.(Model)
	if !ok {
		return nil
	}
	if rec := m.Recording(); rec != nil {
		if err := replay.Save(opts.RecordPath, rec); err != nil {
			return err
		}
		m.log.Info("replay saved", "path", opts.RecordPath, "ticks", rec.Ticks)
	}
	return m.Err()
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the flow menu -> game or scores -> menu.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	base     registry.Options // config path, difficulty and logger for every game
	log      *log.Logger
	view     sessionView
	menu     MenuModel
	game     *Model
	scores   *ScoreboardModel
	quitting bool
	err      error
}

// NewSessionModel creates a session for user. Practice level titles come
// from the standard catalog; when it cannot be read the picker is hidden
// and the failure surfaces once a game is started.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, base registry.Options, user string) SessionModel {
	logger := base.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("user", user)
	base.Logger = logger

	var titles []string
	if cat, err := blockbreak.LoadCatalog(blockbreak.ModeStandard, base.ConfigPath); err != nil {
		logger.Warn("level catalog unavailable", "err", err)
	} else {
		titles = cat.Titles()
	}

	return SessionModel{
		store:  store,
		config: cfg,
		base:   base,
		log:    logger,
		menu:   NewMenuModel(titles, cfg),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd { return m.menu.Init() }

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = wsm.Width, wsm.Height
	}
	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch choice := m.menu.Selected(); choice {
	case ChoiceNone:
		return m, cmd
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceScores:
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scores = &board
		m.view = viewScores
		return m, board.Init()
	default:
		return m.startGame(choice)
	}
}

func (m SessionModel) startGame(choice Choice) (tea.Model, tea.Cmd) {
	opts := m.base
	opts.StartLevel = 1
	if choice == ChoicePractice {
		opts.Practice = true
		opts.StartLevel = m.menu.PracticeLevel()
	}
	game, err := registry.Create(choice.GameID(), opts)
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	model := NewModel(game, m.store, cfg, RunOptions{Game: opts, Logger: m.log, Session: true})
	m.game = &model
	m.view = viewGame
	m.log.Info("game started", "game", game.ID(), "practice", opts.Practice, "level", opts.StartLevel)
	return m, model.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	model := next.(Model)
	m.game = &model

	if err := model.Err(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if model.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if model.Done() {
		m.log.Info("game finished", "game", model.game.ID(), "score", model.gameState.Score)
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	board := next.(ScoreboardModel)
	m.scores = &board

	if board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if board.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.game = nil
	m.scores = nil
	m.menu.selected = ChoiceNone
	m.menu.width, m.menu.height = m.config.ScreenW, m.config.ScreenH
	m.menu.config = m.config
	return m, nil
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Err returns the failure that ended the session, if any.
func (m SessionModel) Err() error { return m.err }

// RunSession runs the menu session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, base registry.Options, user string) error {
	final, err := tea.NewProgram(NewSessionModel(store, cfg, base, user), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		return m.Err()
	}
	return nil
}

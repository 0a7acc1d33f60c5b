package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/levels"
)

// Choice is a main-menu entry.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoicePlay
	ChoicePractice
	ChoicePuzzle
	ChoiceScores
	ChoiceQuit
)

var menuChoices = []Choice{ChoicePlay, ChoicePractice, ChoicePuzzle, ChoiceScores, ChoiceQuit}

func (c Choice) String() string {
	switch c {
	case ChoicePlay:
		return "Play"
	case ChoicePractice:
		return "Practice"
	case ChoicePuzzle:
		return "Puzzle"
	case ChoiceScores:
		return "High Scores"
	case ChoiceQuit:
		return "Quit"
	default:
		return ""
	}
}

// MenuModel is the main menu. The Practice entry carries a level picker
// that steps with left/right and wraps at both ends.
type MenuModel struct {
	titles   []string // practice level titles, 1-based order
	cursor   int
	level    int // practice level, 1-based
	width    int
	height   int
	config   core.RuntimeConfig
	selected Choice
}

// NewMenuModel creates the main menu. titles lists the practice levels.
func NewMenuModel(titles []string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		titles: titles,
		level:  1,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd { return nil }

// Update handles menu navigation.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.selected = ChoiceQuit
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, len(menuChoices))
	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, len(menuChoices))
	case MenuActionLeft:
		if menuChoices[m.cursor] == ChoicePractice {
			m.level = levels.WrapIndex(m.level-1, len(m.titles))
		}
	case MenuActionRight:
		if menuChoices[m.cursor] == ChoicePractice {
			m.level = levels.WrapIndex(m.level+1, len(m.titles))
		}
	case MenuActionSelect:
		m.selected = menuChoices[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.selected != ChoiceNone {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B L O C K   B R E A K"), m.width))
	b.WriteString("\n\n")

	for i, c := range menuChoices {
		label := c.String()
		if c == ChoicePractice && len(m.titles) > 0 {
			label = fmt.Sprintf("Practice  < %s >", m.titles[m.level-1])
		}
		line := "  " + menuItemStyle.Render(label)
		if i == m.cursor {
			line = "> " + menuActiveStyle.Render(label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("↑/↓ choose  ←/→ practice level  enter select  q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() Choice { return m.selected }

// PracticeLevel returns the level picked for practice, 1-based.
func (m MenuModel) PracticeLevel() int { return m.level }

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// GameID maps a play choice to its registry id.
func (c Choice) GameID() string {
	if c == ChoicePuzzle {
		return blockbreak.IDPuzzle
	}
	return blockbreak.IDStandard
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// Package tui runs Block Break in the terminal: the game loop, the menus,
// the high-score screens and the menu session.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// TickMsg is sent to trigger a game simulation tick. Loop tells apart the
// tick chains of successive game models within one program.
type TickMsg struct {
	Loop uint64
	At   time.Time
}

var loops atomic.Uint64

func nextLoop() uint64 { return loops.Add(1) }

// tickCmd schedules the next tick of loop at the given rate.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, At: t}
	})
}

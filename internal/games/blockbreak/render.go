package blockbreak

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockbreak/internal/core"
	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/assets"
	bbcore "github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

const (
	hudHeight   = 3
	energyWidth = 20
)

// Render draws the current mode state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	switch {
	case g.err != nil:
		g.renderError(dst)
		return
	case g.content == nil:
		dst.DrawTextCentered(dst.Height()/2, "Loading...")
		return
	}

	grid := g.board
	if g.level != nil {
		grid = g.level.Grid()
	}
	if grid == nil {
		g.renderHUD(dst)
		g.renderBanner(dst, dst.Height()/2)
		return
	}

	boardW := grid.Width()*assets.GlyphWidth + 2
	boardH := grid.Height() + 2
	if boardW > dst.Width() || boardH+hudHeight > dst.Height() {
		renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	box := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight).CenterIn(boardW, boardH)
	dst.DrawBox(box, core.ColorGray)
	g.renderGrid(dst, grid, box.X+1, box.Y+1)
	g.renderBanner(dst, box.Y+boardH/2)
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderError(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCenteredColored(y-1, "BLOCK BREAK CANNOT START", core.ColorBrightRed)
	msg := g.err.Error()
	if len(msg) > dst.Width()-2 && dst.Width() > 5 {
		msg = msg[:dst.Width()-5] + "..."
	}
	dst.DrawTextCentered(y+1, msg)
}

// renderHUD draws the title line and the score/energy line.
func (g *Game) renderHUD(dst *core.Screen) {
	title := g.Title()
	if spec, err := g.content.catalog.Level(g.levelIndex); err == nil {
		title = fmt.Sprintf("%s - Level %02d: %s", title, g.levelIndex, spec.Name)
	}
	dst.DrawTextCenteredColored(0, title, core.ColorBrightCyan)

	line := fmt.Sprintf("Score %d", g.score)
	if g.level != nil {
		t := g.level.Tracker()
		line += "  Energy " + energyBar(t.EnergyRatio(), energyWidth)
		line += fmt.Sprintf("  Blocks %d", g.level.BlocksRemaining())
		if left := g.level.ClearsLeft(); left >= 0 {
			line += fmt.Sprintf("  Clears %d", left)
		}
		if len(g.level.Params().Medals) > 0 {
			line += "  Medals " + medalString(g.level.Medals(), len(g.level.Params().Medals))
		}
	}
	dst.DrawTextCentered(1, line)
}

func energyBar(ratio float64, width int) string {
	filled := core.Clamp(int(ratio*float64(width)+0.5), 0, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func medalString(got, total int) string {
	return strings.Repeat("*", got) + strings.Repeat(".", total-got)
}

// renderGrid draws each cell as its glyph. The cursor cell shows the
// cursor glyph in the color of the block beneath it.
func (g *Game) renderGrid(dst *core.Screen, grid *bbcore.Grid, x0, y0 int) {
	sheet := g.content.sheet
	cursor := bbcore.P(-1, -1)
	if g.level != nil && g.interlude == 0 {
		cursor = g.level.Cursor()
	}

	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			p := bbcore.P(c, r)
			glyph, _ := sheet.Lookup(bbcore.SpriteKey(grid.At(p)))
			if p == cursor {
				cur, _ := sheet.Lookup(bbcore.SpriteCursor)
				if !grid.At(p).IsEmpty() {
					cur.Color = glyph.Color
				}
				glyph = cur
			}
			dst.DrawTextColored(x0+c*assets.GlyphWidth, y0+r, glyph.Text, glyph.Color)
		}
	}
}

// renderBanner overlays pause and end-of-level messages.
func (g *Game) renderBanner(dst *core.Screen, y int) {
	var lines []string
	color := core.ColorBrightWhite
	switch {
	case g.won && g.opts.Practice:
		lines = []string{"LEVEL COMPLETE", fmt.Sprintf("Score: %d", g.score)}
		color = core.ColorBrightGreen
	case g.won:
		lines = []string{"ALL LEVELS CLEARED", fmt.Sprintf("Final score: %d", g.score)}
		color = core.ColorBrightGreen
	case g.gameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Final score: %d", g.score)}
		color = core.ColorBrightRed
	case g.interlude > 0:
		lines = []string{fmt.Sprintf("LEVEL %02d COMPLETE", g.levelIndex-1), fmt.Sprintf("Next: level %02d", g.levelIndex)}
		color = core.ColorBrightGreen
	case g.level != nil && g.level.Paused():
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}
	if (g.won || g.gameOver) && g.medals > 0 {
		lines = append(lines, "Medals: "+strings.Repeat("*", g.medals))
	}
	if g.won || g.gameOver {
		lines = append(lines, "R to play again, Q to quit")
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).CenterIn(width+4, len(lines)+2)
	box.Y = core.Clamp(y-box.H/2, 0, max(dst.Height()-box.H, 0))
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCenteredColored(box.Y+1+i, l, color)
	}
}

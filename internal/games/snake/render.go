package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Visual characters for rendering
const (
	HeadChar  = '●'
	BodyChar  = '█'
	TailChar  = '▪'
	AppleChar = '●'
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.Snapshot()
	g.renderHUD(dst, snap)

	if g.tooSmall {
		renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, resize to continue", snap.Cols+2, snap.Rows+hudHeight+2))
		return
	}

	field := g.fieldRect(dst)
	dst.DrawBox(field)
	renderApple(dst, field, snap)
	renderSnake(dst, field, snap)

	switch {
	case snap.Won:
		renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", snap.Score), "Press R to restart")
	case !snap.Running:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", snap.Score), "Press R to restart")
	case snap.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// fieldRect returns the bordered playfield area centered horizontally.
func (g *Game) fieldRect(dst *core.Screen) core.Rect {
	w := g.cols + 2
	h := g.rows + 2
	x := core.Max((dst.Width()-w)/2, 0)
	return core.NewRect(x, hudHeight, w, h)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" %s - Score: %d  Speed: %d  Length: %d", g.Title(), snap.Score, snap.Level+1, snap.Len())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func renderApple(dst *core.Screen, field core.Rect, snap Snapshot) {
	if snap.Apple.X < 0 || snap.Apple.Y < 0 {
		return
	}
	dst.SetColored(field.X+1+snap.Apple.X, field.Y+1+snap.Apple.Y, AppleChar, core.ColorRed)
}

// renderSnake draws tail first and head last so the head stays visible
// while the starting segments are still coiled on one cell.
func renderSnake(dst *core.Screen, field core.Rect, snap Snapshot) {
	inner := core.NewRect(field.X+1, field.Y+1, snap.Cols, snap.Rows)
	put := func(p core.Point, r rune, c core.Color) {
		x, y := inner.X+p.X, inner.Y+p.Y
		if inner.Contains(x, y) {
			dst.SetColored(x, y, r, c)
		}
	}

	n := len(snap.Body)
	if n > 1 {
		put(snap.Body[n-1], TailChar, core.ColorForest)
	}
	for i := n - 2; i > 0; i-- {
		color := core.ColorForest
		if i%2 == 0 {
			color = core.ColorLime
		}
		put(snap.Body[i], BodyChar, color)
	}
	if n > 0 {
		head := core.ColorBrightGreen
		if !snap.Running && !snap.Won {
			head = core.ColorBrightRed
		}
		put(snap.Body[0], HeadChar, head)
	}
}

// renderOverlay draws a centered box with one line of text per row.
func renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = core.Max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightRed
		}
		dst.DrawTextCenteredColored(box.Y+1+i*2, l, color)
	}
}

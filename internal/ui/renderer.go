package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/torchcrawl/internal/gamedata"
	"github.com/samdwyer/torchcrawl/internal/world"
)

// HUDHeight is the number of rows reserved below the map when the HUD is
// shown: the health line plus the message log.
const HUDHeight = 1 + world.MaxMessages

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the part of the map around the player, the units in view,
// and optionally the HUD.
func (r *Renderer) Render(m *world.Map, showHUD bool) {
	r.screen.Clear()

	width, height := r.screen.Size()
	viewHeight := height
	if showHUD {
		viewHeight = max(0, height-HUDHeight)
	}

	focus := m.Player().Pos
	offX := CameraOffset(m.Width(), width, focus.X)
	offY := CameraOffset(m.Height(), viewHeight, focus.Y)

	for sy := 0; sy < viewHeight; sy++ {
		for sx := 0; sx < width; sx++ {
			if style, ok := r.tileStyleAt(m, sx+offX, sy+offY); ok {
				r.screen.SetContent(sx, sy, ' ', style)
			}
		}
	}

	// Units keep the tile background and only set their glyph color.
	for _, u := range m.Units() {
		sx, sy := u.Pos.X-offX, u.Pos.Y-offY
		if sx < 0 || sx >= width || sy < 0 || sy >= viewHeight {
			continue
		}
		style, _ := r.tileStyleAt(m, u.Pos.X, u.Pos.Y)
		r.screen.SetContent(sx, sy, u.Glyph, style.Foreground(u.Color))
	}

	if showHUD {
		r.renderHUD(m.HUD(), m.Messages(), viewHeight)
	}

	r.screen.Show()
}

func (r *Renderer) tileStyleAt(m *world.Map, x, y int) (tcell.Style, bool) {
	state, err := m.TileState(x, y)
	if err != nil {
		return tcell.StyleDefault, false
	}
	return TileStyle(state)
}

func (r *Renderer) renderHUD(hud world.HUD, messages []string, top int) {
	status := fmt.Sprintf("HP: %d/%d", hud.HP, hud.MaxHP)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if hud.Dead {
		status += "  You died. Press r to restart or q to quit."
		statusStyle = statusStyle.Foreground(gamedata.ColorCorpse)
	}
	r.screen.DrawText(0, top, status, statusStyle)

	msgStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, msg := range messages {
		r.screen.DrawText(0, top+1+i, msg, msgStyle)
	}
}

// TileStyle returns the background used for a tile, and false for tiles
// that have never been seen.
func TileStyle(state world.TileState) (tcell.Style, bool) {
	var bg tcell.Color
	switch {
	case state.Visible && state.Blocked:
		bg = gamedata.ColorLightWall
	case state.Visible:
		bg = gamedata.ColorLightGround
	case !state.Explored:
		return tcell.StyleDefault, false
	case state.Blocked:
		bg = gamedata.ColorDarkWall
	default:
		bg = gamedata.ColorDarkGround
	}
	return tcell.StyleDefault.Background(bg), true
}

// CameraOffset returns the first map coordinate shown on one axis so that
// focus sits in the middle of a view of the given size, clamped to the map.
// A map that fits in the view is never scrolled.
func CameraOffset(mapSize, viewSize, focus int) int {
	if viewSize <= 0 || mapSize <= viewSize {
		return 0
	}
	return min(max(focus-viewSize/2, 0), mapSize-viewSize)
}

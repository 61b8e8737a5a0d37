package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/torchcrawl/internal/gamedata"
	"github.com/samdwyer/torchcrawl/internal/ui"
	"github.com/samdwyer/torchcrawl/internal/world"
)

// Game ties a session to the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
}

// New generates the dungeon and opens the terminal screen.
func New(ctx context.Context, cfg Config) (*Game, error) {
	archetypes, err := gamedata.LoadArchetypeRegistry()
	if err != nil {
		return nil, fmt.Errorf("load archetypes: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err := NewSession(ctx, cfg, rng, archetypes)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
	}, nil
}

// Session returns the running playthrough.
func (g *Game) Session() *Session { return g.session }

// Run executes the main game loop until the player exits, or returns
// ErrRestart when a new dungeon was requested. The screen is closed on return.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	for {
		m := g.session.Map()
		m.RefreshVisibility()
		g.renderer.Render(m, g.session.Mode() == ModeHUD)

		// Handle input (blocking)
		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventKey:
			action, err := g.session.Apply(ctx, CommandForKey(ev))
			if err != nil {
				return err
			}
			if action == world.Exit {
				return nil
			}
		case *tcell.EventResize:
			g.screen.Sync()
		case nil:
			// Screen was finalized underneath us.
			return nil
		}
	}
}

// Close cleans up game resources. It is safe to call more than once.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}

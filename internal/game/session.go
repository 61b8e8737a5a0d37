package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/torchcrawl/internal/gamedata"
	"github.com/samdwyer/torchcrawl/internal/telemetry"
	"github.com/samdwyer/torchcrawl/internal/world"
)

// ErrRestart is returned when the player asks for a fresh dungeon.
var ErrRestart = errors.New("restart requested")

// Session is one playthrough: a map plus the display state around it.
type Session struct {
	id      uuid.UUID
	m       *world.Map
	mode    DisplayMode
	turns   int
	partial bool
}

// NewSession generates the dungeon for a playthrough from rng. A dungeon cut
// short by the placement budget is kept as long as it has a room.
func NewSession(ctx context.Context, cfg Config, rng world.Rand, archetypes *gamedata.ArchetypeRegistry) (*Session, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	m, err := world.New(ctx, rng, archetypes, cfg.Width, cfg.Height)
	partial := errors.Is(err, world.ErrPlacementExhausted)
	if m == nil || (err != nil && !partial) {
		span.RecordError(err)
		return nil, fmt.Errorf("build dungeon: %w", err)
	}

	id := uuid.New()
	start := m.Player().Pos
	span.SetAttributes(
		attribute.String("game.session_id", id.String()),
		attribute.Int("dungeon.rooms", len(m.Rooms())),
		attribute.Int("dungeon.monsters", len(m.Monsters())),
		attribute.Bool("dungeon.partial", partial),
		attribute.Int("player.start_x", start.X),
		attribute.Int("player.start_y", start.Y),
	)

	mode := ModeHUD
	if !cfg.ShowHUD {
		mode = ModeMapOnly
	}

	return &Session{id: id, m: m, mode: mode, partial: partial}, nil
}

// ID identifies the playthrough in traces.
func (s *Session) ID() uuid.UUID { return s.id }

// Map returns the session's map.
func (s *Session) Map() *world.Map { return s.m }

// Mode returns the current display mode.
func (s *Session) Mode() DisplayMode { return s.mode }

// Turns returns how many turns the player has taken.
func (s *Session) Turns() int { return s.turns }

// Partial reports whether generation stopped before the room quota.
func (s *Session) Partial() bool { return s.partial }

// Apply resolves one command. Exit and restart both report world.Exit;
// restart also returns ErrRestart. Once the player is dead every other
// command is ignored.
func (s *Session) Apply(ctx context.Context, cmd Command) (world.UserAction, error) {
	switch cmd.Intent {
	case IntentExit:
		return world.Exit, nil
	case IntentRestart:
		s.traceRestart(ctx)
		return world.Exit, ErrRestart
	}

	if !s.m.Player().Alive {
		return world.DidNotTakeTurn, nil
	}

	switch cmd.Intent {
	case IntentToggleHUD:
		s.mode = s.mode.Toggle()
		return world.DidNotTakeTurn, nil
	case IntentMove:
		return s.playTurn(ctx, cmd.DX, cmd.DY), nil
	default:
		return world.DidNotTakeTurn, nil
	}
}

func (s *Session) playTurn(ctx context.Context, dx, dy int) world.UserAction {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "turn")
	defer span.End()

	out := s.m.PlayTurn(dx, dy)
	if out.Action == world.TookTurn {
		s.turns++
	}

	player := s.m.Player()
	span.SetAttributes(
		attribute.String("game.session_id", s.id.String()),
		attribute.Int("turn.number", s.turns),
		attribute.String("turn.action", out.Action.String()),
		attribute.Bool("turn.combat", out.Combat),
		attribute.Bool("player.dead", out.PlayerDead),
		attribute.Int("player.hp", player.Stats.HP),
		attribute.Int("player.x", player.Pos.X),
		attribute.Int("player.y", player.Pos.Y),
	)
	return out.Action
}

func (s *Session) traceRestart(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.restart")
	span.SetAttributes(
		attribute.String("game.session_id", s.id.String()),
		attribute.Int("game.turns", s.turns),
		attribute.Bool("player.dead", !s.m.Player().Alive),
	)
	span.End()
}

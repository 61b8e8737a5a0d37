package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/torchcrawl/internal/combat"
	"github.com/samdwyer/torchcrawl/internal/entity"
	"github.com/samdwyer/torchcrawl/internal/gamedata"
)

// MaxMessages is how many combat messages the map keeps.
const MaxMessages = 5

// ErrNoRooms is returned when a map is built from a layout without rooms.
var ErrNoRooms = errors.New("layout has no rooms")

// Map owns the tiles, rooms, monster roster and player of one session.
// Monsters are never removed; dead ones stay in the roster as corpses.
type Map struct {
	grid       *Grid
	rooms      []Room
	corridors  []Corridor
	monsters   []*entity.Unit
	player     *entity.Unit
	visibility *Visibility
	messages   []string
	attacks    int
}

// New generates a dungeon and builds a map from it. A partial layout is
// accepted: the map is returned together with the ErrPlacementExhausted
// error and the caller decides whether to keep it. The player is warned
// through the message log.
func New(ctx context.Context, rng Rand, archetypes *gamedata.ArchetypeRegistry, width, height int) (*Map, error) {
	layout, genErr := Generate(ctx, rng, archetypes, width, height)
	if layout == nil {
		return nil, genErr
	}

	m, err := NewMap(layout, archetypes.Player())
	if err != nil {
		return nil, errors.Join(genErr, err)
	}
	if errors.Is(genErr, ErrPlacementExhausted) {
		m.addMessage(partialLayoutMessage(len(layout.Rooms)))
	}
	return m, genErr
}

func partialLayoutMessage(rooms int) string {
	return fmt.Sprintf("The dungeon collapsed early: %d of %d rooms.", rooms, MaxRooms)
}

// NewMap builds a map from a layout, spawning the player at the center of
// the first room.
func NewMap(layout *Layout, playerDef *gamedata.ArchetypeDef) (*Map, error) {
	if layout == nil || layout.Grid == nil {
		return nil, errors.New("new map: nil layout")
	}
	if len(layout.Rooms) == 0 {
		return nil, ErrNoRooms
	}
	if playerDef == nil {
		return nil, errors.New("new map: nil player archetype")
	}

	spawn := layout.Rooms[0].Center()
	if layout.Grid.IsBlocked(spawn.X, spawn.Y) {
		return nil, fmt.Errorf("new map: spawn point (%d,%d) is blocked", spawn.X, spawn.Y)
	}

	m := &Map{
		grid:       layout.Grid,
		rooms:      layout.Rooms,
		corridors:  layout.Corridors,
		monsters:   layout.Monsters,
		player:     entity.NewPlayer(playerDef, spawn.X, spawn.Y),
		visibility: NewVisibility(layout.Grid.Width(), layout.Grid.Height()),
	}
	m.RefreshVisibility()
	return m, nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.grid.Width() }

// Height returns the number of rows.
func (m *Map) Height() int { return m.grid.Height() }

// Tile returns the tile at (x, y).
func (m *Map) Tile(x, y int) (Tile, error) { return m.grid.At(x, y) }

// Rooms returns the generated rooms in placement order.
func (m *Map) Rooms() []Room { return m.rooms }

// Corridors returns the tunnels carved between rooms.
func (m *Map) Corridors() []Corridor { return m.corridors }

// Monsters returns the whole roster, dead entries included, in spawn order.
func (m *Map) Monsters() []*entity.Unit { return m.monsters }

// Player returns the player unit.
func (m *Map) Player() *entity.Unit { return m.player }

// Visibility exposes the visible set.
func (m *Map) Visibility() *Visibility { return m.visibility }

// Messages returns the most recent combat messages, oldest first.
func (m *Map) Messages() []string { return m.messages }

// SpawnPoint returns the center of the first room.
func (m *Map) SpawnPoint() entity.Position { return m.rooms[0].Center() }

// RefreshVisibility recomputes the visible set if the player moved since
// the last sweep. Reports whether a sweep ran.
func (m *Map) RefreshVisibility() bool {
	return m.visibility.Refresh(m.grid, m.player.Pos, TorchRadius)
}

// IsVisible reports whether (x, y) is currently in view.
func (m *Map) IsVisible(x, y int) bool {
	return m.visibility.IsVisible(x, y)
}

// TileState returns the render state of the tile at (x, y).
func (m *Map) TileState(x, y int) (TileState, error) {
	t, err := m.grid.At(x, y)
	if err != nil {
		return TileState{}, err
	}
	return TileState{
		Visible:  m.visibility.IsVisible(x, y),
		Explored: t.Explored,
		Blocked:  t.Blocked,
	}, nil
}

// Units returns the units to draw, bottom layer first: corpses in view,
// living monsters in view, then the player.
func (m *Map) Units() []*entity.Unit {
	units := make([]*entity.Unit, 0, len(m.monsters)+1)
	for _, alive := range []bool{false, true} {
		for _, monster := range m.monsters {
			if monster.Alive == alive && m.IsVisible(monster.Pos.X, monster.Pos.Y) {
				units = append(units, monster)
			}
		}
	}
	return append(units, m.player)
}

// HUD returns the player's health for display.
func (m *Map) HUD() HUD {
	return HUD{
		HP:    m.player.Stats.HP,
		MaxHP: m.player.Stats.MaxHP,
		Dead:  !m.player.Alive,
	}
}

// Classify decides what moving onto (x, y) means. For ActionAttack the
// target monster is returned too.
func (m *Map) Classify(x, y int) (Action, *entity.Unit) {
	if m.grid.IsBlocked(x, y) {
		return ActionAFK, nil
	}
	for _, monster := range m.monsters {
		if monster.Alive && monster.BlocksPoint && monster.Pos.X == x && monster.Pos.Y == y {
			return ActionAttack, monster
		}
	}
	return ActionMove, nil
}

// PlayerMoveOrAttack resolves the player's intent to go (dx, dy). Reports
// whether a turn was spent.
func (m *Map) PlayerMoveOrAttack(dx, dy int) bool {
	dest := m.player.Pos.Add(dx, dy)

	switch action, target := m.Classify(dest.X, dest.Y); action {
	case ActionMove:
		m.player.Move(dx, dy)
		return true
	case ActionAttack:
		m.attack(m.player, target)
		return true
	default:
		return false
	}
}

// MonsterTurnPass lets every living monster in view act once, in roster
// order. It only runs when the player is alive and the last user action
// took a turn.
func (m *Map) MonsterTurnPass(action UserAction) {
	if !m.player.Alive || action != TookTurn {
		return
	}

	for _, monster := range m.monsters {
		if !monster.Alive || monster.AI != entity.AIBasic {
			continue
		}
		if !m.IsVisible(monster.Pos.X, monster.Pos.Y) {
			continue
		}

		dx, dy, distance := monster.StepToward(m.player.Pos)
		if distance >= 2 {
			dest := monster.Pos.Add(dx, dy)
			if next, _ := m.Classify(dest.X, dest.Y); next == ActionMove {
				monster.Move(dx, dy)
			}
			continue
		}
		m.attack(monster, m.player)
	}
}

// PlayTurn resolves one directional intent followed by the monster pass.
func (m *Map) PlayTurn(dx, dy int) TurnOutcome {
	attacksBefore := m.attacks

	action := DidNotTakeTurn
	if m.player.Alive && m.PlayerMoveOrAttack(dx, dy) {
		action = TookTurn
	}
	m.MonsterTurnPass(action)

	return TurnOutcome{
		Action:     action,
		Combat:     m.attacks > attacksBefore,
		PlayerDead: !m.player.Alive,
	}
}

func (m *Map) attack(attacker, defender *entity.Unit) combat.Result {
	m.attacks++
	result := combat.Resolve(attacker, defender)
	m.addMessage(result.Message)
	return result
}

func (m *Map) addMessage(msg string) {
	m.messages = append(m.messages, msg)
	if len(m.messages) > MaxMessages {
		m.messages = m.messages[len(m.messages)-MaxMessages:]
	}
}

package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/torchcrawl/internal/entity"
	"github.com/samdwyer/torchcrawl/internal/gamedata"
)

// testMap builds an 11x11 map with one open room whose center, and so the
// player's spawn, is (5,5).
func testMap(t *testing.T, monsters ...*entity.Unit) *Map {
	t.Helper()
	room := NewRoom(1, 1, 9, 9)
	g := NewGrid(11, 11)
	if err := g.Carve(room); err != nil {
		t.Fatal(err)
	}

	m, err := NewMap(&Layout{Grid: g, Rooms: []Room{room}, Monsters: monsters}, gamedata.MustLoadArchetypeRegistry().Player())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func orcAt(x, y int) *entity.Unit {
	return entity.NewMonster(gamedata.MustLoadArchetypeRegistry().GetByID(gamedata.OrcID), x, y, 1)
}

func TestNewMapSpawnsPlayer(t *testing.T) {
	m := testMap(t)

	want := entity.Position{X: 5, Y: 5}
	if m.Player().Pos != want || m.SpawnPoint() != want {
		t.Errorf("player at %v, spawn %v, want %v", m.Player().Pos, m.SpawnPoint(), want)
	}
	if !m.IsVisible(5, 5) {
		t.Error("spawn should be visible")
	}
	state, err := m.TileState(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !state.Visible || !state.Explored || state.Blocked {
		t.Errorf("spawn tile state = %+v", state)
	}

	hud := m.HUD()
	if hud.HP != 30 || hud.MaxHP != 30 || hud.Dead {
		t.Errorf("HUD = %+v, want 30/30 alive", hud)
	}
}

func TestNewMapRejectsBadLayouts(t *testing.T) {
	player := gamedata.MustLoadArchetypeRegistry().Player()

	if _, err := NewMap(&Layout{Grid: NewGrid(20, 20)}, player); !errors.Is(err, ErrNoRooms) {
		t.Errorf("no rooms: error = %v, want ErrNoRooms", err)
	}
	if _, err := NewMap(nil, player); err == nil {
		t.Error("nil layout should fail")
	}

	// Room recorded but never carved: the spawn point is solid.
	layout := &Layout{Grid: NewGrid(20, 20), Rooms: []Room{NewRoom(2, 2, 6, 6)}}
	if _, err := NewMap(layout, player); err == nil {
		t.Error("blocked spawn point should fail")
	}
}

func TestNewGeneratesPlayableMap(t *testing.T) {
	m, err := New(context.Background(), rand.New(rand.NewSource(5)), gamedata.MustLoadArchetypeRegistry(), DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if m.Width() != DefaultWidth || m.Height() != DefaultHeight {
		t.Errorf("size = %dx%d", m.Width(), m.Height())
	}
	if len(m.Rooms()) != MaxRooms || len(m.Corridors()) != MaxRooms-1 {
		t.Errorf("%d rooms, %d corridors", len(m.Rooms()), len(m.Corridors()))
	}
	if m.Player().Pos != m.Rooms()[0].Center() {
		t.Errorf("player at %v, want first room center %v", m.Player().Pos, m.Rooms()[0].Center())
	}
	for _, monster := range m.Monsters() {
		if m.Rooms()[0].Contains(monster.Pos.X, monster.Pos.Y) {
			t.Errorf("%s spawned in the starting room", monster.Name)
		}
	}
}

func TestNewKeepsPartialMap(t *testing.T) {
	m, err := New(context.Background(), rand.New(rand.NewSource(5)), gamedata.MustLoadArchetypeRegistry(), MinMapSize, MinMapSize)
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Fatalf("error = %v, want ErrPlacementExhausted", err)
	}
	if m == nil || len(m.Rooms()) != 1 {
		t.Fatal("expected a one-room map")
	}

	msgs := m.Messages()
	want := "The dungeon collapsed early: 1 of 30 rooms."
	if len(msgs) != 1 || msgs[0] != want {
		t.Errorf("messages = %q, want [%q]", msgs, want)
	}
}

func TestNewFullMapHasNoWarning(t *testing.T) {
	m, err := New(context.Background(), rand.New(rand.NewSource(5)), gamedata.MustLoadArchetypeRegistry(), DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if msgs := m.Messages(); len(msgs) != 0 {
		t.Errorf("messages = %q, want none", msgs)
	}
}

func TestClassify(t *testing.T) {
	orc := orcAt(6, 5)
	corpse := orcAt(4, 5)
	corpse.TakeDamage(100)
	m := testMap(t, orc, corpse)

	tests := []struct {
		name   string
		x, y   int
		action Action
		target *entity.Unit
	}{
		{"free floor", 5, 4, ActionMove, nil},
		{"wall", 0, 5, ActionAFK, nil},
		{"outside the map", -1, 5, ActionAFK, nil},
		{"far outside the map", 5, 100, ActionAFK, nil},
		{"living monster", 6, 5, ActionAttack, orc},
		{"corpse", 4, 5, ActionMove, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, target := m.Classify(tt.x, tt.y)
			if action != tt.action || target != tt.target {
				t.Errorf("Classify(%d,%d) = %v, %v; want %v, %v", tt.x, tt.y, action, target, tt.action, tt.target)
			}
		})
	}
}

func TestPlayerMoveOrAttack(t *testing.T) {
	orc := orcAt(6, 5)
	m := testMap(t, orc)
	player := m.Player()

	if !m.PlayerMoveOrAttack(1, 0) {
		t.Fatal("attacking should take a turn")
	}
	if player.Pos != (entity.Position{X: 5, Y: 5}) {
		t.Error("attacking should not move the player")
	}
	if orc.Stats.HP != 5 {
		t.Errorf("orc HP = %d, want 5", orc.Stats.HP)
	}

	m.PlayerMoveOrAttack(1, 0)
	if orc.Alive || orc.BlocksPoint {
		t.Fatal("second hit should kill the orc")
	}

	if !m.PlayerMoveOrAttack(1, 0) {
		t.Fatal("stepping onto a corpse should take a turn")
	}
	if player.Pos != (entity.Position{X: 6, Y: 5}) {
		t.Errorf("player at %v, want (6,5)", player.Pos)
	}
	if len(m.Monsters()) != 1 {
		t.Error("dead monsters stay in the roster")
	}
}

func TestPlayerBumpsWall(t *testing.T) {
	m := testMap(t)
	m.Player().Pos = entity.Position{X: 1, Y: 5}

	if m.PlayerMoveOrAttack(-1, 0) {
		t.Error("walking into a wall should not take a turn")
	}
	if m.Player().Pos != (entity.Position{X: 1, Y: 5}) {
		t.Error("player should not move into a wall")
	}
}

func TestMonsterStepsTowardPlayer(t *testing.T) {
	orc := orcAt(5, 2)
	m := testMap(t, orc)

	m.MonsterTurnPass(TookTurn)

	if orc.Pos != (entity.Position{X: 5, Y: 3}) {
		t.Errorf("orc at %v, want (5,3)", orc.Pos)
	}
	if m.Player().Stats.HP != m.Player().Stats.MaxHP {
		t.Error("a distant monster should not attack")
	}
}

func TestMonsterAttacksWhenAdjacent(t *testing.T) {
	orc := orcAt(5, 4)
	m := testMap(t, orc)

	m.MonsterTurnPass(TookTurn)

	if orc.Pos != (entity.Position{X: 5, Y: 4}) {
		t.Errorf("adjacent orc moved to %v", orc.Pos)
	}
	if hp := m.Player().Stats.HP; hp != 29 {
		t.Errorf("player HP = %d, want 29", hp)
	}
	if msgs := m.Messages(); len(msgs) != 1 {
		t.Errorf("messages = %v, want one attack message", msgs)
	}
}

func TestMonstersWaitWithoutTurn(t *testing.T) {
	orc := orcAt(5, 2)
	m := testMap(t, orc)

	m.MonsterTurnPass(DidNotTakeTurn)
	m.MonsterTurnPass(Exit)

	if orc.Pos != (entity.Position{X: 5, Y: 2}) {
		t.Errorf("orc moved to %v without a player turn", orc.Pos)
	}
}

func TestMonstersOutOfViewWait(t *testing.T) {
	room := NewRoom(1, 1, 28, 28)
	g := NewGrid(30, 30)
	if err := g.Carve(room); err != nil {
		t.Fatal(err)
	}
	orc := orcAt(1, 1)

	m, err := NewMap(&Layout{Grid: g, Rooms: []Room{room}, Monsters: []*entity.Unit{orc}}, gamedata.MustLoadArchetypeRegistry().Player())
	if err != nil {
		t.Fatal(err)
	}
	if m.IsVisible(1, 1) {
		t.Fatal("orc should be out of torch range")
	}

	m.MonsterTurnPass(TookTurn)
	if orc.Pos != (entity.Position{X: 1, Y: 1}) {
		t.Errorf("unseen orc moved to %v", orc.Pos)
	}
}

func TestMonstersDoNotStack(t *testing.T) {
	front := orcAt(5, 3)
	back := orcAt(5, 1)
	m := testMap(t, front, back)
	front.Stats.Damage = 0

	m.MonsterTurnPass(TookTurn)

	if front.Pos != (entity.Position{X: 5, Y: 4}) {
		t.Errorf("front orc at %v, want (5,4)", front.Pos)
	}
	if back.Pos != (entity.Position{X: 5, Y: 2}) {
		t.Errorf("back orc at %v, want (5,2)", back.Pos)
	}

	m.MonsterTurnPass(TookTurn)
	if back.Pos != (entity.Position{X: 5, Y: 3}) {
		t.Errorf("back orc at %v, want (5,3)", back.Pos)
	}
	m.MonsterTurnPass(TookTurn)
	if back.Pos != (entity.Position{X: 5, Y: 3}) {
		t.Errorf("back orc walked into the front orc: %v", back.Pos)
	}
}

func TestPlayerDiesAfterThirtyHits(t *testing.T) {
	m := testMap(t, orcAt(5, 4))

	for i := 0; i < 29; i++ {
		m.MonsterTurnPass(TookTurn)
	}
	if !m.Player().Alive || m.Player().Stats.HP != 1 {
		t.Fatalf("after 29 hits: alive=%v hp=%d", m.Player().Alive, m.Player().Stats.HP)
	}

	m.MonsterTurnPass(TookTurn)
	if m.Player().Alive || m.Player().Stats.HP != 0 {
		t.Fatalf("after 30 hits: alive=%v hp=%d", m.Player().Alive, m.Player().Stats.HP)
	}
	if m.Player().Color != gamedata.ColorCorpse {
		t.Error("dead player should be drawn as a corpse")
	}
	if !m.HUD().Dead {
		t.Error("HUD should report death")
	}

	out := m.PlayTurn(0, -1)
	if out.Action != DidNotTakeTurn || !out.PlayerDead || out.Combat {
		t.Errorf("turn after death = %+v", out)
	}
	if m.Player().Pos != (entity.Position{X: 5, Y: 5}) {
		t.Error("dead player should not move")
	}
}

func TestPlayTurn(t *testing.T) {
	orc := orcAt(5, 2)
	m := testMap(t, orc)

	out := m.PlayTurn(0, 1)
	if out.Action != TookTurn || out.Combat || out.PlayerDead {
		t.Errorf("move turn = %+v", out)
	}
	if orc.Pos != (entity.Position{X: 5, Y: 3}) {
		t.Errorf("orc at %v after the player moved", orc.Pos)
	}

	// Player steps back to (5,5) and the orc closes in.
	out = m.PlayTurn(0, -1)
	if out.Action != TookTurn {
		t.Fatalf("second turn = %+v", out)
	}
	if orc.Pos != (entity.Position{X: 5, Y: 4}) || m.Player().Pos != (entity.Position{X: 5, Y: 5}) {
		t.Fatalf("orc %v, player %v", orc.Pos, m.Player().Pos)
	}

	out = m.PlayTurn(0, -1)
	if out.Action != TookTurn || !out.Combat {
		t.Errorf("attack turn = %+v", out)
	}
	if orc.Stats.HP != 5 {
		t.Errorf("orc HP = %d, want 5", orc.Stats.HP)
	}
	if m.Player().Stats.HP != 29 {
		t.Errorf("player HP = %d, want 29", m.Player().Stats.HP)
	}
}

func TestPlayTurnRejectedMove(t *testing.T) {
	orc := orcAt(5, 2)
	m := testMap(t, orc)
	m.Player().Pos = entity.Position{X: 5, Y: 9}

	out := m.PlayTurn(0, 1)
	if out.Action != DidNotTakeTurn || out.Combat {
		t.Errorf("wall bump = %+v", out)
	}
	if orc.Pos != (entity.Position{X: 5, Y: 2}) {
		t.Errorf("orc moved to %v on a rejected move", orc.Pos)
	}
}

func TestUnitsDrawOrder(t *testing.T) {
	living := orcAt(5, 2)
	corpse := orcAt(7, 7)
	corpse.TakeDamage(100)
	m := testMap(t, living, corpse)

	units := m.Units()
	if len(units) != 3 {
		t.Fatalf("%d units, want 3", len(units))
	}
	if units[0] != corpse || units[1] != living || units[2] != m.Player() {
		t.Errorf("draw order = %s(%v), %s(%v), %s",
			units[0].Name, units[0].Alive, units[1].Name, units[1].Alive, units[2].Name)
	}
}

func TestTileStateOutOfBounds(t *testing.T) {
	m := testMap(t)

	if _, err := m.TileState(11, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("error = %v, want ErrOutOfBounds", err)
	}
	if _, err := m.Tile(-1, -1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("error = %v, want ErrOutOfBounds", err)
	}
}

func TestMessagesKeepLatest(t *testing.T) {
	m := testMap(t, orcAt(5, 4))

	for i := 0; i < MaxMessages+2; i++ {
		m.MonsterTurnPass(TookTurn)
	}

	msgs := m.Messages()
	if len(msgs) != MaxMessages {
		t.Fatalf("%d messages, want %d", len(msgs), MaxMessages)
	}
	if m.Player().Stats.HP != 30-(MaxMessages+2) {
		t.Errorf("player HP = %d", m.Player().Stats.HP)
	}
}

package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/torchcrawl/internal/entity"
	"github.com/samdwyer/torchcrawl/internal/gamedata"
	"github.com/samdwyer/torchcrawl/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 100
	DefaultHeight = 100

	MaxRooms        = 30 // Room quota
	RoomMinSize     = 6
	RoomMaxSize     = 10
	MaxRoomMonsters = 3

	// PlacementAttempts is the budget of candidate rooms tried per quota slot.
	PlacementAttempts = 1000

	// MinMapSize is the smallest width/height that fits a RoomMaxSize room
	// inside the 1-tile border.
	MinMapSize = RoomMaxSize + 3
)

var (
	// ErrMapTooSmall is returned when the map cannot hold the largest room.
	ErrMapTooSmall = errors.New("map too small for room size range")
	// ErrPlacementExhausted is returned, along with the partial layout, when a
	// quota slot ran out of placement attempts.
	ErrPlacementExhausted = errors.New("room placement attempts exhausted")
)

// Rand is the random source used by generation. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Corridor records which rooms an elbow tunnel joined.
type Corridor struct {
	From          int  // Index of the newly placed room
	To            int  // Index of the room it was connected to
	VerticalFirst bool // Vertical leg runs along To's column; otherwise along From's column
}

// Layout is the result of a generator run.
type Layout struct {
	Grid      *Grid
	Rooms     []Room
	Corridors []Corridor
	Monsters  []*entity.Unit // Spawn order
	Attempts  int            // Candidate rooms tried, accepted or not
}

type generator struct {
	rng        Rand
	archetypes *gamedata.ArchetypeRegistry
	layout     *Layout
}

// Generate places up to MaxRooms non-overlapping rooms, joins every room after
// the first to its nearest predecessor, and spawns monsters in all rooms but
// the first. When a slot runs out of attempts the partial layout is returned
// together with ErrPlacementExhausted.
func Generate(ctx context.Context, rng Rand, archetypes *gamedata.ArchetypeRegistry, width, height int) (*Layout, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	if width < MinMapSize || height < MinMapSize {
		return nil, fmt.Errorf("%dx%d map, need at least %dx%d: %w", width, height, MinMapSize, MinMapSize, ErrMapTooSmall)
	}
	if archetypes == nil {
		return nil, errors.New("generate: nil archetype registry")
	}

	g := &generator{
		rng:        rng,
		archetypes: archetypes,
		layout:     &Layout{Grid: NewGrid(width, height)},
	}

	err := g.run()

	span.SetAttributes(
		attribute.Int("dungeon.width", width),
		attribute.Int("dungeon.height", height),
		attribute.Int("dungeon.room_count", len(g.layout.Rooms)),
		attribute.Int("dungeon.monster_count", len(g.layout.Monsters)),
		attribute.Int("dungeon.attempts", g.layout.Attempts),
		attribute.Bool("dungeon.partial", errors.Is(err, ErrPlacementExhausted)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	if err != nil && !errors.Is(err, ErrPlacementExhausted) {
		span.RecordError(err)
		return nil, err
	}

	return g.layout, err
}

func (g *generator) run() error {
	for len(g.layout.Rooms) < MaxRooms {
		room, ok := g.placeRoom()
		if !ok {
			return fmt.Errorf("placed %d of %d rooms: %w", len(g.layout.Rooms), MaxRooms, ErrPlacementExhausted)
		}

		index := len(g.layout.Rooms)
		if index > 0 {
			nearest := nearestRoom(g.layout.Rooms, room)
			verticalFirst := g.rng.Intn(2) == 0
			if err := g.connect(room.Center(), g.layout.Rooms[nearest].Center(), verticalFirst); err != nil {
				return err
			}
			g.layout.Corridors = append(g.layout.Corridors, Corridor{From: index, To: nearest, VerticalFirst: verticalFirst})
		}

		if err := g.layout.Grid.Carve(room); err != nil {
			return err
		}

		if index > 0 {
			if err := g.spawnMonsters(room, index); err != nil {
				return err
			}
		}

		g.layout.Rooms = append(g.layout.Rooms, room)
	}
	return nil
}

// placeRoom draws candidates until one clears every accepted room.
func (g *generator) placeRoom() (Room, bool) {
	width, height := g.layout.Grid.Width(), g.layout.Grid.Height()

	for try := 0; try < PlacementAttempts; try++ {
		g.layout.Attempts++

		w := RoomMinSize + g.rng.Intn(RoomMaxSize-RoomMinSize+1)
		h := RoomMinSize + g.rng.Intn(RoomMaxSize-RoomMinSize+1)
		x := 1 + g.rng.Intn(width-w-2)
		y := 1 + g.rng.Intn(height-h-2)

		candidate := NewRoom(x, y, w, h)
		if !overlapsAny(g.layout.Rooms, candidate) {
			return candidate, true
		}
	}
	return Room{}, false
}

func overlapsAny(rooms []Room, candidate Room) bool {
	for _, r := range rooms {
		if r.IntersectsAsRoom(candidate) {
			return true
		}
	}
	return false
}

// roomGaps returns the vertical and horizontal gaps between two rooms, each
// measured on its own axis.
func roomGaps(a, b Room) (vertical, horizontal int) {
	horizontal = abs(min(a.Right-b.Left, a.Left-b.Right))
	vertical = abs(min(a.Top-b.Bottom, a.Bottom-b.Top))
	return vertical, horizontal
}

// nearestRoom returns the index of the room target gets connected to. Every
// room is measured against the first room's gaps, and the last one to beat
// either of them wins. This is a proximity heuristic, not a true nearest
// neighbour; layouts depend on it, so keep it as is.
func nearestRoom(rooms []Room, target Room) int {
	best := 0
	firstV, firstH := roomGaps(target, rooms[0])

	for i := 1; i < len(rooms); i++ {
		v, h := roomGaps(target, rooms[i])
		if v < firstV || h < firstH {
			best = i
		}
	}
	return best
}

// connect carves an elbow tunnel between two room centers.
func (g *generator) connect(from, to entity.Position, verticalFirst bool) error {
	if verticalFirst {
		return carveVerticalThenHorizontal(g.layout.Grid, from, to)
	}
	return carveHorizontalThenVertical(g.layout.Grid, from, to)
}

// carveHorizontalThenVertical runs a horizontal leg along to's row, then a
// vertical leg down from's column. If the legs only touch, the vertical leg
// is stretched by one tile to close the joint.
func carveHorizontalThenVertical(grid *Grid, from, to entity.Position) error {
	horizontal := Room{
		Left:   min(from.X, to.X),
		Right:  max(from.X, to.X),
		Bottom: to.Y,
		Top:    to.Y + 1,
	}
	vertical := Room{
		Left:   from.X,
		Right:  from.X + 1,
		Bottom: min(from.Y, to.Y),
		Top:    max(from.Y, to.Y),
	}

	if !horizontal.IntersectsAsTunnel(vertical) {
		vertical.Top++
	}
	return carveAll(grid, horizontal, vertical)
}

// carveVerticalThenHorizontal runs a vertical leg along to's column, then a
// horizontal leg along from's row. If the legs only touch, the horizontal leg
// is stretched by one tile to close the joint.
func carveVerticalThenHorizontal(grid *Grid, from, to entity.Position) error {
	vertical := Room{
		Left:   to.X,
		Right:  to.X + 1,
		Bottom: min(from.Y, to.Y),
		Top:    max(from.Y, to.Y),
	}
	horizontal := Room{
		Left:   min(from.X, to.X),
		Right:  max(from.X, to.X),
		Bottom: from.Y,
		Top:    from.Y + 1,
	}

	if !horizontal.IntersectsAsTunnel(vertical) {
		horizontal.Right++
	}
	return carveAll(grid, vertical, horizontal)
}

func carveAll(grid *Grid, rooms ...Room) error {
	for _, r := range rooms {
		if err := grid.Carve(r); err != nil {
			return fmt.Errorf("carve tunnel: %w", err)
		}
	}
	return nil
}

// spawnMonsters places 0..MaxRoomMonsters monsters on distinct tiles of room.
func (g *generator) spawnMonsters(room Room, index int) error {
	count := g.rng.Intn(MaxRoomMonsters + 1)
	taken := make(map[entity.Position]bool, count)

	for len(taken) < count {
		pos := entity.Position{
			X: room.Left + g.rng.Intn(room.Width()),
			Y: room.Bottom + g.rng.Intn(room.Height()),
		}
		if taken[pos] {
			continue
		}

		def := g.archetypes.SpawnRandom(g.rng)
		if def == nil {
			return errors.New("spawn monsters: no spawnable archetypes")
		}

		taken[pos] = true
		g.layout.Monsters = append(g.layout.Monsters, entity.NewMonster(def, pos.X, pos.Y, index))
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

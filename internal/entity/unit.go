// Package entity provides the player and monster units.
package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/torchcrawl/internal/combat"
	"github.com/samdwyer/torchcrawl/internal/gamedata"
)

// AI tags how a unit takes its turn.
type AI int

const (
	// AIPlayer is driven by user input.
	AIPlayer AI = iota
	// AIBasic steps greedily toward the player and attacks when adjacent.
	AIBasic
)

// String returns the AI tag name.
func (a AI) String() string {
	switch a {
	case AIPlayer:
		return "player"
	case AIBasic:
		return "basic"
	default:
		return "unknown"
	}
}

// NoRoom is the SpawnRoom of units not spawned inside a generated room.
const NoRoom = -1

// Position is a grid coordinate.
type Position struct {
	X, Y int
}

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DistanceTo returns the Euclidean distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(float64(o.X-p.X), float64(o.Y-p.Y))
}

// Stats are a unit's combat numbers.
type Stats struct {
	MaxHP   int
	HP      int
	Defense int
	Damage  int
}

// Unit is a positioned actor: the player or a monster.
type Unit struct {
	Pos         Position
	Glyph       rune
	Color       tcell.Color
	Name        string
	BlocksPoint bool // Living units block movement and can be attacked
	Alive       bool
	SpawnRoom   int // Index of the room the unit spawned in, or NoRoom
	Stats       Stats
	AI          AI
}

// NewUnit creates a living, point-blocking unit.
func NewUnit(x, y int, glyph rune, color tcell.Color, name string, stats Stats, ai AI) *Unit {
	u := &Unit{
		Pos:         Position{X: x, Y: y},
		Glyph:       glyph,
		Color:       color,
		Name:        name,
		BlocksPoint: true,
		Alive:       true,
		SpawnRoom:   NoRoom,
		Stats:       stats,
		AI:          ai,
	}
	if stats.HP <= 0 {
		u.die()
	}
	return u
}

// NewFromArchetype creates a unit at full health from a data-driven preset.
func NewFromArchetype(def *gamedata.ArchetypeDef, x, y int, ai AI) *Unit {
	stats := Stats{
		MaxHP:   def.HP,
		HP:      def.HP,
		Defense: def.Defense,
		Damage:  def.Damage,
	}
	return NewUnit(x, y, def.GlyphRune(), def.TCellColor(), def.Name, stats, ai)
}

// NewPlayer creates the player unit.
func NewPlayer(def *gamedata.ArchetypeDef, x, y int) *Unit {
	return NewFromArchetype(def, x, y, AIPlayer)
}

// NewMonster creates a monster that remembers the room it spawned in.
func NewMonster(def *gamedata.ArchetypeDef, x, y, room int) *Unit {
	u := NewFromArchetype(def, x, y, AIBasic)
	u.SpawnRoom = room
	return u
}

// IsPlayer reports whether the unit is user controlled.
func (u *Unit) IsPlayer() bool {
	return u.AI == AIPlayer
}

// Move shifts the unit by (dx, dy). Callers check the destination first.
func (u *Unit) Move(dx, dy int) {
	u.Pos = u.Pos.Add(dx, dy)
}

// StepToward returns the rounded unit step from u toward target and the
// Euclidean distance between them. The step is (0, 0) when they coincide.
func (u *Unit) StepToward(target Position) (dx, dy int, distance float64) {
	fx := float64(target.X - u.Pos.X)
	fy := float64(target.Y - u.Pos.Y)
	distance = math.Hypot(fx, fy)
	if distance == 0 {
		return 0, 0, 0
	}
	return int(math.Round(fx / distance)), int(math.Round(fy / distance)), distance
}

// die is the one-way Alive -> Dead transition.
func (u *Unit) die() {
	u.Alive = false
	u.BlocksPoint = false
	u.Color = gamedata.ColorCorpse
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the unit's name.
func (u *Unit) GetName() string { return u.Name }

// IsAlive reports whether the unit is still alive.
func (u *Unit) IsAlive() bool { return u.Alive }

// GetHP returns current HP.
func (u *Unit) GetHP() int { return u.Stats.HP }

// GetMaxHP returns maximum HP.
func (u *Unit) GetMaxHP() int { return u.Stats.MaxHP }

// GetDamage returns the raw damage per hit.
func (u *Unit) GetDamage() int { return u.Stats.Damage }

// GetDefense returns the defense stat.
func (u *Unit) GetDefense() int { return u.Stats.Defense }

// TakeDamage reduces HP and returns actual damage taken. HP never rises and
// never drops below zero; reaching zero kills the unit for good.
func (u *Unit) TakeDamage(amount int) int {
	if amount <= 0 || !u.Alive {
		return 0
	}
	actual := amount
	if actual > u.Stats.HP {
		actual = u.Stats.HP
	}
	u.Stats.HP -= actual
	if u.Stats.HP <= 0 {
		u.die()
	}
	return actual
}

// Ensure Unit implements combat.Combatant
var _ combat.Combatant = (*Unit)(nil)

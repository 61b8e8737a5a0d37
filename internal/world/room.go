package world

import "github.com/samdwyer/torchcrawl/internal/entity"

// Room is an axis-aligned rectangle used while carving the dungeon.
// Right and Top are exclusive.
type Room struct {
	Left, Right int
	Bottom, Top int
}

// NewRoom creates a room from its left/top corner and its size.
func NewRoom(x, y, width, height int) Room {
	return Room{Left: x, Right: x + width, Bottom: y, Top: y + height}
}

// Width returns the number of columns covered by the room.
func (r Room) Width() int { return r.Right - r.Left }

// Height returns the number of rows covered by the room.
func (r Room) Height() int { return r.Top - r.Bottom }

// Center returns the integer midpoint, rounding toward Left/Bottom.
func (r Room) Center() entity.Position {
	return entity.Position{X: (r.Left + r.Right) / 2, Y: (r.Bottom + r.Top) / 2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Bottom && y < r.Top
}

// IntersectsAsTunnel reports a strict overlap. Two tunnel segments that only
// touch edge to edge do not intersect, which is how an elbow gap shows up.
func (r Room) IntersectsAsTunnel(other Room) bool {
	return r.Left < other.Right &&
		r.Right > other.Left &&
		r.Top > other.Bottom &&
		r.Bottom < other.Top
}

// IntersectsAsRoom reports an inclusive overlap. Rooms that share an edge are
// rejected, so at least one wall column or row always separates two rooms.
func (r Room) IntersectsAsRoom(other Room) bool {
	return r.Left <= other.Right &&
		r.Right >= other.Left &&
		r.Top >= other.Bottom &&
		r.Bottom <= other.Top
}

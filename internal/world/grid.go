package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate falls outside the grid.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// Grid is the tile storage of a map, row-major.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid creates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = Wall()
	}
	return &Grid{width: width, height: height, tiles: tiles}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a tile.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return Tile{}, fmt.Errorf("tile (%d,%d) in %dx%d grid: %w", x, y, g.width, g.height, ErrOutOfBounds)
	}
	return g.tiles[y*g.width+x], nil
}

// Set replaces the tile at (x, y).
func (g *Grid) Set(x, y int, t Tile) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("tile (%d,%d) in %dx%d grid: %w", x, y, g.width, g.height, ErrOutOfBounds)
	}
	g.tiles[y*g.width+x] = t
	return nil
}

// IsBlocked reports whether (x, y) cannot be walked on. Out of bounds counts
// as blocked.
func (g *Grid) IsBlocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.tiles[y*g.width+x].Blocked
}

// blocksSight reports whether (x, y) stops light. Out of bounds counts as opaque.
func (g *Grid) blocksSight(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.tiles[y*g.width+x].BlocksSight
}

// markExplored latches the explored flag of an in-bounds tile.
func (g *Grid) markExplored(x, y int) {
	if g.InBounds(x, y) {
		g.tiles[y*g.width+x].Explored = true
	}
}

// Carve turns every tile of r into floor. Explored flags are kept.
func (g *Grid) Carve(r Room) error {
	for y := r.Bottom; y < r.Top; y++ {
		for x := r.Left; x < r.Right; x++ {
			t, err := g.At(x, y)
			if err != nil {
				return fmt.Errorf("carve %+v: %w", r, err)
			}
			floor := Floor()
			floor.Explored = t.Explored
			g.tiles[y*g.width+x] = floor
		}
	}
	return nil
}

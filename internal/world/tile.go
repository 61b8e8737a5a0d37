// Package world provides dungeon generation, visibility and turn resolution.
package world

// Tile represents a single map cell.
type Tile struct {
	Blocked     bool // Impassable
	BlocksSight bool // Opaque to the visibility sweep
	Explored    bool // Seen at least once; never reset
}

// Wall returns the default, fully blocking tile.
func Wall() Tile {
	return Tile{Blocked: true, BlocksSight: true}
}

// Floor returns a carved, walkable tile.
func Floor() Tile {
	return Tile{}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return !t.Blocked
}

package gamedata

import "github.com/gdamore/tcell/v2"

// Archetype IDs referenced by code. Everything else about an archetype lives
// in archetypes.json.
const (
	PlayerID = "player"
	OrcID    = "orc"
	TrollID  = "troll"
)

// ArchetypeDef defines a unit preset loaded from JSON.
type ArchetypeDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "orc")
	Name        string `json:"name"`        // Display name
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "o")
	Color       string `json:"color"`       // Hex color code (e.g., "#3F7F3F")
	HP          int    `json:"hp"`          // Max hit points
	Defense     int    `json:"defense"`     // Subtracted from incoming damage
	Damage      int    `json:"damage"`      // Raw damage per hit
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency, 0 = never spawned by the generator
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ArchetypeDef) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '?'
	}
	return rune(a.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (a *ArchetypeDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// ArchetypesFile represents the structure of archetypes.json.
type ArchetypesFile struct {
	Archetypes []ArchetypeDef `json:"archetypes"`
}

// LoadArchetypes loads archetype definitions from the embedded archetypes.json file.
func LoadArchetypes() ([]ArchetypeDef, error) {
	file, err := Load[ArchetypesFile]("archetypes.json")
	if err != nil {
		return nil, err
	}
	return file.Archetypes, nil
}

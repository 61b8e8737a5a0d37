package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Presentation palette. Tiles have four looks depending on whether they are
// in view and whether they block movement.
var (
	ColorDarkWall    = tcell.NewRGBColor(0, 0, 100)
	ColorDarkGround  = tcell.NewRGBColor(50, 50, 150)
	ColorLightWall   = tcell.NewRGBColor(130, 110, 50)
	ColorLightGround = tcell.NewRGBColor(200, 180, 50)

	// ColorCorpse replaces a unit's color when it dies.
	ColorCorpse = tcell.NewRGBColor(127, 0, 0)
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	var rgb [3]int32
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid %s component in %s: %w", name, hex, err)
		}
		rgb[i] = int32(v)
	}

	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

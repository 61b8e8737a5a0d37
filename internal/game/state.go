// Package game provides the main game loop and state management.
package game

// DisplayMode controls what is drawn besides the map.
type DisplayMode int

const (
	// ModeHUD shows the health line and message log under the map.
	ModeHUD DisplayMode = iota
	// ModeMapOnly gives the whole terminal to the map.
	ModeMapOnly
)

// String returns a human-readable mode name.
func (m DisplayMode) String() string {
	switch m {
	case ModeHUD:
		return "hud"
	case ModeMapOnly:
		return "map_only"
	default:
		return "unknown"
	}
}

// Toggle switches between the two modes.
func (m DisplayMode) Toggle() DisplayMode {
	if m == ModeHUD {
		return ModeMapOnly
	}
	return ModeHUD
}

package game

import "github.com/gdamore/tcell/v2"

// Intent is what a key press asks the game to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentMove
	IntentToggleHUD
	IntentRestart
	IntentExit
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentMove:
		return "move"
	case IntentToggleHUD:
		return "toggle_hud"
	case IntentRestart:
		return "restart"
	case IntentExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Command is a decoded key press. DX and DY are only set for IntentMove.
type Command struct {
	Intent Intent
	DX, DY int
}

func move(dx, dy int) Command {
	return Command{Intent: IntentMove, DX: dx, DY: dy}
}

// CommandForKey maps a key event to a command. Unbound keys give IntentNone.
func CommandForKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Intent: IntentExit}
	case tcell.KeyTab:
		return Command{Intent: IntentToggleHUD}

	case tcell.KeyUp:
		return move(0, -1)
	case tcell.KeyDown:
		return move(0, 1)
	case tcell.KeyLeft:
		return move(-1, 0)
	case tcell.KeyRight:
		return move(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return move(0, -1)
		case 's', 'S':
			return move(0, 1)
		case 'a', 'A':
			return move(-1, 0)
		case 'd', 'D':
			return move(1, 0)
		case 'r', 'R':
			return Command{Intent: IntentRestart}
		case 'q', 'Q':
			return Command{Intent: IntentExit}
		}
	}
	return Command{Intent: IntentNone}
}

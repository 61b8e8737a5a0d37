package world

// Action is what an actor's move toward a tile turns into.
type Action int

const (
	// ActionMove means the tile is free to step onto.
	ActionMove Action = iota
	// ActionAttack means a living monster stands there.
	ActionAttack
	// ActionAFK means nothing can happen: off the map or blocked.
	ActionAFK
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	case ActionAFK:
		return "afk"
	default:
		return "unknown"
	}
}

// UserAction is the turn verdict of one input event.
type UserAction int

const (
	// TookTurn means the player moved or attacked; monsters act next.
	TookTurn UserAction = iota
	// DidNotTakeTurn covers rejected moves and display-only intents.
	DidNotTakeTurn
	// Exit ends the session.
	Exit
)

// String returns the user action name.
func (u UserAction) String() string {
	switch u {
	case TookTurn:
		return "took_turn"
	case DidNotTakeTurn:
		return "did_not_take_turn"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// TurnOutcome summarizes a resolved turn for the frame loop.
type TurnOutcome struct {
	Action     UserAction
	Combat     bool // At least one attack was resolved this turn
	PlayerDead bool
}

// TileState is the per-tile render state.
type TileState struct {
	Visible  bool
	Explored bool
	Blocked  bool
}

// HUD is the scalar data shown next to the map.
type HUD struct {
	HP, MaxHP int
	Dead      bool
}

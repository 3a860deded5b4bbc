package types

// ActionType names an operation a client asks the game loop to apply.
type ActionType string

const (
	ActionInitGame    ActionType = "init"
	ActionStartTurn   ActionType = "start-turn"
	ActionGuessed     ActionType = "guessed"
	ActionSkip        ActionType = "skip"
	ActionEndTurn     ActionType = "end-turn"
	ActionConfirmTurn ActionType = "confirm-turn"
	ActionSkipTurn    ActionType = "skip-turn"
	ActionNextSegment ActionType = "next-segment"
	ActionReset       ActionType = "reset"
	// ActionRestore installs a previously saved snapshot as a live game
	ActionRestore ActionType = "restore"
)

// InitGameParams carries the arguments of ActionInitGame.
type InitGameParams struct {
	Config    LobbyConfig
	TeamNames [2]string
	Players   []*Player
}

// Action is queued by request handlers and applied by the game loop.
type Action struct {
	LobbyID string
	Type    ActionType
	// Confirmed is only read for ActionConfirmTurn
	Confirmed []string
	// Init is only read for ActionInitGame
	Init *InitGameParams
	// Snapshot is only read for ActionRestore
	Snapshot *GameState
	// Result, when set, receives the outcome of the action exactly once
	Result chan<- error
}

// Reply sends err on the result channel if the sender asked for one.
func (a *Action) Reply(err error) {
	if a.Result == nil {
		return
	}
	select {
	case a.Result <- err:
	default:
	}
}

// GameUpdate is published whenever a live game changes. A nil State means
// the game was reset and is no longer live.
type GameUpdate struct {
	LobbyID string
	State   *GameState
}

package constants

import "time"

const (
	// SegmentCount is the number of rule variants played per game
	SegmentCount = 3
	// LastSegment is the index of the final segment
	LastSegment = SegmentCount - 1

	// DefaultTurnTime is the turn length in seconds used when a lobby does not set one
	DefaultTurnTime = 60
	// DefaultPhrasesPerPlayer is used when a lobby does not set one
	DefaultPhrasesPerPlayer = 5
	// MaxTurnTime bounds the turn length a lobby may request
	MaxTurnTime = 600
	// MaxPhrasesPerPlayer bounds the phrases a lobby may request
	MaxPhrasesPerPlayer = 20
	// MaxPhraseLength is the longest phrase accepted, in bytes
	MaxPhraseLength = 100
	// MaxPlayerNameLength is the longest player name accepted, in bytes
	MaxPlayerNameLength = 32

	// TickInterval is how often the turn timer advances
	TickInterval = time.Second
	// DefaultGameLoopInterval is how often the game loop drains queued actions
	DefaultGameLoopInterval = 100 * time.Millisecond
)

// SegmentNames are the display names of the segments, by index.
var SegmentNames = [SegmentCount]string{
	"Describe",
	"One Word",
	"Charades",
}

// SegmentInstructions are shown to the active player, by segment index.
var SegmentInstructions = [SegmentCount]string{
	"Describe the word using any words except the word itself.",
	"Give only ONE word as a clue.",
	"Act it out! No speaking allowed.",
}

// DefaultTeamNames are used when a game is started without team names.
var DefaultTeamNames = [2]string{"Team 1", "Team 2"}

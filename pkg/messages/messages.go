package messages

import "encoding/json"

const (
	// MessageBufferSize is the number of outgoing messages buffered per observer
	MessageBufferSize = 64
)

// Message types
const (
	MessageTypeServerGameUpdate  = "game-update"
	MessageTypeServerGameDeleted = "game-deleted"
	MessageTypeServerError       = "error"
)

// Message is the envelope every server push is wrapped in
type Message struct {
	LobbyID string          `json:"lobbyId"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PlayerView is the public part of a player
type PlayerView struct {
	Name string `json:"name"`
	Team int    `json:"team"`
}

// ServerGameUpdate is the view of a game pushed to observers. It carries
// the derived current player and omits the order of the remaining pool.
type ServerGameUpdate struct {
	LobbyID            string       `json:"lobbyId"`
	Phase              string       `json:"phase"`
	Segment            int          `json:"segment"`
	SegmentName        string       `json:"segmentName"`
	SegmentInstruction string       `json:"segmentInstruction"`
	TeamNames          [2]string    `json:"teamNames"`
	Players            []PlayerView `json:"players"`
	Scores             [2]int       `json:"scores"`
	CurrentTeam        int          `json:"currentTeam"`
	CurrentPlayer      *PlayerView  `json:"currentPlayer"`
	CurrentPhrase      *string      `json:"currentPhrase"`
	RemainingCount     int          `json:"remainingCount"`
	GuessedThisTurn    []string     `json:"guessedThisTurn"`
	SkippedThisTurn    []string     `json:"skippedThisTurn"`
	TimeLeft           int          `json:"timeLeft"`
	TurnTime           int          `json:"turnTime"`
	Finished           bool         `json:"finished"`
	// Winner is the winning team index once the game is finished, -1 on a tie
	Winner int `json:"winner"`
}

// ServerError is pushed to a single observer when its request failed
type ServerError struct {
	Message string `json:"message"`
}

package types

// Team identifies one of the two teams.
type Team = int

const (
	TeamA Team = 0
	TeamB Team = 1
)

// OtherTeam returns the team that plays after team.
func OtherTeam(team Team) Team {
	if team == TeamA {
		return TeamB
	}
	return TeamA
}

// LobbyConfig holds the settings chosen when a lobby is created.
// The submission flow validates it; the game loop trusts it.
type LobbyConfig struct {
	// TurnTime is the length of a turn in seconds
	TurnTime int `json:"turnTime" yaml:"turn_time"`
	// PhrasesPerPlayer is the number of phrases each player submits
	PhrasesPerPlayer int `json:"phrasesPerPlayer" yaml:"phrases_per_player"`
}

// Submission is the set of phrases one player entered into a lobby.
type Submission struct {
	PlayerName string   `json:"playerName"`
	Phrases    []string `json:"phrases"`
}

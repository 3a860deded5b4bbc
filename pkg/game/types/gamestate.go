package types

// Phase is the step of the turn cycle the game is in.
type Phase string

const (
	PhasePreTurn    Phase = "preTurn"
	PhaseTurn       Phase = "turn"
	PhasePostTurn   Phase = "postTurn"
	PhaseSegmentEnd Phase = "segmentEnd"
)

// Segment is the rule variant applied to one full pass over the phrases.
type Segment int

const (
	SegmentDescribe Segment = iota
	SegmentOneWord
	SegmentCharades
)

type GameState struct {
	LobbyID   string      `json:"lobbyId"`
	Config    LobbyConfig `json:"config"`
	TeamNames [2]string   `json:"teamNames"`
	// Players is the full roster in submission order
	Players []*Player `json:"players"`
	// Scores holds the confirmed guesses per team across all segments
	Scores  [2]int  `json:"scores"`
	Segment Segment `json:"segment"`
	// CurrentTeam is the team whose turn it is
	CurrentTeam Team `json:"currentTeam"`
	// CurrentPlayerIndex rotates per team; it is taken modulo the team size
	CurrentPlayerIndex [2]int `json:"currentPlayerIndex"`
	Phase              Phase  `json:"phase"`
	// RemainingPhrases is the FIFO pool of phrases not yet guessed this segment
	RemainingPhrases []string `json:"remainingPhrases"`
	// CurrentPhrase is the phrase being shown, nil when none is
	CurrentPhrase   *string  `json:"currentPhrase"`
	GuessedThisTurn []string `json:"guessedThisTurn"`
	SkippedThisTurn []string `json:"skippedThisTurn"`
	// ScoredThisSegment lists phrases confirmed since the segment started
	ScoredThisSegment []string `json:"scoredThisSegment"`
	// TimeLeft is the number of seconds left in the current turn
	TimeLeft int `json:"timeLeft"`
}

// Copy returns a deep copy of the game state. Reducers never modify the
// state they are given; they work on a copy.
func (g *GameState) Copy() *GameState {
	if g == nil {
		return nil
	}
	newGameState := &GameState{
		LobbyID:            g.LobbyID,
		Config:             g.Config,
		TeamNames:          g.TeamNames,
		Players:            make([]*Player, 0, len(g.Players)),
		Scores:             g.Scores,
		Segment:            g.Segment,
		CurrentTeam:        g.CurrentTeam,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		Phase:              g.Phase,
		RemainingPhrases:   copyPhrases(g.RemainingPhrases),
		GuessedThisTurn:    copyPhrases(g.GuessedThisTurn),
		SkippedThisTurn:    copyPhrases(g.SkippedThisTurn),
		ScoredThisSegment:  copyPhrases(g.ScoredThisSegment),
		TimeLeft:           g.TimeLeft,
	}
	for _, player := range g.Players {
		newGameState.Players = append(newGameState.Players, player.Copy())
	}
	if g.CurrentPhrase != nil {
		phrase := *g.CurrentPhrase
		newGameState.CurrentPhrase = &phrase
	}
	return newGameState
}

// AllPhrases returns every phrase of every player in roster order.
func (g *GameState) AllPhrases() []string {
	phrases := []string{}
	for _, player := range g.Players {
		phrases = append(phrases, player.Phrases...)
	}
	return phrases
}

// TeamPlayers returns the players on team in roster order.
func (g *GameState) TeamPlayers(team Team) []*Player {
	players := []*Player{}
	for _, player := range g.Players {
		if player.Team == team {
			players = append(players, player)
		}
	}
	return players
}

func copyPhrases(phrases []string) []string {
	out := make([]string, len(phrases))
	copy(out, phrases)
	return out
}

package game

import (
	"fmt"

	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
)

// The functions in this file are reducers: each takes the current state and
// returns the next one without modifying its input. When an operation does
// not apply, the input pointer is returned unchanged so callers can detect a
// no-op by comparing pointers.

func initGame(shuffler Shuffler, lobbyID string, config types.LobbyConfig, teamNames [2]string, players []*types.Player) *types.GameState {
	roster := make([]*types.Player, 0, len(players))
	for _, player := range players {
		roster = append(roster, player.Copy())
	}
	s := &types.GameState{
		LobbyID:            lobbyID,
		Config:             config,
		TeamNames:          teamNames,
		Players:            roster,
		Scores:             [2]int{0, 0},
		Segment:            types.SegmentDescribe,
		CurrentTeam:        types.TeamA,
		CurrentPlayerIndex: [2]int{0, 0},
		Phase:              types.PhasePreTurn,
		GuessedThisTurn:    []string{},
		SkippedThisTurn:    []string{},
		ScoredThisSegment:  []string{},
		TimeLeft:           config.TurnTime,
	}
	s.RemainingPhrases = buildPool(shuffler, s.AllPhrases())
	return s
}

// currentPlayer selects the active player of the current team, or nil.
func currentPlayer(s *types.GameState) *types.Player {
	if s == nil {
		return nil
	}
	teamPlayers := s.TeamPlayers(s.CurrentTeam)
	if len(teamPlayers) == 0 {
		return nil
	}
	return teamPlayers[s.CurrentPlayerIndex[s.CurrentTeam]%len(teamPlayers)]
}

func startTurn(s *types.GameState) *types.GameState {
	if s == nil || s.Phase != types.PhasePreTurn {
		return s
	}
	next := s.Copy()
	next.Phase = types.PhaseTurn
	next.TimeLeft = s.Config.TurnTime
	next.GuessedThisTurn = []string{}
	next.SkippedThisTurn = []string{}
	next.CurrentPhrase, next.RemainingPhrases = popHead(next.RemainingPhrases)
	return next
}

func guessed(s *types.GameState) *types.GameState {
	if s == nil || s.CurrentPhrase == nil {
		return s
	}
	next := s.Copy()
	next.GuessedThisTurn = append(next.GuessedThisTurn, *s.CurrentPhrase)
	if len(next.RemainingPhrases) == 0 {
		next.CurrentPhrase = nil
		next.Phase = types.PhasePostTurn
		return next
	}
	next.CurrentPhrase, next.RemainingPhrases = popHead(next.RemainingPhrases)
	return next
}

func skip(s *types.GameState) *types.GameState {
	if s == nil || s.CurrentPhrase == nil {
		return s
	}
	next := s.Copy()
	next.SkippedThisTurn = append(next.SkippedThisTurn, *s.CurrentPhrase)
	next.RemainingPhrases = append(next.RemainingPhrases, *s.CurrentPhrase)
	next.CurrentPhrase, next.RemainingPhrases = popHead(next.RemainingPhrases)
	return next
}

// returnCurrentPhrase ends the turn with the unresolved phrase back at the
// front of the pool. It modifies s, which must already be a copy.
func returnCurrentPhrase(s *types.GameState) {
	if s.CurrentPhrase != nil {
		s.RemainingPhrases = pushHead(s.RemainingPhrases, *s.CurrentPhrase)
	}
	s.CurrentPhrase = nil
	s.Phase = types.PhasePostTurn
}

func endTurn(s *types.GameState) *types.GameState {
	if s == nil || s.Phase != types.PhaseTurn {
		return s
	}
	next := s.Copy()
	returnCurrentPhrase(next)
	return next
}

func confirmTurn(s *types.GameState, confirmed []string) (*types.GameState, error) {
	if s == nil || s.Phase != types.PhasePostTurn {
		return s, nil
	}
	unconfirmed, missing := takeConfirmed(s.GuessedThisTurn, confirmed)
	if missing != nil {
		return s, &types.ErrValidation{
			Field:  "confirmed",
			Reason: fmt.Sprintf("%q was not guessed this turn", *missing),
		}
	}

	next := s.Copy()
	next.Scores[s.CurrentTeam] += len(confirmed)
	next.ScoredThisSegment = append(next.ScoredThisSegment, confirmed...)
	next.RemainingPhrases = append(unconfirmed, next.RemainingPhrases...)
	next.GuessedThisTurn = []string{}
	next.SkippedThisTurn = []string{}

	if len(next.RemainingPhrases) == 0 {
		next.Phase = types.PhaseSegmentEnd
		return next, nil
	}

	next.CurrentPlayerIndex[s.CurrentTeam]++
	next.CurrentTeam = types.OtherTeam(s.CurrentTeam)
	next.Phase = types.PhasePreTurn
	return next, nil
}

// skipTurn passes the turn to the other team without touching score or pool.
// It only applies in preTurn; once a turn has started the phrases in hand
// must go through endTurn and confirmTurn.
func skipTurn(s *types.GameState) *types.GameState {
	if s == nil || s.Phase != types.PhasePreTurn {
		return s
	}
	next := s.Copy()
	next.CurrentPlayerIndex[s.CurrentTeam]++
	next.CurrentTeam = types.OtherTeam(s.CurrentTeam)
	return next
}

// nextSegment moves to the next segment with a reshuffled pool of every
// phrase. It only applies in segmentEnd, so phrases still in the bowl are
// never discarded, and it is a no-op after the last segment.
func nextSegment(shuffler Shuffler, s *types.GameState) *types.GameState {
	if s == nil || s.Segment >= constants.LastSegment || s.Phase != types.PhaseSegmentEnd {
		return s
	}
	next := s.Copy()
	next.Segment++
	next.RemainingPhrases = buildPool(shuffler, next.AllPhrases())
	next.ScoredThisSegment = []string{}
	next.CurrentPhrase = nil
	next.Phase = types.PhasePreTurn
	return next
}

func tick(s *types.GameState) *types.GameState {
	if s == nil || s.Phase != types.PhaseTurn {
		return s
	}
	next := s.Copy()
	next.TimeLeft--
	if next.TimeLeft <= 0 {
		next.TimeLeft = 0
		returnCurrentPhrase(next)
	}
	return next
}

// Finished reports whether the final segment has been played out.
func Finished(s *types.GameState) bool {
	return s != nil && s.Segment == constants.LastSegment && s.Phase == types.PhaseSegmentEnd
}

// Winner returns the index of the team with the higher score, or -1 on a tie.
func Winner(s *types.GameState) int {
	if s == nil || s.Scores[types.TeamA] == s.Scores[types.TeamB] {
		return -1
	}
	if s.Scores[types.TeamA] > s.Scores[types.TeamB] {
		return types.TeamA
	}
	return types.TeamB
}

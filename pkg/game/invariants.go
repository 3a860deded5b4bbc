package game

import (
	"fmt"

	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
)

// CheckInvariants verifies the phrase accounting of s: every roster phrase is
// either in the pool, being shown, guessed this turn, or already scored this
// segment, exactly once. A nil state is trivially valid.
func CheckInvariants(s *types.GameState) error {
	if s == nil {
		return nil
	}

	switch s.Phase {
	case types.PhasePreTurn, types.PhaseTurn, types.PhasePostTurn, types.PhaseSegmentEnd:
	default:
		return &types.ErrInvariantViolation{Reason: fmt.Sprintf("unknown phase %q", s.Phase)}
	}
	if s.Segment < types.SegmentDescribe || s.Segment > constants.LastSegment {
		return &types.ErrInvariantViolation{Reason: fmt.Sprintf("segment %d out of range", s.Segment)}
	}
	if s.CurrentTeam != types.TeamA && s.CurrentTeam != types.TeamB {
		return &types.ErrInvariantViolation{Reason: fmt.Sprintf("current team %d out of range", s.CurrentTeam)}
	}
	if s.TimeLeft < 0 {
		return &types.ErrInvariantViolation{Reason: fmt.Sprintf("negative time left %d", s.TimeLeft)}
	}
	if s.CurrentPhrase != nil && s.Phase != types.PhaseTurn {
		return &types.ErrInvariantViolation{Reason: fmt.Sprintf("phrase shown during %s", s.Phase)}
	}
	for team, score := range s.Scores {
		if score < 0 {
			return &types.ErrInvariantViolation{Reason: fmt.Sprintf("negative score %d for team %d", score, team)}
		}
	}
	if total := s.Scores[types.TeamA] + s.Scores[types.TeamB]; total < len(s.ScoredThisSegment) {
		return &types.ErrInvariantViolation{
			Reason: fmt.Sprintf("total score %d below %d phrases scored this segment", total, len(s.ScoredThisSegment)),
		}
	}

	accounted := [][]string{s.RemainingPhrases, s.GuessedThisTurn, s.ScoredThisSegment}
	if s.CurrentPhrase != nil {
		accounted = append(accounted, []string{*s.CurrentPhrase})
	}
	want := phraseCounts(s.AllPhrases())
	got := phraseCounts(accounted...)
	for phrase, count := range want {
		if got[phrase] != count {
			return &types.ErrInvariantViolation{
				Reason: fmt.Sprintf("phrase %q accounted %d times, want %d", phrase, got[phrase], count),
			}
		}
	}
	for phrase, count := range got {
		if _, ok := want[phrase]; !ok {
			return &types.ErrInvariantViolation{
				Reason: fmt.Sprintf("phrase %q accounted %d times but is not on the roster", phrase, count),
			}
		}
	}
	return nil
}

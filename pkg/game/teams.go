package game

import (
	"strings"

	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
)

// AssignTeams turns lobby submissions into a roster, alternating players
// between the two teams in submission order.
func AssignTeams(submissions []types.Submission) []*types.Player {
	players := make([]*types.Player, 0, len(submissions))
	for i, submission := range submissions {
		players = append(players, &types.Player{
			Name:    submission.PlayerName,
			Phrases: append([]string(nil), submission.Phrases...),
			Team:    i % 2,
		})
	}
	return players
}

// NormalizeTeamNames trims names and falls back to the defaults for blanks.
func NormalizeTeamNames(names [2]string) [2]string {
	out := constants.DefaultTeamNames
	for i, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out[i] = trimmed
		}
	}
	return out
}

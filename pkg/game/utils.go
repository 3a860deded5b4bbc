package game

import (
	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/messages"
)

// ServerGameUpdateFromState builds the observer view of a state.
func ServerGameUpdateFromState(state *types.GameState) *messages.ServerGameUpdate {
	players := make([]messages.PlayerView, 0, len(state.Players))
	for _, player := range state.Players {
		players = append(players, messages.PlayerView{
			Name: player.Name,
			Team: player.Team,
		})
	}

	update := &messages.ServerGameUpdate{
		LobbyID:         state.LobbyID,
		Phase:           string(state.Phase),
		Segment:         int(state.Segment),
		TeamNames:       state.TeamNames,
		Players:         players,
		Scores:          state.Scores,
		CurrentTeam:     state.CurrentTeam,
		RemainingCount:  len(state.RemainingPhrases),
		GuessedThisTurn: append([]string{}, state.GuessedThisTurn...),
		SkippedThisTurn: append([]string{}, state.SkippedThisTurn...),
		TimeLeft:        state.TimeLeft,
		TurnTime:        state.Config.TurnTime,
		Finished:        Finished(state),
		Winner:          -1,
	}
	if state.Segment >= 0 && int(state.Segment) < constants.SegmentCount {
		update.SegmentName = constants.SegmentNames[state.Segment]
		update.SegmentInstruction = constants.SegmentInstructions[state.Segment]
	}
	if player := currentPlayer(state); player != nil {
		update.CurrentPlayer = &messages.PlayerView{
			Name: player.Name,
			Team: player.Team,
		}
	}
	if state.CurrentPhrase != nil {
		phrase := *state.CurrentPhrase
		update.CurrentPhrase = &phrase
	}
	if update.Finished {
		update.Winner = Winner(state)
	}
	return update
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cbodonnell/fishbowl/pkg/game"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/lobby"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
	"github.com/cbodonnell/fishbowl/pkg/network"
	"github.com/cbodonnell/fishbowl/pkg/repositories"
	"github.com/gorilla/mux"
)

// GameService connects HTTP requests to the game loop. Games that are not
// live are restored from their last snapshot on first use.
type GameService struct {
	gameManager  *game.GameManager
	lobbyService *lobby.Service
	wsHandler    *network.WSHandler
}

type NewGameServiceOptions struct {
	GameManager  *game.GameManager
	LobbyService *lobby.Service
	WSHandler    *network.WSHandler
}

func NewGameService(opts NewGameServiceOptions) *GameService {
	return &GameService{
		gameManager:  opts.GameManager,
		lobbyService: opts.LobbyService,
		wsHandler:    opts.WSHandler,
	}
}

type StartGameRequest struct {
	TeamNames [2]string `json:"teamNames"`
}

type GameActionRequest struct {
	Type types.ActionType `json:"type"`
	// Confirmed lists the phrases accepted by the other team on confirm-turn
	Confirmed []string `json:"confirmed,omitempty"`
}

// clientActions are the actions a client may post for a running game
var clientActions = map[types.ActionType]bool{
	types.ActionStartTurn:   true,
	types.ActionGuessed:     true,
	types.ActionSkip:        true,
	types.ActionEndTurn:     true,
	types.ActionConfirmTurn: true,
	types.ActionSkipTurn:    true,
	types.ActionNextSegment: true,
}

// loadGame returns the live state of a lobby's game, restoring it from the
// stored snapshot if the game loop does not hold it.
func (s *GameService) loadGame(ctx context.Context, lobbyID string) (*types.GameState, error) {
	if state, ok := s.gameManager.State(lobbyID); ok {
		return state, nil
	}

	data, err := s.lobbyService.LoadGameSnapshot(ctx, lobbyID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, &game.ErrGameNotFound{LobbyID: lobbyID}
		}
		return nil, err
	}
	snapshot, err := messages.DeserializeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot of game %s: %w", lobbyID, err)
	}
	if err := s.gameManager.Submit(ctx, &types.Action{
		LobbyID:  lobbyID,
		Type:     types.ActionRestore,
		Snapshot: snapshot,
	}); err != nil {
		return nil, err
	}

	state, ok := s.gameManager.State(lobbyID)
	if !ok {
		return nil, &game.ErrGameNotFound{LobbyID: lobbyID}
	}
	return state, nil
}

// reset ends a lobby's game if one is live and drops its snapshot.
func (s *GameService) reset(r *http.Request, lobbyID string) {
	err := s.gameManager.Submit(r.Context(), &types.Action{LobbyID: lobbyID, Type: types.ActionReset})
	if err != nil && !game.IsGameNotFound(err) {
		log.Warn("Failed to reset game %s: %v", lobbyID, err)
	}
	if err := s.lobbyService.DeleteGameSnapshot(r.Context(), lobbyID); err != nil && !repositories.IsNotFound(err) {
		log.Debug("Failed to delete snapshot of game %s: %v", lobbyID, err)
	}
}

// HandleStartGame builds the roster from the lobby's submissions and starts
// a new game, replacing any game already running in the lobby.
func HandleStartGame(s *GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyID := mux.Vars(r)["lobbyID"]
		req := StartGameRequest{}
		if err := decodeJSON(r, &req, true); err != nil {
			writeError(w, err)
			return
		}

		l, err := s.lobbyService.GetLobby(r.Context(), lobbyID)
		if err != nil {
			writeError(w, err)
			return
		}
		submissions, err := s.lobbyService.GetSubmissions(r.Context(), lobbyID)
		if err != nil {
			writeError(w, err)
			return
		}

		err = s.gameManager.Submit(r.Context(), &types.Action{
			LobbyID: lobbyID,
			Type:    types.ActionInitGame,
			Init: &types.InitGameParams{
				Config:    l.Config,
				TeamNames: game.NormalizeTeamNames(req.TeamNames),
				Players:   game.AssignTeams(submissions),
			},
		})
		if err != nil {
			writeError(w, err)
			return
		}

		state, ok := s.gameManager.State(lobbyID)
		if !ok {
			writeError(w, &game.ErrGameNotFound{LobbyID: lobbyID})
			return
		}
		writeJSON(w, http.StatusCreated, game.ServerGameUpdateFromState(state))
	}
}

func HandleGetGame(s *GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.loadGame(r.Context(), mux.Vars(r)["lobbyID"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, game.ServerGameUpdateFromState(state))
	}
}

func HandleGameAction(s *GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyID := mux.Vars(r)["lobbyID"]
		req := GameActionRequest{}
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		if !clientActions[req.Type] {
			writeError(w, &types.ErrValidation{Field: "type", Reason: fmt.Sprintf("unknown action %q", req.Type)})
			return
		}

		if _, err := s.loadGame(r.Context(), lobbyID); err != nil {
			writeError(w, err)
			return
		}
		err := s.gameManager.Submit(r.Context(), &types.Action{
			LobbyID:   lobbyID,
			Type:      req.Type,
			Confirmed: req.Confirmed,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		state, ok := s.gameManager.State(lobbyID)
		if !ok {
			writeError(w, &game.ErrGameNotFound{LobbyID: lobbyID})
			return
		}
		writeJSON(w, http.StatusOK, game.ServerGameUpdateFromState(state))
	}
}

func HandleResetGame(s *GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.reset(r, mux.Vars(r)["lobbyID"])
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleObserveGame streams game updates of a lobby over a websocket. The
// current state, if a game is running, is sent first. It is read after the
// observer is registered so an update in between is not lost.
func HandleObserveGame(s *GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyID := mux.Vars(r)["lobbyID"]
		if _, err := s.lobbyService.GetLobby(r.Context(), lobbyID); err != nil {
			writeError(w, err)
			return
		}
		// restore a stored game so the observer starts from it
		if _, err := s.loadGame(r.Context(), lobbyID); err != nil && !game.IsGameNotFound(err) {
			writeError(w, err)
			return
		}

		initial := func() (*messages.Message, error) {
			state, ok := s.gameManager.State(lobbyID)
			if !ok {
				return nil, nil
			}
			return messages.NewMessage(lobbyID, messages.MessageTypeServerGameUpdate, game.ServerGameUpdateFromState(state))
		}
		if err := s.wsHandler.Serve(r.Context(), w, r, lobbyID, initial); err != nil {
			log.Debug("Observer of lobby %s disconnected: %v", lobbyID, err)
		}
	}
}

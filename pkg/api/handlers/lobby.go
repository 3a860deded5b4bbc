package handlers

import (
	"net/http"
	"time"

	"github.com/cbodonnell/fishbowl/pkg/config"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/lobby"
	"github.com/gorilla/mux"
)

// LobbyResponse is the public view of a lobby
type LobbyResponse struct {
	ID               string    `json:"id"`
	TurnTime         int       `json:"turnTime"`
	PhrasesPerPlayer int       `json:"phrasesPerPlayer"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SubmitPlayerRequest struct {
	Name    string   `json:"name"`
	Phrases []string `json:"phrases"`
}

type ConfigRequest struct {
	DatabaseURL string `json:"databaseUrl"`
}

type ConfigResponse struct {
	Configured bool `json:"configured"`
}

func HandleCreateLobby(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyConfig := types.LobbyConfig{}
		if err := decodeJSON(r, &lobbyConfig, false); err != nil {
			writeError(w, err)
			return
		}

		lobbyID, err := service.CreateLobby(r.Context(), lobbyConfig)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": lobbyID})
	}
}

func HandleGetLobby(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := service.GetLobby(r.Context(), mux.Vars(r)["lobbyID"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &LobbyResponse{
			ID:               l.ID,
			TurnTime:         l.Config.TurnTime,
			PhrasesPerPlayer: l.Config.PhrasesPerPlayer,
			CreatedAt:        l.CreatedAt,
		})
	}
}

// HandleDeleteLobby resets any running game and removes the lobby. Like the
// service call it never fails.
func HandleDeleteLobby(service *lobby.Service, gameService *GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyID := mux.Vars(r)["lobbyID"]
		gameService.reset(r, lobbyID)
		service.DeleteLobby(r.Context(), lobbyID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleSubmitPlayer(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := SubmitPlayerRequest{}
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		if err := service.SubmitPlayer(r.Context(), mux.Vars(r)["lobbyID"], req.Name, req.Phrases); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleListSubmissions(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := service.GetSubmissions(r.Context(), mux.Vars(r)["lobbyID"])
		if err != nil {
			writeError(w, err)
			return
		}
		if submissions == nil {
			submissions = []types.Submission{}
		}
		writeJSON(w, http.StatusOK, submissions)
	}
}

func HandleGetConfig(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, &ConfigResponse{Configured: service.Configured()})
	}
}

func HandlePutConfig(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := ConfigRequest{}
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		if err := service.Init(r.Context(), &config.Credentials{DatabaseURL: req.DatabaseURL}); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &ConfigResponse{Configured: true})
	}
}

func HandleDeleteConfig(service *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Teardown(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

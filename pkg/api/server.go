package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/fishbowl/pkg/api/handlers"
	"github.com/cbodonnell/fishbowl/pkg/api/middleware"
	"github.com/cbodonnell/fishbowl/pkg/game"
	"github.com/cbodonnell/fishbowl/pkg/lobby"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/network"
	"github.com/cbodonnell/fishbowl/pkg/version"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port int
	TLS  *TLSConfig
	// AllowOrigin is a comma-separated list of origins allowed by CORS
	AllowOrigin  string
	LobbyService *lobby.Service
	GameManager  *game.GameManager
	WSHandler    *network.WSHandler
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter builds the request handler of the API server.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	gameService := handlers.NewGameService(handlers.NewGameServiceOptions{
		GameManager:  opts.GameManager,
		LobbyService: opts.LobbyService,
		WSHandler:    opts.WSHandler,
	})

	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, version.Get())
	}).Methods(http.MethodGet)

	r.HandleFunc("/config", handlers.HandleGetConfig(opts.LobbyService)).Methods(http.MethodGet)
	r.HandleFunc("/config", handlers.HandlePutConfig(opts.LobbyService)).Methods(http.MethodPut)
	r.HandleFunc("/config", handlers.HandleDeleteConfig(opts.LobbyService)).Methods(http.MethodDelete)

	lobbies := r.PathPrefix("/lobbies").Subrouter()
	lobbies.HandleFunc("", handlers.HandleCreateLobby(opts.LobbyService)).Methods(http.MethodPost)
	lobbies.HandleFunc("/{lobbyID}", handlers.HandleGetLobby(opts.LobbyService)).Methods(http.MethodGet)
	lobbies.HandleFunc("/{lobbyID}", handlers.HandleDeleteLobby(opts.LobbyService, gameService)).Methods(http.MethodDelete)
	lobbies.HandleFunc("/{lobbyID}/submissions", handlers.HandleListSubmissions(opts.LobbyService)).Methods(http.MethodGet)
	lobbies.HandleFunc("/{lobbyID}/submissions", handlers.HandleSubmitPlayer(opts.LobbyService)).Methods(http.MethodPost)
	lobbies.HandleFunc("/{lobbyID}/game", handlers.HandleGetGame(gameService)).Methods(http.MethodGet)
	lobbies.HandleFunc("/{lobbyID}/game", handlers.HandleStartGame(gameService)).Methods(http.MethodPost)
	lobbies.HandleFunc("/{lobbyID}/game", handlers.HandleResetGame(gameService)).Methods(http.MethodDelete)
	lobbies.HandleFunc("/{lobbyID}/game/actions", handlers.HandleGameAction(gameService)).Methods(http.MethodPost)
	lobbies.HandleFunc("/{lobbyID}/game/ws", handlers.HandleObserveGame(gameService)).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never reach route matching
	return middleware.NewCORSMiddleware(opts.AllowOrigin)(r)
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

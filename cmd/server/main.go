package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/fishbowl/pkg/api"
	"github.com/cbodonnell/fishbowl/pkg/config"
	"github.com/cbodonnell/fishbowl/pkg/game"
	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/lobby"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/network"
	"github.com/cbodonnell/fishbowl/pkg/queue"
	"github.com/cbodonnell/fishbowl/pkg/version"
	"github.com/cbodonnell/fishbowl/pkg/workers"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	allowOrigin := flag.String("allow-origin", os.Getenv("FISHBOWL_ALLOW_ORIGIN"), "comma-separated list of allowed origins")
	logLevel := flag.String("log-level", "info", "Log level")
	gameLoopInterval := flag.Duration("game-loop-interval", constants.DefaultGameLoopInterval, "how often queued game actions are applied")
	saveInterval := flag.Duration("save-interval", workers.DefaultSaveInterval, "how often game snapshots are saved")
	migrationsDir := flag.String("migrations-dir", "./migrations", "directory holding the sqlite and postgres migrations")
	strict := flag.Bool("strict", false, "panic when a game breaks its phrase accounting")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting fishbowl server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	credentialsStore := config.NewFileStoreFromEnv()
	log.Debug("Using credentials file %s", credentialsStore.Path())
	lobbyService, err := lobby.NewServiceFromStore(ctx, lobby.NewServiceOptions{
		Store:         credentialsStore,
		MigrationsDir: *migrationsDir,
	})
	if err != nil {
		// keep serving; the database can be configured through the api
		log.Error("Failed to configure lobby service: %v", err)
	}

	broadcastChan := make(chan types.GameUpdate, 1000)
	saveChan := make(chan types.GameUpdate, 1000)

	clientManager := network.NewClientManager()
	broadcastWorker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		Broadcaster: clientManager,
		UpdateChan:  broadcastChan,
	})
	go broadcastWorker.Start(ctx)

	saveGameStateWorker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
		Store:      lobbyService,
		UpdateChan: saveChan,
		Interval:   *saveInterval,
	})
	saveDone := make(chan struct{})
	go func() {
		saveGameStateWorker.Start(ctx)
		close(saveDone)
	}()

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		ActionQueue:      queue.NewInMemoryQueue[*types.Action](10000),
		UpdateChans:      []chan<- types.GameUpdate{broadcastChan, saveChan},
		GameLoopInterval: *gameLoopInterval,
		Strict:           *strict,
	})
	go func() {
		log.Info("Starting game manager")
		if err := gameManager.Start(ctx); err != nil {
			log.Error("Game manager stopped: %v", err)
		}
	}()

	apiServerOpts := api.NewAPIServerOptions{
		Port:         *port,
		AllowOrigin:  *allowOrigin,
		LobbyService: lobbyService,
		GameManager:  gameManager,
		WSHandler:    network.NewWSHandler(network.NewWSHandlerOptions{ClientManager: clientManager}),
	}
	tlsCertFile := os.Getenv("FISHBOWL_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("FISHBOWL_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}

	cancel()
	select {
	case <-saveDone:
	case <-shutdownCtx.Done():
		log.Warn("Timed out waiting for game snapshots to be saved")
	}
	if err := lobbyService.Close(shutdownCtx); err != nil {
		log.Error("Failed to close lobby service: %v", err)
	}
}

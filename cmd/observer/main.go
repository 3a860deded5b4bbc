package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
	"github.com/cbodonnell/fishbowl/pkg/network"
	"github.com/cbodonnell/fishbowl/pkg/version"
	"nhooyr.io/websocket"
)

// observer prints the game updates of one lobby as they are pushed.
func main() {
	serverURL := flag.String("server", "ws://localhost:9090", "fishbowl server url")
	lobbyID := flag.String("lobby", "", "lobby to observe")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel))

	if *lobbyID == "" {
		fmt.Fprintln(os.Stderr, "-lobby is required")
		os.Exit(2)
	}
	log.Info("Starting observer version %s", version.Get())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	url := fmt.Sprintf("%s/lobbies/%s/game/ws", strings.TrimSuffix(*serverURL, "/"), *lobbyID)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		log.Error("Failed to connect to %s: %v", url, err)
		os.Exit(1)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		msg, err := network.ReadMessage(ctx, conn)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || ctx.Err() != nil {
				log.Info("Observer stopped")
				return
			}
			log.Error("Failed to read message: %v", err)
			os.Exit(1)
		}
		printMessage(msg)
	}
}

func printMessage(msg *messages.Message) {
	switch msg.Type {
	case messages.MessageTypeServerGameDeleted:
		fmt.Println("game ended")
	case messages.MessageTypeServerGameUpdate:
		update := &messages.ServerGameUpdate{}
		if err := json.Unmarshal(msg.Payload, update); err != nil {
			log.Error("Failed to decode game update: %v", err)
			return
		}
		player := "-"
		if update.CurrentPlayer != nil {
			player = update.CurrentPlayer.Name
		}
		fmt.Printf("[%s] %s | %s %d - %d %s | %s to play | %d left in bowl | %ds\n",
			update.SegmentName, update.Phase,
			update.TeamNames[0], update.Scores[0], update.Scores[1], update.TeamNames[1],
			player, update.RemainingCount, update.TimeLeft)
		if update.Finished {
			switch update.Winner {
			case -1:
				fmt.Println("tie game")
			default:
				fmt.Printf("%s win\n", update.TeamNames[update.Winner])
			}
		}
	default:
		log.Debug("Ignoring %s message", msg.Type)
	}
}

package workers

import (
	"context"

	"github.com/cbodonnell/fishbowl/pkg/game"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
)

// Broadcaster delivers a message to every observer of a lobby.
type Broadcaster interface {
	Broadcast(lobbyID string, msg *messages.Message) int
}

type BroadcastMessageWorker struct {
	broadcaster Broadcaster
	updateChan  <-chan types.GameUpdate
}

type NewBroadcastMessageWorkerOptions struct {
	Broadcaster Broadcaster
	UpdateChan  <-chan types.GameUpdate
}

func NewBroadcastMessageWorker(opts NewBroadcastMessageWorkerOptions) *BroadcastMessageWorker {
	return &BroadcastMessageWorker{
		broadcaster: opts.Broadcaster,
		updateChan:  opts.UpdateChan,
	}
}

func (w *BroadcastMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-w.updateChan:
			if err := w.handleGameUpdate(update); err != nil {
				log.Error("Failed to handle game update for lobby %s: %v", update.LobbyID, err)
			}
		}
	}
}

func (w *BroadcastMessageWorker) handleGameUpdate(update types.GameUpdate) error {
	var msg *messages.Message
	var err error
	if update.State == nil {
		msg, err = messages.NewMessage(update.LobbyID, messages.MessageTypeServerGameDeleted, nil)
	} else {
		msg, err = messages.NewMessage(update.LobbyID, messages.MessageTypeServerGameUpdate, game.ServerGameUpdateFromState(update.State))
	}
	if err != nil {
		return err
	}

	sent := w.broadcaster.Broadcast(update.LobbyID, msg)
	log.Trace("Broadcast %s for lobby %s to %d clients", msg.Type, update.LobbyID, sent)
	return nil
}

package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
)

// DefaultSaveInterval is how often pending snapshots are flushed
const DefaultSaveInterval = 2 * time.Second

// SnapshotStore persists game snapshots.
type SnapshotStore interface {
	SaveGameSnapshot(ctx context.Context, lobbyID string, data []byte) error
	DeleteGameSnapshot(ctx context.Context, lobbyID string) error
}

type SaveGameStateWorker struct {
	store      SnapshotStore
	updateChan <-chan types.GameUpdate
	interval   time.Duration
	// pending holds the latest unsaved state per lobby
	pending map[string]*types.GameState
}

type NewSaveGameStateWorkerOptions struct {
	Store      SnapshotStore
	UpdateChan <-chan types.GameUpdate
	Interval   time.Duration
}

// NewSaveGameStateWorker creates a new SaveGameStateWorker.
// The worker collects game updates from the game loop and periodically
// saves the latest state of each changed game to the store.
func NewSaveGameStateWorker(opts NewSaveGameStateWorkerOptions) *SaveGameStateWorker {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &SaveGameStateWorker{
		store:      opts.Store,
		updateChan: opts.UpdateChan,
		interval:   interval,
		pending:    make(map[string]*types.GameState),
	}
}

func (w *SaveGameStateWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx is already cancelled; give the final flush its own deadline
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(flushCtx)
			cancel()
			return
		case update := <-w.updateChan:
			w.handleUpdate(ctx, update)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *SaveGameStateWorker) handleUpdate(ctx context.Context, update types.GameUpdate) {
	if update.State != nil {
		w.pending[update.LobbyID] = update.State
		return
	}

	delete(w.pending, update.LobbyID)
	if err := w.store.DeleteGameSnapshot(ctx, update.LobbyID); err != nil {
		log.Error("Failed to delete game snapshot for lobby %s: %v", update.LobbyID, err)
	}
}

// flush saves every pending state. Updates already queued are applied
// first so a reset waiting in the channel is never overwritten by an older
// state.
func (w *SaveGameStateWorker) flush(ctx context.Context) {
	w.drain(ctx)
	for lobbyID, state := range w.pending {
		w.saveGameState(ctx, lobbyID, state)
		delete(w.pending, lobbyID)
	}
}

func (w *SaveGameStateWorker) drain(ctx context.Context) {
	for {
		select {
		case update := <-w.updateChan:
			w.handleUpdate(ctx, update)
		default:
			return
		}
	}
}

func (w *SaveGameStateWorker) saveGameState(ctx context.Context, lobbyID string, state *types.GameState) {
	data, err := messages.SerializeSnapshot(state)
	if err != nil {
		log.Error("Failed to serialize game state for lobby %s: %v", lobbyID, err)
		return
	}
	if err := w.store.SaveGameSnapshot(ctx, lobbyID, data); err != nil {
		log.Error("Failed to save game state for lobby %s: %v", lobbyID, err)
		return
	}
	log.Trace("Saved game state for lobby %s (%d bytes)", lobbyID, len(data))
}

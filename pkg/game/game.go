package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/queue"
)

// GameManager owns every live game. Request handlers enqueue actions; the
// game loop is the only goroutine that mutates machines, which keeps each
// game single-writer.
type GameManager struct {
	actionQueue      queue.Queue[*types.Action]
	shuffler         Shuffler
	updateChans      []chan<- types.GameUpdate
	gameLoopInterval time.Duration
	tickInterval     time.Duration
	strict           bool

	machinesLock sync.RWMutex
	machines     map[string]*Machine
	unsubscribe  map[string]func()

	// timers holds the next turn timer deadline per lobby; loop goroutine only
	timers map[string]time.Time
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	ActionQueue queue.Queue[*types.Action]
	Shuffler    Shuffler
	// UpdateChans receive every state change of every game
	UpdateChans      []chan<- types.GameUpdate
	GameLoopInterval time.Duration
	TickInterval     time.Duration
	Strict           bool
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	gm := &GameManager{
		actionQueue:      opts.ActionQueue,
		shuffler:         opts.Shuffler,
		updateChans:      opts.UpdateChans,
		gameLoopInterval: opts.GameLoopInterval,
		tickInterval:     opts.TickInterval,
		strict:           opts.Strict,
		machines:         make(map[string]*Machine),
		unsubscribe:      make(map[string]func()),
		timers:           make(map[string]time.Time),
	}
	if gm.shuffler == nil {
		gm.shuffler = NewTimeSeededShuffler()
	}
	if gm.gameLoopInterval <= 0 {
		gm.gameLoopInterval = constants.DefaultGameLoopInterval
	}
	if gm.tickInterval <= 0 {
		gm.tickInterval = constants.TickInterval
	}
	return gm
}

// Start runs the game loop until ctx is cancelled.
func (gm *GameManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.dropPending()
			return nil
		case t := <-ticker.C:
			gm.gameTick(t)
		}
	}
}

// dropPending discards actions that arrived after the last tick. Their
// submitters are waiting on request contexts that are being torn down too.
func (gm *GameManager) dropPending() {
	if n := gm.actionQueue.Size(); n > 0 {
		log.Warn("Dropping %d pending actions on shutdown", n)
		gm.actionQueue.ClearQueue()
	}
}

// Enqueue hands an action to the game loop without waiting for it.
func (gm *GameManager) Enqueue(action *types.Action) error {
	if err := gm.actionQueue.Enqueue(action); err != nil {
		return fmt.Errorf("failed to enqueue %s action: %w", action.Type, err)
	}
	return nil
}

// Submit enqueues an action and waits until the game loop has applied it.
func (gm *GameManager) Submit(ctx context.Context, action *types.Action) error {
	result := make(chan error, 1)
	action.Result = result
	if err := gm.Enqueue(action); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-result:
		return err
	}
}

// Get returns the live machine for a lobby.
func (gm *GameManager) Get(lobbyID string) (*Machine, bool) {
	gm.machinesLock.RLock()
	defer gm.machinesLock.RUnlock()
	m, ok := gm.machines[lobbyID]
	return m, ok
}

// State returns a copy of the live state of a lobby's game.
func (gm *GameManager) State(lobbyID string) (*types.GameState, bool) {
	m, ok := gm.Get(lobbyID)
	if !ok {
		return nil, false
	}
	state := m.State()
	return state, state != nil
}

// LobbyIDs lists the lobbies that have a live game.
func (gm *GameManager) LobbyIDs() []string {
	gm.machinesLock.RLock()
	defer gm.machinesLock.RUnlock()
	ids := make([]string, 0, len(gm.machines))
	for id := range gm.machines {
		ids = append(ids, id)
	}
	return ids
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick(now time.Time) {
	gm.processActions(now)
	gm.processTimers(now)
}

// processActions applies every pending action in arrival order.
func (gm *GameManager) processActions(now time.Time) {
	pendingActions, err := gm.actionQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read actions: %v", err)
		return
	}
	for _, action := range pendingActions {
		err := gm.applyAction(action, now)
		if err != nil {
			log.Debug("Action %s on game %s failed: %v", action.Type, action.LobbyID, err)
		}
		action.Reply(err)
	}
}

func (gm *GameManager) applyAction(action *types.Action, now time.Time) error {
	logger := log.With("lobby", action.LobbyID)
	switch action.Type {
	case types.ActionInitGame:
		if action.Init == nil {
			return &types.ErrValidation{Field: "init", Reason: "missing game parameters"}
		}
		m := gm.getOrCreate(action.LobbyID)
		m.InitGame(action.LobbyID, action.Init.Config, action.Init.TeamNames, action.Init.Players)
		gm.syncTimer(action.LobbyID, m, now)
		logger.Info("Game started with %d players", len(action.Init.Players))
		return nil
	case types.ActionRestore:
		if action.Snapshot == nil {
			return &types.ErrValidation{Field: "snapshot", Reason: "missing snapshot"}
		}
		if err := CheckInvariants(action.Snapshot); err != nil {
			return fmt.Errorf("refusing to restore game %s: %w", action.LobbyID, err)
		}
		if _, ok := gm.Get(action.LobbyID); ok {
			return nil
		}
		m := gm.getOrCreate(action.LobbyID)
		m.restore(action.Snapshot)
		gm.syncTimer(action.LobbyID, m, now)
		logger.Info("Game restored from snapshot")
		return nil
	}

	m, ok := gm.Get(action.LobbyID)
	if !ok {
		return &ErrGameNotFound{LobbyID: action.LobbyID}
	}

	var err error
	switch action.Type {
	case types.ActionStartTurn:
		m.StartTurn()
	case types.ActionGuessed:
		m.Guessed()
	case types.ActionSkip:
		m.Skip()
	case types.ActionEndTurn:
		m.EndTurn()
	case types.ActionConfirmTurn:
		err = m.ConfirmTurn(action.Confirmed)
	case types.ActionSkipTurn:
		m.SkipTurn()
	case types.ActionNextSegment:
		m.NextSegment()
	case types.ActionReset:
		m.Reset()
		gm.remove(action.LobbyID)
		logger.Info("Game reset")
		return nil
	default:
		return &types.ErrValidation{Field: "type", Reason: fmt.Sprintf("unknown action %q", action.Type)}
	}
	gm.syncTimer(action.LobbyID, m, now)
	return err
}

// processTimers advances the turn timer of every game whose deadline passed.
func (gm *GameManager) processTimers(now time.Time) {
	for lobbyID, deadline := range gm.timers {
		m, ok := gm.Get(lobbyID)
		if !ok {
			delete(gm.timers, lobbyID)
			continue
		}
		for !deadline.After(now) {
			m.Tick()
			deadline = deadline.Add(gm.tickInterval)
			if state := m.State(); state == nil || state.Phase != types.PhaseTurn {
				break
			}
		}
		gm.timers[lobbyID] = deadline
		gm.syncTimer(lobbyID, m, now)
	}
}

// syncTimer arms the turn timer when a turn is running and disarms it otherwise.
func (gm *GameManager) syncTimer(lobbyID string, m *Machine, now time.Time) {
	state := m.State()
	if state == nil || state.Phase != types.PhaseTurn {
		delete(gm.timers, lobbyID)
		return
	}
	if _, ok := gm.timers[lobbyID]; !ok {
		gm.timers[lobbyID] = now.Add(gm.tickInterval)
	}
}

func (gm *GameManager) getOrCreate(lobbyID string) *Machine {
	gm.machinesLock.Lock()
	defer gm.machinesLock.Unlock()
	if m, ok := gm.machines[lobbyID]; ok {
		return m
	}
	m := NewMachine(NewMachineOptions{
		Shuffler: gm.shuffler,
		Strict:   gm.strict,
		Logger:   log.With("lobby", lobbyID),
	})
	gm.unsubscribe[lobbyID] = m.Subscribe(func(state *types.GameState) {
		gm.publish(types.GameUpdate{LobbyID: lobbyID, State: state})
	})
	gm.machines[lobbyID] = m
	return m
}

func (gm *GameManager) remove(lobbyID string) {
	gm.machinesLock.Lock()
	defer gm.machinesLock.Unlock()
	if unsubscribe, ok := gm.unsubscribe[lobbyID]; ok {
		unsubscribe()
	}
	delete(gm.unsubscribe, lobbyID)
	delete(gm.machines, lobbyID)
	delete(gm.timers, lobbyID)
}

// publish forwards an update to every consumer. State updates are dropped
// when a consumer falls behind; resets block until delivered so no consumer
// keeps a game that no longer exists.
func (gm *GameManager) publish(update types.GameUpdate) {
	for _, ch := range gm.updateChans {
		if update.State == nil {
			ch <- update
			continue
		}
		select {
		case ch <- update:
		default:
			log.Warn("Dropped update for game %s: channel full", update.LobbyID)
		}
	}
}

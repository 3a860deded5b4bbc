package game

import (
	"sync"

	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
)

// Subscriber receives a copy of the state after every change. A nil state
// means the game was reset. Subscribers must not call back into the Machine
// that notified them.
type Subscriber func(state *types.GameState)

// Machine holds the single active GameState of a game and applies the
// reducers to it. Every read returns a copy; the held state is never shared.
type Machine struct {
	// mutateLock serializes mutations together with their notifications
	mutateLock sync.Mutex
	stateLock  sync.RWMutex
	state      *types.GameState

	shuffler Shuffler
	strict   bool
	logger   *log.Logger

	subscribersLock sync.Mutex
	subscribers     map[int]Subscriber
	nextSubscriber  int
}

// NewMachineOptions contains options for creating a new Machine.
type NewMachineOptions struct {
	// Shuffler orders phrase pools. Defaults to a time-seeded RandShuffler.
	Shuffler Shuffler
	// Strict panics when a mutation leaves the state inconsistent
	Strict bool
	// Logger reports invariant violations in lenient mode
	Logger *log.Logger
}

func NewMachine(opts NewMachineOptions) *Machine {
	shuffler := opts.Shuffler
	if shuffler == nil {
		shuffler = NewTimeSeededShuffler()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.With("component", "machine")
	}
	return &Machine{
		shuffler:    shuffler,
		strict:      opts.Strict,
		logger:      logger,
		subscribers: make(map[int]Subscriber),
	}
}

// Subscribe registers fn to be called after each state change and returns
// a function that removes it.
func (m *Machine) Subscribe(fn Subscriber) func() {
	m.subscribersLock.Lock()
	defer m.subscribersLock.Unlock()
	id := m.nextSubscriber
	m.nextSubscriber++
	m.subscribers[id] = fn
	return func() {
		m.subscribersLock.Lock()
		defer m.subscribersLock.Unlock()
		delete(m.subscribers, id)
	}
}

// State returns a copy of the current state, or nil before InitGame.
func (m *Machine) State() *types.GameState {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()
	return m.state.Copy()
}

// CurrentPlayer returns the player whose turn it is, derived from the
// current state on every call.
func (m *Machine) CurrentPlayer() *types.Player {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()
	player := currentPlayer(m.state)
	if player == nil {
		return nil
	}
	return player.Copy()
}

// Check runs CheckInvariants against the current state.
func (m *Machine) Check() error {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()
	return CheckInvariants(m.state)
}

func (m *Machine) InitGame(lobbyID string, config types.LobbyConfig, teamNames [2]string, players []*types.Player) {
	m.apply(func(_ *types.GameState) *types.GameState {
		return initGame(m.shuffler, lobbyID, config, teamNames, players)
	})
}

func (m *Machine) StartTurn() {
	m.apply(startTurn)
}

func (m *Machine) Guessed() {
	m.apply(guessed)
}

func (m *Machine) Skip() {
	m.apply(skip)
}

func (m *Machine) EndTurn() {
	m.apply(endTurn)
}

// ConfirmTurn scores the confirmed phrases for the current team. It returns
// an ErrValidation and leaves the state untouched if any confirmed phrase
// was not guessed during the turn.
func (m *Machine) ConfirmTurn(confirmed []string) error {
	var err error
	m.apply(func(s *types.GameState) *types.GameState {
		var next *types.GameState
		next, err = confirmTurn(s, confirmed)
		return next
	})
	return err
}

func (m *Machine) SkipTurn() {
	m.apply(skipTurn)
}

func (m *Machine) NextSegment() {
	m.apply(func(s *types.GameState) *types.GameState {
		return nextSegment(m.shuffler, s)
	})
}

func (m *Machine) Tick() {
	m.apply(tick)
}

// restore replaces the state with a copy of snapshot.
func (m *Machine) restore(snapshot *types.GameState) {
	m.apply(func(_ *types.GameState) *types.GameState {
		return snapshot.Copy()
	})
}

// Reset discards the state entirely.
func (m *Machine) Reset() {
	m.apply(func(_ *types.GameState) *types.GameState {
		return nil
	})
}

// apply runs reducer against the current state, stores the result and
// notifies subscribers if anything changed.
func (m *Machine) apply(reducer func(*types.GameState) *types.GameState) {
	m.mutateLock.Lock()
	defer m.mutateLock.Unlock()

	m.stateLock.RLock()
	prev := m.state
	m.stateLock.RUnlock()

	next := reducer(prev)
	if next == prev {
		return
	}

	if err := CheckInvariants(next); err != nil {
		if m.strict {
			panic(err)
		}
		m.logger.Error("Invariant violation: %v", err)
	}

	m.stateLock.Lock()
	m.state = next
	m.stateLock.Unlock()

	m.notify(next)
}

func (m *Machine) notify(state *types.GameState) {
	m.subscribersLock.Lock()
	subscribers := make([]Subscriber, 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subscribers = append(subscribers, fn)
	}
	m.subscribersLock.Unlock()

	for _, fn := range subscribers {
		fn(state.Copy())
	}
}

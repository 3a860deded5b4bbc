package game

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine() *Machine {
	return NewMachine(NewMachineOptions{
		Shuffler: identityShuffler{},
		Strict:   true,
	})
}

func TestMachine_beforeInit(t *testing.T) {
	m := newTestMachine()
	assert.Nil(t, m.State())
	assert.Nil(t, m.CurrentPlayer())
	assert.NoError(t, m.Check())

	m.StartTurn()
	m.Guessed()
	m.Tick()
	assert.NoError(t, m.ConfirmTurn([]string{"a"}))
	assert.Nil(t, m.State())
}

func TestMachine_turn(t *testing.T) {
	m := newTestMachine()
	m.InitGame("l1", types.LobbyConfig{TurnTime: 3}, [2]string{"Red", "Blue"}, testPlayers("a", "b", "c", "d"))

	player := m.CurrentPlayer()
	require.NotNil(t, player)
	assert.Equal(t, "ana", player.Name)

	m.StartTurn()
	m.Guessed()
	m.Skip()
	m.EndTurn()
	require.NoError(t, m.ConfirmTurn([]string{"a"}))

	state := m.State()
	assert.Equal(t, [2]int{1, 0}, state.Scores)
	assert.Equal(t, types.PhasePreTurn, state.Phase)
	assert.Equal(t, types.TeamB, state.CurrentTeam)
	assert.Equal(t, "bo", m.CurrentPlayer().Name)

	m.SkipTurn()
	assert.Equal(t, "cy", m.CurrentPlayer().Name)
	assert.NoError(t, m.Check())
}

func TestMachine_stateIsACopy(t *testing.T) {
	m := newTestMachine()
	m.InitGame("l1", types.LobbyConfig{TurnTime: 3}, [2]string{}, testPlayers("a", "b"))

	state := m.State()
	state.RemainingPhrases[0] = "tampered"
	state.Scores[0] = 99

	fresh := m.State()
	assert.Equal(t, []string{"a", "b"}, fresh.RemainingPhrases)
	assert.Equal(t, 0, fresh.Scores[0])
}

func TestMachine_Subscribe(t *testing.T) {
	m := newTestMachine()

	var received []*types.GameState
	unsubscribe := m.Subscribe(func(state *types.GameState) {
		received = append(received, state)
	})

	m.InitGame("l1", types.LobbyConfig{TurnTime: 3}, [2]string{}, testPlayers("a", "b"))
	m.Guessed() // no phrase showing
	m.StartTurn()
	require.Len(t, received, 2)
	assert.Equal(t, types.PhasePreTurn, received[0].Phase)
	assert.Equal(t, types.PhaseTurn, received[1].Phase)

	received[1].Phase = types.PhaseSegmentEnd
	assert.Equal(t, types.PhaseTurn, m.State().Phase)

	unsubscribe()
	m.Guessed()
	assert.Len(t, received, 2)
}

func TestMachine_multipleSubscribers(t *testing.T) {
	m := newTestMachine()
	counts := [2]int{}
	m.Subscribe(func(*types.GameState) { counts[0]++ })
	m.Subscribe(func(*types.GameState) { counts[1]++ })

	m.InitGame("l1", types.LobbyConfig{TurnTime: 3}, [2]string{}, testPlayers("a"))
	m.Reset()
	assert.Equal(t, [2]int{2, 2}, counts)
	assert.Nil(t, m.State())
}

func TestMachine_ConfirmTurnRejected(t *testing.T) {
	m := newTestMachine()
	notified := 0
	m.Subscribe(func(*types.GameState) { notified++ })

	m.InitGame("l1", types.LobbyConfig{TurnTime: 3}, [2]string{}, testPlayers("a", "b"))
	m.StartTurn()
	m.EndTurn()
	before := notified

	err := m.ConfirmTurn([]string{"b"})
	assert.True(t, types.IsValidation(err))
	assert.Equal(t, before, notified)
	assert.Equal(t, types.PhasePostTurn, m.State().Phase)
}

func TestMachine_NextSegment(t *testing.T) {
	m := newTestMachine()
	m.InitGame("l1", types.LobbyConfig{TurnTime: 3}, [2]string{}, testPlayers("a"))
	m.StartTurn()
	m.Guessed()
	require.NoError(t, m.ConfirmTurn([]string{"a"}))
	require.Equal(t, types.PhaseSegmentEnd, m.State().Phase)

	m.NextSegment()
	state := m.State()
	assert.Equal(t, types.SegmentOneWord, state.Segment)
	assert.Equal(t, []string{"a"}, state.RemainingPhrases)
}

func TestMachine_strict(t *testing.T) {
	broken := newTestState(3, "a")
	broken.RemainingPhrases = nil

	strict := newTestMachine()
	assert.Panics(t, func() {
		strict.restore(broken)
	})

	buf := &bytes.Buffer{}
	lenient := NewMachine(NewMachineOptions{
		Shuffler: identityShuffler{},
		Logger:   log.New(buf, "", 0, log.LogLevelError).With("lobby", "l1"),
	})
	assert.NotPanics(t, func() {
		lenient.restore(broken)
	})
	assert.True(t, types.IsInvariantViolation(lenient.Check()))

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "l1", entry["lobby"])
	assert.Contains(t, entry["msg"], "Invariant violation")
}

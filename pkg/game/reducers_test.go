package game

import (
	"math/rand"
	"testing"

	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityShuffler keeps phrases in roster order.
type identityShuffler struct{}

func (identityShuffler) Shuffle([]string) {}

func testPlayers(phrases ...string) []*types.Player {
	names := []string{"ana", "bo", "cy", "di", "ed", "fa"}
	players := make([]*types.Player, 0, len(phrases))
	for i, phrase := range phrases {
		players = append(players, &types.Player{
			Name:    names[i%len(names)],
			Phrases: []string{phrase},
			Team:    i % 2,
		})
	}
	return players
}

func newTestState(turnTime int, phrases ...string) *types.GameState {
	return initGame(identityShuffler{}, "lobby-1", types.LobbyConfig{TurnTime: turnTime, PhrasesPerPlayer: 1}, [2]string{"Red", "Blue"}, testPlayers(phrases...))
}

func phrase(s string) *string {
	return &s
}

func TestInitGame(t *testing.T) {
	s := newTestState(30, "a", "b", "c", "d")

	assert.Equal(t, types.PhasePreTurn, s.Phase)
	assert.Equal(t, types.SegmentDescribe, s.Segment)
	assert.Equal(t, [2]int{0, 0}, s.Scores)
	assert.Equal(t, types.TeamA, s.CurrentTeam)
	assert.Equal(t, [2]int{0, 0}, s.CurrentPlayerIndex)
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.RemainingPhrases)
	assert.Nil(t, s.CurrentPhrase)
	assert.Equal(t, 30, s.TimeLeft)
	assert.NoError(t, CheckInvariants(s))
}

func TestInitGame_copiesRoster(t *testing.T) {
	players := testPlayers("a", "b")
	s := initGame(identityShuffler{}, "lobby-1", types.LobbyConfig{TurnTime: 10}, [2]string{}, players)

	players[0].Phrases[0] = "mutated"
	assert.Equal(t, "a", s.Players[0].Phrases[0])
}

func TestInitGame_emptyRoster(t *testing.T) {
	s := newTestState(10)
	assert.Empty(t, s.RemainingPhrases)
	assert.Nil(t, currentPlayer(s))

	s = startTurn(s)
	assert.Equal(t, types.PhaseTurn, s.Phase)
	assert.Nil(t, s.CurrentPhrase)
	assert.Same(t, s, guessed(s))
	assert.Same(t, s, skip(s))
	assert.NoError(t, CheckInvariants(s))
}

func TestCurrentPlayer(t *testing.T) {
	tests := []struct {
		name  string
		state *types.GameState
		want  string
	}{
		{
			name:  "nil state",
			state: nil,
			want:  "",
		},
		{
			name: "first player of team 0",
			state: func() *types.GameState {
				return newTestState(10, "a", "b", "c", "d")
			}(),
			want: "ana",
		},
		{
			name: "index wraps modulo team size",
			state: func() *types.GameState {
				s := newTestState(10, "a", "b", "c", "d")
				s.CurrentPlayerIndex = [2]int{3, 0}
				return s
			}(),
			want: "cy",
		},
		{
			name: "team 1 uses its own index",
			state: func() *types.GameState {
				s := newTestState(10, "a", "b", "c", "d")
				s.CurrentTeam = types.TeamB
				s.CurrentPlayerIndex = [2]int{0, 1}
				return s
			}(),
			want: "di",
		},
		{
			name: "team without players",
			state: func() *types.GameState {
				s := newTestState(10, "a")
				s.CurrentTeam = types.TeamB
				return s
			}(),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := currentPlayer(tt.state)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestStartTurn(t *testing.T) {
	s := newTestState(5, "a", "b", "c")
	s.GuessedThisTurn = []string{}
	s.TimeLeft = 1

	next := startTurn(s)
	assert.Equal(t, types.PhaseTurn, next.Phase)
	assert.Equal(t, 5, next.TimeLeft)
	assert.Equal(t, phrase("a"), next.CurrentPhrase)
	assert.Equal(t, []string{"b", "c"}, next.RemainingPhrases)

	// the input is left alone
	assert.Equal(t, types.PhasePreTurn, s.Phase)
	assert.Equal(t, []string{"a", "b", "c"}, s.RemainingPhrases)

	// only applies from preTurn
	assert.Same(t, next, startTurn(next))
}

// Scenario: one team guesses the whole pool in a single turn.
func TestScenario_guessWholePool(t *testing.T) {
	s := newTestState(5, "p1", "p2", "p3")

	s = startTurn(s)
	assert.Equal(t, phrase("p1"), s.CurrentPhrase)

	s = guessed(s)
	assert.Equal(t, phrase("p2"), s.CurrentPhrase)
	s = guessed(s)
	assert.Equal(t, phrase("p3"), s.CurrentPhrase)
	s = guessed(s)

	assert.Equal(t, types.PhasePostTurn, s.Phase)
	assert.Nil(t, s.CurrentPhrase)
	assert.Len(t, s.GuessedThisTurn, 3)

	s, err := confirmTurn(s, []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Scores[0])
	assert.Equal(t, types.PhaseSegmentEnd, s.Phase)
	assert.Empty(t, s.RemainingPhrases)
	assert.Empty(t, s.GuessedThisTurn)
	assert.NoError(t, CheckInvariants(s))
}

func TestScenario_fourPhrasesTwoPlayersPerTeam(t *testing.T) {
	s := newTestState(5, "p1", "p2", "p3", "p4")

	s = startTurn(s)
	for i := 0; i < 3; i++ {
		s = guessed(s)
	}
	assert.Equal(t, types.PhaseTurn, s.Phase)
	assert.Equal(t, phrase("p4"), s.CurrentPhrase)

	s = guessed(s)
	assert.Equal(t, types.PhasePostTurn, s.Phase)
	assert.Len(t, s.GuessedThisTurn, 4)

	s, err := confirmTurn(s, s.GuessedThisTurn)
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 0}, s.Scores)
	assert.Equal(t, types.PhaseSegmentEnd, s.Phase)
}

func TestScenario_skipTwoPhrasePool(t *testing.T) {
	s := newTestState(5, "A", "B")
	s = startTurn(s)
	require.Equal(t, phrase("A"), s.CurrentPhrase)

	s = skip(s)
	assert.Equal(t, phrase("B"), s.CurrentPhrase)
	assert.Equal(t, []string{"A"}, s.RemainingPhrases)
	assert.Equal(t, []string{"A"}, s.SkippedThisTurn)
	assert.NoError(t, CheckInvariants(s))
}

func TestSkip_singlePhrasePool(t *testing.T) {
	s := newTestState(5, "A")
	s = startTurn(s)

	s = skip(s)
	assert.Equal(t, phrase("A"), s.CurrentPhrase)
	assert.Empty(t, s.RemainingPhrases)
	assert.Equal(t, []string{"A"}, s.SkippedThisTurn)
}

func TestSkip_preservesPoolSize(t *testing.T) {
	s := startTurn(newTestState(5, "a", "b", "c", "d", "e"))
	before := len(s.RemainingPhrases)
	skipped := *s.CurrentPhrase

	s = skip(s)
	assert.Len(t, s.RemainingPhrases, before)
	assert.Equal(t, skipped, s.RemainingPhrases[len(s.RemainingPhrases)-1])
	assert.NotEqual(t, skipped, *s.CurrentPhrase)
}

func TestScenario_timerRunsOut(t *testing.T) {
	s := startTurn(newTestState(5, "a", "b", "c"))
	original := *s.CurrentPhrase

	for i := 0; i < 5; i++ {
		s = tick(s)
	}

	assert.Equal(t, types.PhasePostTurn, s.Phase)
	assert.Equal(t, 0, s.TimeLeft)
	assert.Nil(t, s.CurrentPhrase)
	assert.Equal(t, original, s.RemainingPhrases[0])
	assert.NoError(t, CheckInvariants(s))
}

func TestTick(t *testing.T) {
	tests := []struct {
		name      string
		state     *types.GameState
		wantSame  bool
		wantPhase types.Phase
		wantTime  int
	}{
		{
			name:     "nil state",
			state:    nil,
			wantSame: true,
		},
		{
			name:     "preTurn is a no-op",
			state:    newTestState(5, "a"),
			wantSame: true,
		},
		{
			name: "postTurn is a no-op",
			state: func() *types.GameState {
				return endTurn(startTurn(newTestState(5, "a")))
			}(),
			wantSame: true,
		},
		{
			name:      "turn counts down",
			state:     startTurn(newTestState(5, "a")),
			wantPhase: types.PhaseTurn,
			wantTime:  4,
		},
		{
			name: "overdrawn timer clamps to zero",
			state: func() *types.GameState {
				s := startTurn(newTestState(5, "a"))
				s.TimeLeft = 0
				return s
			}(),
			wantPhase: types.PhasePostTurn,
			wantTime:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tick(tt.state)
			if tt.wantSame {
				assert.Same(t, tt.state, got)
				return
			}
			assert.Equal(t, tt.wantPhase, got.Phase)
			assert.Equal(t, tt.wantTime, got.TimeLeft)
		})
	}
}

func TestEndTurn(t *testing.T) {
	s := startTurn(newTestState(5, "a", "b", "c"))
	s = guessed(s)
	require.Equal(t, phrase("b"), s.CurrentPhrase)

	s = endTurn(s)
	assert.Equal(t, types.PhasePostTurn, s.Phase)
	assert.Nil(t, s.CurrentPhrase)
	assert.Equal(t, []string{"b", "c"}, s.RemainingPhrases)
	assert.Equal(t, []string{"a"}, s.GuessedThisTurn)

	assert.Same(t, s, endTurn(s))
}

func TestConfirmTurn(t *testing.T) {
	// a, b and c guessed, d still in the pool
	played := func() *types.GameState {
		s := startTurn(newTestState(5, "a", "b", "c", "d"))
		s = guessed(guessed(guessed(s)))
		return endTurn(s)
	}

	t.Run("partial confirmation returns the rest to the pool head", func(t *testing.T) {
		s := played()
		next, err := confirmTurn(s, []string{"b"})
		require.NoError(t, err)

		assert.Equal(t, [2]int{1, 0}, next.Scores)
		assert.Equal(t, []string{"a", "c", "d"}, next.RemainingPhrases)
		assert.Equal(t, types.PhasePreTurn, next.Phase)
		assert.Equal(t, types.TeamB, next.CurrentTeam)
		assert.Equal(t, [2]int{1, 0}, next.CurrentPlayerIndex)
		assert.Empty(t, next.GuessedThisTurn)
		assert.Empty(t, next.SkippedThisTurn)
		assert.Equal(t, []string{"b"}, next.ScoredThisSegment)
		assert.NoError(t, CheckInvariants(next))
	})

	t.Run("pool never grows beyond unconfirmed plus remaining", func(t *testing.T) {
		s := played()
		next, err := confirmTurn(s, []string{"a", "c"})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(next.RemainingPhrases), len(s.RemainingPhrases)+1)
		assert.NotContains(t, next.RemainingPhrases, "a")
		assert.NotContains(t, next.RemainingPhrases, "c")
	})

	t.Run("nothing confirmed", func(t *testing.T) {
		s := played()
		next, err := confirmTurn(s, nil)
		require.NoError(t, err)
		assert.Equal(t, [2]int{0, 0}, next.Scores)
		assert.Equal(t, []string{"a", "b", "c", "d"}, next.RemainingPhrases)
	})

	t.Run("unknown phrase is rejected", func(t *testing.T) {
		s := played()
		next, err := confirmTurn(s, []string{"a", "d"})
		assert.True(t, types.IsValidation(err))
		assert.Same(t, s, next)
	})

	t.Run("phrase confirmed twice is rejected", func(t *testing.T) {
		s := played()
		_, err := confirmTurn(s, []string{"a", "a"})
		assert.True(t, types.IsValidation(err))
	})

	t.Run("only applies in postTurn", func(t *testing.T) {
		s := startTurn(newTestState(5, "a"))
		next, err := confirmTurn(s, nil)
		assert.NoError(t, err)
		assert.Same(t, s, next)
	})
}

func TestConfirmTurn_duplicatePhrases(t *testing.T) {
	s := startTurn(newTestState(5, "same", "same", "other"))
	s = guessed(guessed(s))
	s = endTurn(s)
	require.Equal(t, []string{"same", "same"}, s.GuessedThisTurn)

	next, err := confirmTurn(s, []string{"same"})
	require.NoError(t, err)
	assert.Equal(t, []string{"same", "other"}, next.RemainingPhrases)
	assert.NoError(t, CheckInvariants(next))
}

func TestSkipTurn(t *testing.T) {
	s := newTestState(5, "a", "b")
	next := skipTurn(s)

	assert.Equal(t, types.TeamB, next.CurrentTeam)
	assert.Equal(t, [2]int{1, 0}, next.CurrentPlayerIndex)
	assert.Equal(t, s.RemainingPhrases, next.RemainingPhrases)
	assert.Equal(t, s.Scores, next.Scores)
	assert.Equal(t, types.PhasePreTurn, next.Phase)

	running := startTurn(s)
	assert.Same(t, running, skipTurn(running))

	ended := endTurn(running)
	require.Equal(t, types.PhasePostTurn, ended.Phase)
	assert.Same(t, ended, skipTurn(ended))
}

func TestNextSegment(t *testing.T) {
	s := startTurn(newTestState(5, "a", "b"))
	s = guessed(guessed(s))
	s, err := confirmTurn(s, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, types.PhaseSegmentEnd, s.Phase)

	next := nextSegment(identityShuffler{}, s)
	assert.Equal(t, types.SegmentOneWord, next.Segment)
	assert.Equal(t, []string{"a", "b"}, next.RemainingPhrases)
	assert.Equal(t, types.PhasePreTurn, next.Phase)
	assert.Equal(t, [2]int{2, 0}, next.Scores)
	assert.Equal(t, s.TeamNames, next.TeamNames)
	assert.Equal(t, s.CurrentPlayerIndex, next.CurrentPlayerIndex)
	assert.Empty(t, next.ScoredThisSegment)
	assert.NoError(t, CheckInvariants(next))

	// not at the end of a segment
	assert.Same(t, next, nextSegment(identityShuffler{}, next))
	inTurn := startTurn(next)
	assert.Same(t, inTurn, nextSegment(identityShuffler{}, inTurn))

	// terminal after the last segment
	last := s.Copy()
	last.Segment = constants.LastSegment
	assert.Same(t, last, nextSegment(identityShuffler{}, last))
	assert.True(t, Finished(last))
}

func TestWinner(t *testing.T) {
	s := newTestState(5, "a")
	assert.Equal(t, -1, Winner(s))
	s.Scores = [2]int{1, 3}
	assert.Equal(t, types.TeamB, Winner(s))
	s.Scores = [2]int{4, 3}
	assert.Equal(t, types.TeamA, Winner(s))
	assert.Equal(t, -1, Winner(nil))
}

// TestFullGame plays random games to completion and checks the accounting
// after every step.
func TestFullGame(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		phrases := []string{"a", "b", "c", "d", "e", "f", "g", "h", "a"}
		s := initGame(NewRandShuffler(seed), "lobby", types.LobbyConfig{TurnTime: 4}, [2]string{}, testPlayers(phrases...))
		require.NoError(t, CheckInvariants(s))

		for segment := 0; segment < constants.SegmentCount; segment++ {
			startScore := s.Scores[0] + s.Scores[1]
			for steps := 0; s.Phase != types.PhaseSegmentEnd; steps++ {
				require.Less(t, steps, 10000, "segment did not finish")
				switch s.Phase {
				case types.PhasePreTurn:
					if rng.Intn(10) == 0 {
						s = skipTurn(s)
					} else {
						s = startTurn(s)
					}
				case types.PhaseTurn:
					switch rng.Intn(4) {
					case 0, 1:
						s = guessed(s)
					case 2:
						s = skip(s)
					default:
						s = tick(s)
					}
				case types.PhasePostTurn:
					confirmed := []string{}
					for _, p := range s.GuessedThisTurn {
						if rng.Intn(4) != 0 {
							confirmed = append(confirmed, p)
						}
					}
					var err error
					prevScores := s.Scores
					s, err = confirmTurn(s, confirmed)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, s.Scores[0], prevScores[0])
					assert.GreaterOrEqual(t, s.Scores[1], prevScores[1])
				}
				require.NoError(t, CheckInvariants(s))
			}
			assert.Equal(t, len(phrases), s.Scores[0]+s.Scores[1]-startScore)
			s = nextSegment(NewRandShuffler(seed), s)
		}
		assert.True(t, Finished(s))
		assert.Equal(t, constants.SegmentCount*len(phrases), s.Scores[0]+s.Scores[1])
	}
}

func TestRandShuffler(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e", "f"}

	first := append([]string{}, input...)
	NewRandShuffler(42).Shuffle(first)
	second := append([]string{}, input...)
	NewRandShuffler(42).Shuffle(second)

	assert.Equal(t, first, second)
	assert.ElementsMatch(t, input, first)
}

func TestRandShuffler_uniform(t *testing.T) {
	shuffler := NewRandShuffler(7)
	counts := map[string]int{}
	for i := 0; i < 6000; i++ {
		p := []string{"a", "b", "c"}
		shuffler.Shuffle(p)
		counts[p[0]+p[1]+p[2]]++
	}
	assert.Len(t, counts, 6)
	for perm, n := range counts {
		assert.InDelta(t, 1000, n, 150, perm)
	}
}

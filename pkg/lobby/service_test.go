package lobby

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	mocks "github.com/cbodonnell/fishbowl/mocks/github.com/cbodonnell/fishbowl/pkg/repositories"
	"github.com/cbodonnell/fishbowl/pkg/config"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/repositories"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = types.LobbyConfig{TurnTime: 60, PhrasesPerPlayer: 2}

func newMemoryService(t *testing.T) *Service {
	t.Helper()
	s := NewService(NewServiceOptions{})
	require.NoError(t, s.Init(context.Background(), &config.Credentials{DatabaseURL: "memory://"}))
	return s
}

func TestService_unconfigured(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewServiceOptions{})
	assert.False(t, s.Configured())

	_, err := s.CreateLobby(ctx, testConfig)
	assert.True(t, repositories.IsConfiguration(err))

	_, err = s.GetLobby(ctx, uuid.NewString())
	assert.True(t, repositories.IsConfiguration(err))

	err = s.SubmitPlayer(ctx, uuid.NewString(), "ana", []string{"a", "b"})
	assert.True(t, repositories.IsConfiguration(err))

	_, err = s.GetSubmissions(ctx, uuid.NewString())
	assert.True(t, repositories.IsConfiguration(err))

	_, err = s.LoadGameSnapshot(ctx, uuid.NewString())
	assert.True(t, repositories.IsConfiguration(err))

	assert.NotPanics(t, func() {
		s.DeleteLobby(ctx, uuid.NewString())
	})
}

func TestService_lobbyFlow(t *testing.T) {
	ctx := context.Background()
	s := newMemoryService(t)

	lobbyID, err := s.CreateLobby(ctx, testConfig)
	require.NoError(t, err)
	_, err = uuid.Parse(lobbyID)
	require.NoError(t, err)

	lobby, err := s.GetLobby(ctx, lobbyID)
	require.NoError(t, err)
	assert.Equal(t, lobbyID, lobby.ID)
	assert.Equal(t, testConfig, lobby.Config)

	require.NoError(t, s.SubmitPlayer(ctx, lobbyID, "  ana ", []string{" one", "two "}))
	require.NoError(t, s.SubmitPlayer(ctx, lobbyID, "bo", []string{"three", "four"}))

	submissions, err := s.GetSubmissions(ctx, lobbyID)
	require.NoError(t, err)
	assert.Equal(t, []types.Submission{
		{PlayerName: "ana", Phrases: []string{"one", "two"}},
		{PlayerName: "bo", Phrases: []string{"three", "four"}},
	}, submissions)

	s.DeleteLobby(ctx, lobbyID)
	_, err = s.GetLobby(ctx, lobbyID)
	assert.True(t, repositories.IsNotFound(err))

	// deleting again is silent
	s.DeleteLobby(ctx, lobbyID)
}

func TestService_notFound(t *testing.T) {
	ctx := context.Background()
	s := newMemoryService(t)

	tests := []struct {
		name    string
		lobbyID string
	}{
		{name: "unknown lobby", lobbyID: uuid.NewString()},
		{name: "malformed id", lobbyID: "not-a-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.GetLobby(ctx, tt.lobbyID)
			assert.True(t, repositories.IsNotFound(err))

			err = s.SubmitPlayer(ctx, tt.lobbyID, "ana", []string{"a", "b"})
			assert.True(t, repositories.IsNotFound(err))

			_, err = s.GetSubmissions(ctx, tt.lobbyID)
			assert.True(t, repositories.IsNotFound(err))

			_, err = s.LoadGameSnapshot(ctx, tt.lobbyID)
			assert.True(t, repositories.IsNotFound(err))
		})
	}
}

func TestService_CreateLobbyValidation(t *testing.T) {
	s := newMemoryService(t)
	tests := []struct {
		name   string
		config types.LobbyConfig
	}{
		{name: "zero turn time", config: types.LobbyConfig{TurnTime: 0, PhrasesPerPlayer: 3}},
		{name: "turn time too long", config: types.LobbyConfig{TurnTime: 601, PhrasesPerPlayer: 3}},
		{name: "no phrases", config: types.LobbyConfig{TurnTime: 30, PhrasesPerPlayer: 0}},
		{name: "too many phrases", config: types.LobbyConfig{TurnTime: 30, PhrasesPerPlayer: 21}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateLobby(context.Background(), tt.config)
			assert.True(t, types.IsValidation(err), "unexpected error %v", err)
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		player  string
		phrases []string
		want    types.Submission
		wantErr bool
	}{
		{
			name:    "valid",
			player:  " ana ",
			phrases: []string{" a ", "b"},
			want:    types.Submission{PlayerName: "ana", Phrases: []string{"a", "b"}},
		},
		{
			name:    "empty name",
			player:  "  ",
			phrases: []string{"a", "b"},
			wantErr: true,
		},
		{
			name:    "name too long",
			player:  strings.Repeat("x", 33),
			phrases: []string{"a", "b"},
			wantErr: true,
		},
		{
			name:    "too few phrases",
			player:  "ana",
			phrases: []string{"a"},
			wantErr: true,
		},
		{
			name:    "too many phrases",
			player:  "ana",
			phrases: []string{"a", "b", "c"},
			wantErr: true,
		},
		{
			name:    "blank phrase",
			player:  "ana",
			phrases: []string{"a", " "},
			wantErr: true,
		},
		{
			name:    "phrase too long",
			player:  "ana",
			phrases: []string{"a", strings.Repeat("y", 101)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSubmission(testConfig, tt.player, tt.phrases)
			if tt.wantErr {
				assert.True(t, types.IsValidation(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_backendErrors(t *testing.T) {
	ctx := context.Background()
	lobbyID := uuid.NewString()

	repo := mocks.NewRepository(t)
	repo.EXPECT().CreateLobby(mock.Anything, mock.Anything).Return(assert.AnError).Once()
	repo.EXPECT().GetLobby(mock.Anything, lobbyID).Return(nil, assert.AnError).Once()
	repo.EXPECT().ListSubmissions(mock.Anything, lobbyID).Return(nil, &repositories.ErrNotFound{Resource: "lobby", ID: lobbyID}).Once()
	repo.EXPECT().DeleteLobby(mock.Anything, lobbyID).Return(assert.AnError).Once()

	s := NewService(NewServiceOptions{Repository: repo})
	require.True(t, s.Configured())

	_, err := s.CreateLobby(ctx, testConfig)
	assert.True(t, repositories.IsBackend(err))
	assert.ErrorIs(t, err, assert.AnError)

	_, err = s.GetLobby(ctx, lobbyID)
	assert.True(t, repositories.IsBackend(err))

	_, err = s.GetSubmissions(ctx, lobbyID)
	assert.True(t, repositories.IsNotFound(err))
	assert.False(t, repositories.IsBackend(err))

	assert.NotPanics(t, func() {
		s.DeleteLobby(ctx, lobbyID)
	})
}

func TestService_SubmitPlayerStoresTrimmed(t *testing.T) {
	ctx := context.Background()
	lobbyID := uuid.NewString()

	repo := mocks.NewRepository(t)
	repo.EXPECT().GetLobby(mock.Anything, lobbyID).Return(&models.Lobby{ID: lobbyID, Config: testConfig}, nil).Once()
	repo.EXPECT().SaveSubmission(mock.Anything, lobbyID, types.Submission{PlayerName: "ana", Phrases: []string{"a", "b"}}).Return(nil).Once()

	s := NewService(NewServiceOptions{Repository: repo})
	require.NoError(t, s.SubmitPlayer(ctx, lobbyID, " ana", []string{"a ", " b"}))
}

func TestService_lifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	store := config.NewFileStore(path)
	t.Setenv(config.EnvDatabaseURL, "")

	s, err := NewServiceFromStore(ctx, NewServiceOptions{Store: store})
	require.NoError(t, err)
	assert.False(t, s.Configured())

	require.NoError(t, s.Init(ctx, &config.Credentials{DatabaseURL: "memory://"}))
	assert.True(t, s.Configured())

	// credentials survive a restart
	restarted, err := NewServiceFromStore(ctx, NewServiceOptions{Store: config.NewFileStore(path)})
	require.NoError(t, err)
	assert.True(t, restarted.Configured())

	require.NoError(t, s.Teardown(ctx))
	assert.False(t, s.Configured())
	_, err = s.CreateLobby(ctx, testConfig)
	assert.True(t, repositories.IsConfiguration(err))

	afterTeardown, err := NewServiceFromStore(ctx, NewServiceOptions{Store: config.NewFileStore(path)})
	require.NoError(t, err)
	assert.False(t, afterTeardown.Configured())
}

func TestService_InitErrors(t *testing.T) {
	ctx := context.Background()
	store := config.NewMemoryStore()
	s := NewService(NewServiceOptions{Store: store})

	err := s.Init(ctx, &config.Credentials{})
	assert.True(t, repositories.IsConfiguration(err))

	err = s.Init(ctx, &config.Credentials{DatabaseURL: "carrier-pigeon://coop"})
	assert.True(t, repositories.IsConfiguration(err))

	err = s.Init(ctx, &config.Credentials{DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "x.db")})
	assert.True(t, repositories.IsBackend(err), "unexpected error %v", err)

	assert.False(t, s.Configured())
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestNewServiceFromStore_environment(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "memory://")
	s, err := NewServiceFromStore(context.Background(), NewServiceOptions{})
	require.NoError(t, err)
	assert.True(t, s.Configured())
}

package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gametypes "github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMigrationsDir = "../../migrations"

func newTestLobby() *models.Lobby {
	return &models.Lobby{
		ID:        uuid.NewString(),
		Config:    gametypes.LobbyConfig{TurnTime: 45, PhrasesPerPlayer: 2},
		CreatedAt: time.UnixMilli(time.Now().UnixMilli()).UTC(),
	}
}

// testRepository runs the behaviour every Repository implementation shares.
func testRepository(t *testing.T, repo Repository) {
	ctx := context.Background()

	t.Run("lobby lifecycle", func(t *testing.T) {
		lobby := newTestLobby()
		require.NoError(t, repo.CreateLobby(ctx, lobby))

		got, err := repo.GetLobby(ctx, lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, lobby.ID, got.ID)
		assert.Equal(t, lobby.Config, got.Config)
		assert.WithinDuration(t, lobby.CreatedAt, got.CreatedAt, time.Second)

		require.NoError(t, repo.DeleteLobby(ctx, lobby.ID))
		_, err = repo.GetLobby(ctx, lobby.ID)
		assert.True(t, IsNotFound(err))
	})

	t.Run("missing lobby", func(t *testing.T) {
		id := uuid.NewString()
		_, err := repo.GetLobby(ctx, id)
		assert.True(t, IsNotFound(err))
		assert.True(t, IsNotFound(repo.DeleteLobby(ctx, id)))
		assert.True(t, IsNotFound(repo.SaveSubmission(ctx, id, gametypes.Submission{PlayerName: "ana"})))
		_, err = repo.ListSubmissions(ctx, id)
		assert.True(t, IsNotFound(err))
		assert.True(t, IsNotFound(repo.SaveGameSnapshot(ctx, id, []byte("x"))))
	})

	t.Run("submissions", func(t *testing.T) {
		lobby := newTestLobby()
		require.NoError(t, repo.CreateLobby(ctx, lobby))

		empty, err := repo.ListSubmissions(ctx, lobby.ID)
		require.NoError(t, err)
		assert.Empty(t, empty)

		require.NoError(t, repo.SaveSubmission(ctx, lobby.ID, gametypes.Submission{PlayerName: "ana", Phrases: []string{"a1", "a2"}}))
		require.NoError(t, repo.SaveSubmission(ctx, lobby.ID, gametypes.Submission{PlayerName: "bo", Phrases: []string{"b1", "b2"}}))
		require.NoError(t, repo.SaveSubmission(ctx, lobby.ID, gametypes.Submission{PlayerName: "ana", Phrases: []string{"a3", "a4"}}))

		submissions, err := repo.ListSubmissions(ctx, lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, []gametypes.Submission{
			{PlayerName: "ana", Phrases: []string{"a3", "a4"}},
			{PlayerName: "bo", Phrases: []string{"b1", "b2"}},
		}, submissions)

		require.NoError(t, repo.DeleteLobby(ctx, lobby.ID))
	})

	t.Run("game snapshots", func(t *testing.T) {
		lobby := newTestLobby()
		require.NoError(t, repo.CreateLobby(ctx, lobby))

		_, err := repo.LoadGameSnapshot(ctx, lobby.ID)
		assert.True(t, IsNotFound(err))

		require.NoError(t, repo.SaveGameSnapshot(ctx, lobby.ID, []byte("first")))
		require.NoError(t, repo.SaveGameSnapshot(ctx, lobby.ID, []byte("second")))
		data, err := repo.LoadGameSnapshot(ctx, lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)

		require.NoError(t, repo.DeleteGameSnapshot(ctx, lobby.ID))
		_, err = repo.LoadGameSnapshot(ctx, lobby.ID)
		assert.True(t, IsNotFound(err))

		// deleting the lobby takes its snapshot along
		require.NoError(t, repo.SaveGameSnapshot(ctx, lobby.ID, []byte("third")))
		require.NoError(t, repo.DeleteLobby(ctx, lobby.ID))
		_, err = repo.LoadGameSnapshot(ctx, lobby.ID)
		assert.True(t, IsNotFound(err))
	})
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewMemoryRepository())
}

func TestMemoryRepository_returnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	lobby := newTestLobby()
	require.NoError(t, repo.CreateLobby(ctx, lobby))

	phrases := []string{"a1"}
	require.NoError(t, repo.SaveSubmission(ctx, lobby.ID, gametypes.Submission{PlayerName: "ana", Phrases: phrases}))
	phrases[0] = "changed"

	submissions, err := repo.ListSubmissions(ctx, lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, "a1", submissions[0].Phrases[0])

	got, err := repo.GetLobby(ctx, lobby.ID)
	require.NoError(t, err)
	got.Config.TurnTime = 1
	again, err := repo.GetLobby(ctx, lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, again.Config.TurnTime)
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fishbowl.db")
	repo, err := NewSQLiteRepository(ctx, path, filepath.Join(testMigrationsDir, "sqlite"))
	require.NoError(t, err)
	defer repo.Close(ctx)

	testRepository(t, repo)
}

func TestSQLiteRepository_reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fishbowl.db")
	migrations := filepath.Join(testMigrationsDir, "sqlite")

	repo, err := NewSQLiteRepository(ctx, path, migrations)
	require.NoError(t, err)
	lobby := newTestLobby()
	require.NoError(t, repo.CreateLobby(ctx, lobby))
	require.NoError(t, repo.Close(ctx))

	repo, err = NewSQLiteRepository(ctx, path, migrations)
	require.NoError(t, err)
	defer repo.Close(ctx)
	got, err := repo.GetLobby(ctx, lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, lobby.Config, got.Config)
}

func TestSQLiteRepository_missingMigrations(t *testing.T) {
	_, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "x.db"), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNewRepository(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "fishbowl.db")

	tests := []struct {
		name     string
		url      string
		wantType Repository
		wantErr  func(error) bool
	}{
		{
			name:     "memory",
			url:      "memory://",
			wantType: &MemoryRepository{},
		},
		{
			name:     "sqlite",
			url:      "sqlite://" + dbPath,
			wantType: &SQLiteRepository{},
		},
		{
			name:    "empty",
			url:     "",
			wantErr: IsConfiguration,
		},
		{
			name:    "unknown scheme",
			url:     "mongodb://localhost",
			wantErr: IsConfiguration,
		},
		{
			name:    "sqlite without path",
			url:     "sqlite://",
			wantErr: IsConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewRepository(ctx, NewRepositoryOptions{
				DatabaseURL:   tt.url,
				MigrationsDir: testMigrationsDir,
			})
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			defer repo.Close(ctx)
			assert.IsType(t, tt.wantType, repo)
		})
	}
}

func TestErrors(t *testing.T) {
	cause := assert.AnError
	err := &ErrBackend{Op: "create lobby", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsBackend(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "lobby abc not found", (&ErrNotFound{Resource: "lobby", ID: "abc"}).Error())
	assert.Equal(t, "not found", (&ErrNotFound{}).Error())
}

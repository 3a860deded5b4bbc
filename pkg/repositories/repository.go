package repositories

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	gametypes "github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
)

// Repository stores lobbies, their player submissions and the latest
// snapshot of each lobby's game.
type Repository interface {
	Close(ctx context.Context) error
	CreateLobby(ctx context.Context, lobby *models.Lobby) error
	// GetLobby returns ErrNotFound if the lobby does not exist.
	GetLobby(ctx context.Context, lobbyID string) (*models.Lobby, error)
	// DeleteLobby removes the lobby together with its submissions and snapshot.
	DeleteLobby(ctx context.Context, lobbyID string) error
	// SaveSubmission stores a player's phrases. A second submission under the
	// same player name replaces the first.
	SaveSubmission(ctx context.Context, lobbyID string, submission gametypes.Submission) error
	// ListSubmissions returns the lobby's submissions in the order players
	// first submitted.
	ListSubmissions(ctx context.Context, lobbyID string) ([]gametypes.Submission, error)
	SaveGameSnapshot(ctx context.Context, lobbyID string, data []byte) error
	// LoadGameSnapshot returns ErrNotFound if no snapshot was saved.
	LoadGameSnapshot(ctx context.Context, lobbyID string) ([]byte, error)
	DeleteGameSnapshot(ctx context.Context, lobbyID string) error
}

// NewRepositoryOptions contains options for opening a repository.
type NewRepositoryOptions struct {
	// DatabaseURL selects the backend: memory://, sqlite://<path> or
	// postgresql://<connection string>
	DatabaseURL string
	// MigrationsDir holds the sqlite and postgres migration directories
	MigrationsDir string
}

// NewRepository opens the repository named by opts.DatabaseURL.
func NewRepository(ctx context.Context, opts NewRepositoryOptions) (Repository, error) {
	u, err := url.Parse(opts.DatabaseURL)
	if err != nil {
		return nil, &ErrConfiguration{Reason: fmt.Sprintf("failed to parse database url: %v", err)}
	}

	migrationsDir := opts.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}

	switch u.Scheme {
	case "memory":
		return NewMemoryRepository(), nil
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			return nil, &ErrConfiguration{Reason: "sqlite database url has no path"}
		}
		repository, err := NewSQLiteRepository(ctx, path, filepath.Join(migrationsDir, "sqlite"))
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %w", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, u.String(), filepath.Join(migrationsDir, "postgres"))
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %w", err)
		}
		return repository, nil
	case "":
		return nil, &ErrConfiguration{Reason: "database url is empty"}
	default:
		return nil, &ErrConfiguration{Reason: fmt.Sprintf("unknown database type %s", u.Scheme)}
	}
}

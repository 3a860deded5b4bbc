package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gametypes "github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = &SQLiteRepository{}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite allows a single writer; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := applyMigrations(ctx, migrations, func(ctx context.Context, migration string) error {
		_, err := db.ExecContext(ctx, migration)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

// applyMigrations runs every file in dir in name order. Migrations must be
// idempotent since they run on every open.
func applyMigrations(ctx context.Context, dir string, exec func(ctx context.Context, migration string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(dir, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if err := exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateLobby(ctx context.Context, lobby *models.Lobby) error {
	q := `
	INSERT INTO lobbies (id, turn_time, phrases_per_player, created_at)
	VALUES (?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, lobby.ID, lobby.Config.TurnTime, lobby.Config.PhrasesPerPlayer, lobby.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert lobby: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) GetLobby(ctx context.Context, lobbyID string) (*models.Lobby, error) {
	q := `
	SELECT turn_time, phrases_per_player, created_at FROM lobbies WHERE id = ?;
	`
	lobby := &models.Lobby{ID: lobbyID}
	var createdAt int64
	err := r.db.QueryRowContext(ctx, q, lobbyID).Scan(&lobby.Config.TurnTime, &lobby.Config.PhrasesPerPlayer, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Resource: "lobby", ID: lobbyID}
		}
		return nil, fmt.Errorf("failed to scan lobby: %v", err)
	}
	lobby.CreatedAt = time.UnixMilli(createdAt).UTC()
	return lobby, nil
}

func (r *SQLiteRepository) DeleteLobby(ctx context.Context, lobbyID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM game_snapshots WHERE lobby_id = ?;`,
		`DELETE FROM submissions WHERE lobby_id = ?;`,
	} {
		if _, err := tx.ExecContext(ctx, q, lobbyID); err != nil {
			return fmt.Errorf("failed to delete lobby data: %v", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM lobbies WHERE id = ?;`, lobbyID)
	if err != nil {
		return fmt.Errorf("failed to delete lobby: %v", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) lobbyExists(ctx context.Context, lobbyID string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM lobbies WHERE id = ?;`, lobbyID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return &ErrNotFound{Resource: "lobby", ID: lobbyID}
		}
		return fmt.Errorf("failed to query lobby: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) SaveSubmission(ctx context.Context, lobbyID string, submission gametypes.Submission) error {
	if err := r.lobbyExists(ctx, lobbyID); err != nil {
		return err
	}

	phrases, err := json.Marshal(submission.Phrases)
	if err != nil {
		return fmt.Errorf("failed to marshal phrases: %v", err)
	}

	q := `
	INSERT INTO submissions (lobby_id, player_name, phrases, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (lobby_id, player_name) DO UPDATE SET phrases = excluded.phrases;
	`
	_, err = r.db.ExecContext(ctx, q, lobbyID, submission.PlayerName, string(phrases), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert submission: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) ListSubmissions(ctx context.Context, lobbyID string) ([]gametypes.Submission, error) {
	if err := r.lobbyExists(ctx, lobbyID); err != nil {
		return nil, err
	}

	q := `
	SELECT player_name, phrases FROM submissions WHERE lobby_id = ? ORDER BY id;
	`
	rows, err := r.db.QueryContext(ctx, q, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %v", err)
	}
	defer rows.Close()

	submissions := []gametypes.Submission{}
	for rows.Next() {
		var submission gametypes.Submission
		var phrases string
		if err := rows.Scan(&submission.PlayerName, &phrases); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %v", err)
		}
		if err := json.Unmarshal([]byte(phrases), &submission.Phrases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal phrases: %v", err)
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %v", err)
	}
	return submissions, nil
}

func (r *SQLiteRepository) SaveGameSnapshot(ctx context.Context, lobbyID string, data []byte) error {
	if err := r.lobbyExists(ctx, lobbyID); err != nil {
		return err
	}

	q := `
	INSERT OR REPLACE INTO game_snapshots (lobby_id, data, updated_at)
	VALUES (?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, lobbyID, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save game snapshot: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadGameSnapshot(ctx context.Context, lobbyID string) ([]byte, error) {
	q := `
	SELECT data FROM game_snapshots WHERE lobby_id = ?;
	`
	var data []byte
	if err := r.db.QueryRowContext(ctx, q, lobbyID).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Resource: "game snapshot", ID: lobbyID}
		}
		return nil, fmt.Errorf("failed to scan game snapshot: %v", err)
	}
	return data, nil
}

func (r *SQLiteRepository) DeleteGameSnapshot(ctx context.Context, lobbyID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM game_snapshots WHERE lobby_id = ?;`, lobbyID); err != nil {
		return fmt.Errorf("failed to delete game snapshot: %v", err)
	}
	return nil
}

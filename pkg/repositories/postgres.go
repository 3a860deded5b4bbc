package repositories

import (
	"context"
	"errors"
	"fmt"

	gametypes "github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = &PostgresRepository{}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to connStr and applies the migrations in
// the migrations directory. The caller is responsible for calling Close()
// on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (*PostgresRepository, error) {
	pool, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := applyMigrations(ctx, migrations, func(ctx context.Context, migration string) error {
		_, err := pool.Exec(ctx, migration)
		return err
	}); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return pool, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) CreateLobby(ctx context.Context, lobby *models.Lobby) error {
	q := `
	INSERT INTO lobbies (id, turn_time, phrases_per_player, created_at)
	VALUES ($1, $2, $3, $4);
	`
	_, err := r.pool.Exec(ctx, q, lobby.ID, lobby.Config.TurnTime, lobby.Config.PhrasesPerPlayer, lobby.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lobby: %v", err)
	}
	return nil
}

func (r *PostgresRepository) GetLobby(ctx context.Context, lobbyID string) (*models.Lobby, error) {
	q := `
	SELECT turn_time, phrases_per_player, created_at FROM lobbies WHERE id = $1;
	`
	lobby := &models.Lobby{ID: lobbyID}
	err := r.pool.QueryRow(ctx, q, lobbyID).Scan(&lobby.Config.TurnTime, &lobby.Config.PhrasesPerPlayer, &lobby.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Resource: "lobby", ID: lobbyID}
		}
		return nil, fmt.Errorf("failed to scan lobby: %v", err)
	}
	lobby.CreatedAt = lobby.CreatedAt.UTC()
	return lobby, nil
}

func (r *PostgresRepository) DeleteLobby(ctx context.Context, lobbyID string) error {
	// submissions and snapshots cascade
	tag, err := r.pool.Exec(ctx, `DELETE FROM lobbies WHERE id = $1;`, lobbyID)
	if err != nil {
		return fmt.Errorf("failed to delete lobby: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}
	return nil
}

func (r *PostgresRepository) lobbyExists(ctx context.Context, lobbyID string) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM lobbies WHERE id = $1);`, lobbyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query lobby: %v", err)
	}
	if !exists {
		return &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}
	return nil
}

func (r *PostgresRepository) SaveSubmission(ctx context.Context, lobbyID string, submission gametypes.Submission) error {
	if err := r.lobbyExists(ctx, lobbyID); err != nil {
		return err
	}

	q := `
	INSERT INTO submissions (lobby_id, player_name, phrases) VALUES ($1, $2, $3)
	ON CONFLICT (lobby_id, player_name) DO UPDATE SET phrases = $3;
	`
	phrases := submission.Phrases
	if phrases == nil {
		phrases = []string{}
	}
	if _, err := r.pool.Exec(ctx, q, lobbyID, submission.PlayerName, phrases); err != nil {
		return fmt.Errorf("failed to insert submission: %v", err)
	}
	return nil
}

func (r *PostgresRepository) ListSubmissions(ctx context.Context, lobbyID string) ([]gametypes.Submission, error) {
	if err := r.lobbyExists(ctx, lobbyID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT player_name, phrases FROM submissions WHERE lobby_id = $1 ORDER BY id;`, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %v", err)
	}
	defer rows.Close()

	submissions := []gametypes.Submission{}
	for rows.Next() {
		var submission gametypes.Submission
		if err := rows.Scan(&submission.PlayerName, &submission.Phrases); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %v", err)
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %v", err)
	}
	return submissions, nil
}

func (r *PostgresRepository) SaveGameSnapshot(ctx context.Context, lobbyID string, data []byte) error {
	if err := r.lobbyExists(ctx, lobbyID); err != nil {
		return err
	}

	q := `
	INSERT INTO game_snapshots (lobby_id, data) VALUES ($1, $2)
	ON CONFLICT (lobby_id) DO UPDATE SET data = $2, updated_at = now();
	`
	if _, err := r.pool.Exec(ctx, q, lobbyID, data); err != nil {
		return fmt.Errorf("failed to save game snapshot: %v", err)
	}
	return nil
}

func (r *PostgresRepository) LoadGameSnapshot(ctx context.Context, lobbyID string) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM game_snapshots WHERE lobby_id = $1;`, lobbyID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Resource: "game snapshot", ID: lobbyID}
		}
		return nil, fmt.Errorf("failed to scan game snapshot: %v", err)
	}
	return data, nil
}

func (r *PostgresRepository) DeleteGameSnapshot(ctx context.Context, lobbyID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM game_snapshots WHERE lobby_id = $1;`, lobbyID); err != nil {
		return fmt.Errorf("failed to delete game snapshot: %v", err)
	}
	return nil
}

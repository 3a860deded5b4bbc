package repositories

import (
	"context"
	"sync"

	gametypes "github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
)

var _ Repository = &MemoryRepository{}

// MemoryRepository keeps everything in process memory. It is lost on restart.
type MemoryRepository struct {
	lock        sync.RWMutex
	lobbies     map[string]*models.Lobby
	submissions map[string][]gametypes.Submission
	snapshots   map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lobbies:     make(map[string]*models.Lobby),
		submissions: make(map[string][]gametypes.Submission),
		snapshots:   make(map[string][]byte),
	}
}

func (r *MemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) CreateLobby(ctx context.Context, lobby *models.Lobby) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	stored := *lobby
	r.lobbies[lobby.ID] = &stored
	return nil
}

func (r *MemoryRepository) GetLobby(ctx context.Context, lobbyID string) (*models.Lobby, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	lobby, ok := r.lobbies[lobbyID]
	if !ok {
		return nil, &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}
	found := *lobby
	return &found, nil
}

func (r *MemoryRepository) DeleteLobby(ctx context.Context, lobbyID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.lobbies[lobbyID]; !ok {
		return &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}
	delete(r.lobbies, lobbyID)
	delete(r.submissions, lobbyID)
	delete(r.snapshots, lobbyID)
	return nil
}

func (r *MemoryRepository) SaveSubmission(ctx context.Context, lobbyID string, submission gametypes.Submission) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.lobbies[lobbyID]; !ok {
		return &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}

	stored := gametypes.Submission{
		PlayerName: submission.PlayerName,
		Phrases:    append([]string(nil), submission.Phrases...),
	}
	existing := r.submissions[lobbyID]
	for i := range existing {
		if existing[i].PlayerName == submission.PlayerName {
			existing[i] = stored
			return nil
		}
	}
	r.submissions[lobbyID] = append(existing, stored)
	return nil
}

func (r *MemoryRepository) ListSubmissions(ctx context.Context, lobbyID string) ([]gametypes.Submission, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if _, ok := r.lobbies[lobbyID]; !ok {
		return nil, &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}

	submissions := make([]gametypes.Submission, 0, len(r.submissions[lobbyID]))
	for _, submission := range r.submissions[lobbyID] {
		submissions = append(submissions, gametypes.Submission{
			PlayerName: submission.PlayerName,
			Phrases:    append([]string(nil), submission.Phrases...),
		})
	}
	return submissions, nil
}

func (r *MemoryRepository) SaveGameSnapshot(ctx context.Context, lobbyID string, data []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.lobbies[lobbyID]; !ok {
		return &ErrNotFound{Resource: "lobby", ID: lobbyID}
	}
	r.snapshots[lobbyID] = append([]byte(nil), data...)
	return nil
}

func (r *MemoryRepository) LoadGameSnapshot(ctx context.Context, lobbyID string) ([]byte, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	data, ok := r.snapshots[lobbyID]
	if !ok {
		return nil, &ErrNotFound{Resource: "game snapshot", ID: lobbyID}
	}
	return append([]byte(nil), data...), nil
}

func (r *MemoryRepository) DeleteGameSnapshot(ctx context.Context, lobbyID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.snapshots, lobbyID)
	return nil
}

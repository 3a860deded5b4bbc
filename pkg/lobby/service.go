package lobby

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cbodonnell/fishbowl/pkg/config"
	"github.com/cbodonnell/fishbowl/pkg/game/constants"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/repositories"
	"github.com/cbodonnell/fishbowl/pkg/repositories/models"
	"github.com/google/uuid"
)

// Service is the lobby and persistence collaborator of the game. Until it
// is configured every call fails with repositories.ErrConfiguration.
type Service struct {
	store         config.Store
	migrationsDir string
	now           func() time.Time

	lock       sync.RWMutex
	repository repositories.Repository
}

// NewServiceOptions contains options for creating a new Service.
type NewServiceOptions struct {
	// Store persists credentials between restarts. Defaults to a MemoryStore.
	Store         config.Store
	MigrationsDir string
	// Repository, when set, is used directly and no credentials are needed
	Repository repositories.Repository
}

func NewService(opts NewServiceOptions) *Service {
	store := opts.Store
	if store == nil {
		store = config.NewMemoryStore()
	}
	return &Service{
		store:         store,
		migrationsDir: opts.MigrationsDir,
		now:           time.Now,
		repository:    opts.Repository,
	}
}

// NewServiceFromStore creates a Service and configures it from the
// credentials found in the environment or the store. The returned Service
// is always usable; if the stored credentials cannot be opened it is left
// unconfigured and the error is returned alongside it.
func NewServiceFromStore(ctx context.Context, opts NewServiceOptions) (*Service, error) {
	s := NewService(opts)
	if s.Configured() {
		return s, nil
	}

	credentials, err := config.LoadCredentials(s.store)
	if err != nil {
		return s, fmt.Errorf("failed to load credentials: %w", err)
	}
	if credentials == nil {
		log.Warn("No database configured; lobby operations are unavailable until one is set")
		return s, nil
	}
	if err := s.open(ctx, credentials); err != nil {
		return s, err
	}
	return s, nil
}

// Init opens the backend named by credentials, stores the credentials for
// the next start and replaces any previously open backend.
func (s *Service) Init(ctx context.Context, credentials *config.Credentials) error {
	if err := credentials.Validate(); err != nil {
		return &repositories.ErrConfiguration{Reason: err.Error()}
	}
	if err := s.open(ctx, credentials); err != nil {
		return err
	}
	if err := s.store.Save(credentials); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	return nil
}

func (s *Service) open(ctx context.Context, credentials *config.Credentials) error {
	repository, err := repositories.NewRepository(ctx, repositories.NewRepositoryOptions{
		DatabaseURL:   credentials.DatabaseURL,
		MigrationsDir: s.migrationsDir,
	})
	if err != nil {
		if repositories.IsConfiguration(err) {
			return err
		}
		return &repositories.ErrBackend{Op: "open database", Err: err}
	}

	s.lock.Lock()
	previous := s.repository
	s.repository = repository
	s.lock.Unlock()

	if previous != nil {
		if err := previous.Close(ctx); err != nil {
			log.Warn("Failed to close previous repository: %v", err)
		}
	}
	log.Info("Lobby service configured")
	return nil
}

// Teardown closes the backend and forgets the stored credentials.
func (s *Service) Teardown(ctx context.Context) error {
	s.lock.Lock()
	repository := s.repository
	s.repository = nil
	s.lock.Unlock()

	if repository != nil {
		if err := repository.Close(ctx); err != nil {
			log.Warn("Failed to close repository: %v", err)
		}
	}
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	log.Info("Lobby service torn down")
	return nil
}

// Close releases the backend but keeps the stored credentials.
func (s *Service) Close(ctx context.Context) error {
	s.lock.Lock()
	repository := s.repository
	s.repository = nil
	s.lock.Unlock()
	if repository == nil {
		return nil
	}
	return repository.Close(ctx)
}

func (s *Service) Configured() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.repository != nil
}

func (s *Service) getRepository() (repositories.Repository, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.repository == nil {
		return nil, &repositories.ErrConfiguration{Reason: "no database configured"}
	}
	return s.repository, nil
}

// CreateLobby stores a new lobby and returns its id.
func (s *Service) CreateLobby(ctx context.Context, lobbyConfig types.LobbyConfig) (string, error) {
	repository, err := s.getRepository()
	if err != nil {
		return "", err
	}
	if err := ValidateLobbyConfig(lobbyConfig); err != nil {
		return "", err
	}

	lobby := &models.Lobby{
		ID:        uuid.NewString(),
		Config:    lobbyConfig,
		CreatedAt: s.now().UTC(),
	}
	if err := repository.CreateLobby(ctx, lobby); err != nil {
		return "", backendError("create lobby", err)
	}
	log.Debug("Created lobby %s", lobby.ID)
	return lobby.ID, nil
}

// GetLobby returns repositories.ErrNotFound for unknown or malformed ids.
func (s *Service) GetLobby(ctx context.Context, lobbyID string) (*models.Lobby, error) {
	repository, err := s.getRepository()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(lobbyID); err != nil {
		return nil, &repositories.ErrNotFound{Resource: "lobby", ID: lobbyID}
	}

	lobby, err := repository.GetLobby(ctx, lobbyID)
	if err != nil {
		return nil, backendError("get lobby", err)
	}
	return lobby, nil
}

// SubmitPlayer validates and stores a player's phrases for a lobby.
// Names and phrases are stored trimmed.
func (s *Service) SubmitPlayer(ctx context.Context, lobbyID string, name string, phrases []string) error {
	lobby, err := s.GetLobby(ctx, lobbyID)
	if err != nil {
		return err
	}

	submission, err := ValidateSubmission(lobby.Config, name, phrases)
	if err != nil {
		return err
	}

	repository, err := s.getRepository()
	if err != nil {
		return err
	}
	if err := repository.SaveSubmission(ctx, lobbyID, submission); err != nil {
		return backendError("submit player", err)
	}
	log.Debug("Player %s submitted %d phrases to lobby %s", submission.PlayerName, len(submission.Phrases), lobbyID)
	return nil
}

func (s *Service) GetSubmissions(ctx context.Context, lobbyID string) ([]types.Submission, error) {
	repository, err := s.getRepository()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(lobbyID); err != nil {
		return nil, &repositories.ErrNotFound{Resource: "lobby", ID: lobbyID}
	}

	submissions, err := repository.ListSubmissions(ctx, lobbyID)
	if err != nil {
		return nil, backendError("get submissions", err)
	}
	return submissions, nil
}

// DeleteLobby removes a lobby and everything stored with it. It is best
// effort: failures, including a missing backend, are logged and dropped.
func (s *Service) DeleteLobby(ctx context.Context, lobbyID string) {
	repository, err := s.getRepository()
	if err != nil {
		log.Warn("Skipping delete of lobby %s: %v", lobbyID, err)
		return
	}
	if _, err := uuid.Parse(lobbyID); err != nil {
		log.Warn("Skipping delete of malformed lobby id %q", lobbyID)
		return
	}
	if err := repository.DeleteLobby(ctx, lobbyID); err != nil {
		if repositories.IsNotFound(err) {
			log.Debug("Lobby %s already deleted", lobbyID)
			return
		}
		log.Error("Failed to delete lobby %s: %v", lobbyID, err)
		return
	}
	log.Debug("Deleted lobby %s", lobbyID)
}

func (s *Service) SaveGameSnapshot(ctx context.Context, lobbyID string, data []byte) error {
	repository, err := s.getRepository()
	if err != nil {
		return err
	}
	if err := repository.SaveGameSnapshot(ctx, lobbyID, data); err != nil {
		return backendError("save game snapshot", err)
	}
	return nil
}

func (s *Service) LoadGameSnapshot(ctx context.Context, lobbyID string) ([]byte, error) {
	repository, err := s.getRepository()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(lobbyID); err != nil {
		return nil, &repositories.ErrNotFound{Resource: "game snapshot", ID: lobbyID}
	}
	data, err := repository.LoadGameSnapshot(ctx, lobbyID)
	if err != nil {
		return nil, backendError("load game snapshot", err)
	}
	return data, nil
}

func (s *Service) DeleteGameSnapshot(ctx context.Context, lobbyID string) error {
	repository, err := s.getRepository()
	if err != nil {
		return err
	}
	if err := repository.DeleteGameSnapshot(ctx, lobbyID); err != nil {
		return backendError("delete game snapshot", err)
	}
	return nil
}

// backendError passes through errors that already carry a meaning for the
// caller and wraps the rest as ErrBackend.
func backendError(op string, err error) error {
	if repositories.IsNotFound(err) || repositories.IsConfiguration(err) || repositories.IsBackend(err) {
		return err
	}
	return &repositories.ErrBackend{Op: op, Err: err}
}

// ValidateLobbyConfig checks turn time and phrase count bounds.
func ValidateLobbyConfig(c types.LobbyConfig) error {
	if c.TurnTime <= 0 || c.TurnTime > constants.MaxTurnTime {
		return &types.ErrValidation{
			Field:  "turnTime",
			Reason: fmt.Sprintf("must be between 1 and %d seconds", constants.MaxTurnTime),
		}
	}
	if c.PhrasesPerPlayer <= 0 || c.PhrasesPerPlayer > constants.MaxPhrasesPerPlayer {
		return &types.ErrValidation{
			Field:  "phrasesPerPlayer",
			Reason: fmt.Sprintf("must be between 1 and %d", constants.MaxPhrasesPerPlayer),
		}
	}
	return nil
}

// ValidateSubmission checks a player's submission against the lobby config
// and returns it trimmed.
func ValidateSubmission(c types.LobbyConfig, name string, phrases []string) (types.Submission, error) {
	if err := ValidateLobbyConfig(c); err != nil {
		return types.Submission{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return types.Submission{}, &types.ErrValidation{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > constants.MaxPlayerNameLength {
		return types.Submission{}, &types.ErrValidation{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters", constants.MaxPlayerNameLength),
		}
	}
	if len(phrases) != c.PhrasesPerPlayer {
		return types.Submission{}, &types.ErrValidation{
			Field:  "phrases",
			Reason: fmt.Sprintf("expected %d phrases, got %d", c.PhrasesPerPlayer, len(phrases)),
		}
	}

	trimmed := make([]string, 0, len(phrases))
	for i, phrase := range phrases {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			return types.Submission{}, &types.ErrValidation{
				Field:  fmt.Sprintf("phrases[%d]", i),
				Reason: "must not be blank",
			}
		}
		if len(phrase) > constants.MaxPhraseLength {
			return types.Submission{}, &types.ErrValidation{
				Field:  fmt.Sprintf("phrases[%d]", i),
				Reason: fmt.Sprintf("must be at most %d characters", constants.MaxPhraseLength),
			}
		}
		trimmed = append(trimmed, phrase)
	}

	return types.Submission{PlayerName: name, Phrases: trimmed}, nil
}

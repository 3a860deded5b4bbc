package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// EnvDatabaseURL overrides any stored database url
	EnvDatabaseURL = "FISHBOWL_DATABASE_URL"
	// EnvCredentialsFile points at the credentials file
	EnvCredentialsFile = "FISHBOWL_CREDENTIALS_FILE"

	DefaultCredentialsFile = "fishbowl-credentials.yaml"
)

// Credentials configure the persistence backend for the whole process.
type Credentials struct {
	DatabaseURL string `yaml:"database_url"`
}

func (c *Credentials) Validate() error {
	if c == nil || strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("database url is required")
	}
	return nil
}

// Store persists credentials across process restarts.
type Store interface {
	// Load returns nil credentials when none are stored.
	Load() (*Credentials, error)
	Save(credentials *Credentials) error
	Clear() error
}

var _ Store = &FileStore{}

// FileStore keeps credentials in a YAML file.
type FileStore struct {
	path string
	lock sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

// NewFileStoreFromEnv uses the file named by FISHBOWL_CREDENTIALS_FILE or the default.
func NewFileStoreFromEnv() *FileStore {
	path := os.Getenv(EnvCredentialsFile)
	if path == "" {
		path = DefaultCredentialsFile
	}
	return NewFileStore(path)
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (*Credentials, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %v", err)
	}

	credentials := &Credentials{}
	if err := yaml.Unmarshal(b, credentials); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %v", s.path, err)
	}
	if credentials.DatabaseURL == "" {
		return nil, nil
	}
	return credentials, nil
}

func (s *FileStore) Save(credentials *Credentials) error {
	if err := credentials.Validate(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	b, err := yaml.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %v", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create credentials directory: %v", err)
		}
	}
	// replace atomically
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %v", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace credentials file: %v", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %v", err)
	}
	return nil
}

var _ Store = &MemoryStore{}

// MemoryStore keeps credentials for the lifetime of the process only.
type MemoryStore struct {
	lock        sync.Mutex
	credentials *Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Credentials, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.credentials == nil {
		return nil, nil
	}
	c := *s.credentials
	return &c, nil
}

func (s *MemoryStore) Save(credentials *Credentials) error {
	if err := credentials.Validate(); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	c := *credentials
	s.credentials = &c
	return nil
}

func (s *MemoryStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.credentials = nil
	return nil
}

// LoadCredentials returns the stored credentials with FISHBOWL_DATABASE_URL
// taking precedence. It returns nil when neither source configures a backend.
func LoadCredentials(store Store) (*Credentials, error) {
	if url := os.Getenv(EnvDatabaseURL); url != "" {
		return &Credentials{DatabaseURL: url}, nil
	}
	if store == nil {
		return nil, nil
	}
	return store.Load()
}

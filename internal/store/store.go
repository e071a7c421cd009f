package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/triage"
)

// Store persists the email working set as one JSON file. Every Save
// overwrites the whole file and every Load reads the whole file; there
// is no partial update and no versioning beyond the file path.
type Store struct {
	path   string
	logger logging.Logger
	mu     sync.Mutex
}

// New creates a store writing to the given path. A nil logger falls
// back to the default slog adapter.
func New(path string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

// DefaultPath returns the cache file location under the user cache
// directory.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "inboxtriage", "emails.json"), nil
}

// Path returns the file this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Save writes the whole working set, replacing whatever was stored
// before. A nil slice is stored as an empty array so the file always
// holds valid JSON.
func (s *Store) Save(emails []triage.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emails == nil {
		emails = []triage.Email{}
	}

	data, err := json.MarshalIndent(emails, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode working set: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	s.logger.Debug("working set saved", "path", s.path, "count", len(emails))
	return nil
}

// Load reads the stored working set. A missing cache file is not an
// error; it simply means nothing has been synced yet. An unreadable
// one is reported, but a corrupt one is treated as empty since the
// cache is disposable and the next sync rewrites it.
func (s *Store) Load() ([]triage.Email, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var emails []triage.Email
	if err := json.Unmarshal(data, &emails); err != nil {
		s.logger.Warn("discarding corrupt cache file", "path", s.path, "error", err.Error())
		return nil, nil
	}
	return emails, nil
}

// Clear removes the cache file. Clearing an already-empty cache is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove cache file: %w", err)
	}

	s.logger.Debug("working set cleared", "path", s.path)
	return nil
}

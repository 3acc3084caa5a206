package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/invdash/internal/domain"
)

// Store is a file-based implementation of domain.SessionStore. The token and the
// user record live in one JSON document so they are always written and removed
// together.
type Store struct {
	path string
}

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.config/invdash/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "invdash", "session.json"), nil
}

func (s *Store) Path() string { return s.path }

// Load reads the session from disk. A missing file is an empty session.
func (s *Store) Load() (domain.SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SessionState{}, nil // signed out is not an error
		}
		return domain.SessionState{}, err
	}

	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.SessionState{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return state, nil
}

// Save writes the session, creating directories as needed. The file is only
// readable by the current user.
func (s *Store) Save(state domain.SessionState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the session file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

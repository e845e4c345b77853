package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotLoggedIn is returned by guarded commands when no session exists.
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the client-side login flag. The server does not check it.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
}

// NewSession starts a session for username with a fresh token.
func NewSession(username string) *Session {
	return &Session{
		Token:    uuid.New().String(),
		Username: username,
	}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists a Session as JSON in a single file.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is ~/.hospitalctl/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".hospitalctl", "session.json"), nil
}

// Load returns the stored session, or nil when there is none.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

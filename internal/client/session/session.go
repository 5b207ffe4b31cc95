// Package session persists the login session (token and username) between
// client runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AppName is the application config directory name.
const AppName = "listpad"

const sessionFile = "session.json"

// Session is the persisted pair written after a successful login.
// A non-empty Token implies a previously successful login.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Store reads and writes the session file inside a config directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. If dir is empty the default config
// directory is used.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// DefaultDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

// Load reads the stored session. A missing file is not an error and yields
// the zero Session (anonymous state).
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Save writes the session, creating the config directory if needed.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0600)
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

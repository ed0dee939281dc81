// Package session tracks per-session notification state: the agent is
// told about the DDEV environment exactly once per session, and nudged
// to start a stopped environment at most once per session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is the notifier's per-session record. Notified and AskedToStart
// are independent: a session can be nudged first and notified later once
// the environment comes up.
type State struct {
	SessionID    string `json:"session_id"`
	Notified     bool   `json:"notified"`
	AskedToStart bool   `json:"asked_to_start"`
}

// Store persists notifier state. Hook invocations are separate processes,
// so the one-shot guarantees have to survive across them.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// FileStore keeps the state as a small JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to dir/session.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "session.json")}
}

// DefaultStateDir returns the per-user state directory, creating it if
// needed.
func DefaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	dir := filepath.Join(base, "opencode-ddev")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating state dir: %w", err)
	}
	return dir, nil
}

func (s *FileStore) Load(_ context.Context) (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("reading session state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parsing session state: %w", err)
	}
	return state, nil
}

func (s *FileStore) Save(_ context.Context, state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session state: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// MemoryStore holds state in memory, for the long-lived serve mode and
// for tests.
type MemoryStore struct {
	state State
}

func (s *MemoryStore) Load(_ context.Context) (State, error) { return s.state, nil }

func (s *MemoryStore) Save(_ context.Context, st State) error {
	s.state = st
	return nil
}

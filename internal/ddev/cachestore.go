package ddev

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheState is the persisted form of a positive cache entry. Hook
// invocations are separate processes, so without this file every
// intercepted command within the cache window would re-probe.
type CacheState struct {
	CapturedAt   time.Time `json:"captured_at"`
	Running      bool      `json:"running"`
	ProjectRoot  string    `json:"project_root"`
	ContainerDir string    `json:"container_dir"`
}

// CacheStore persists the cache's positive entry between processes.
type CacheStore interface {
	Load(ctx context.Context) (CacheState, error)
	Save(ctx context.Context, state CacheState) error
	Clear(ctx context.Context) error
}

// FileCacheStore keeps the cache state as a small JSON file.
type FileCacheStore struct {
	path string
}

// NewFileCacheStore returns a store writing to dir/status.json.
func NewFileCacheStore(dir string) *FileCacheStore {
	return &FileCacheStore{path: filepath.Join(dir, "status.json")}
}

func (s *FileCacheStore) Load(_ context.Context) (CacheState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CacheState{}, nil
		}
		return CacheState{}, fmt.Errorf("reading status cache: %w", err)
	}
	var state CacheState
	if err := json.Unmarshal(data, &state); err != nil {
		return CacheState{}, fmt.Errorf("parsing status cache: %w", err)
	}
	return state, nil
}

func (s *FileCacheStore) Save(_ context.Context, state CacheState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling status cache: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileCacheStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing status cache: %w", err)
	}
	return nil
}

package ddev

import (
	"context"
	"sync"
	"time"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/pathmap"
	"github.com/rs/zerolog"
)

// CacheDuration is how long a positive ("running") probe result is trusted.
const CacheDuration = 120 * time.Second

// cacheEntry exists only while the environment is known to be running.
// Any other probe outcome clears it so the next command re-probes.
type cacheEntry struct {
	capturedAt   time.Time
	status       Status
	containerDir string
}

// Cache probes the DDEV environment and caches the running state.
//
// Only the positive result is cached: a stopped project must be re-checked
// on every command, because the user may start it between commands. Probe
// failures collapse to "unavailable" and are logged, never raised — command
// execution degrades to pass-through instead of blocking the agent.
type Cache struct {
	mu     sync.Mutex
	runner RunnerFunc
	log    zerolog.Logger
	now    func() time.Time
	store  CacheStore

	entry        *cacheEntry
	projectRoot  string
	containerDir string
}

// NewCache returns a status cache using the given runner for probes.
func NewCache(runner RunnerFunc, log zerolog.Logger) *Cache {
	return &Cache{
		runner: runner,
		log:    log,
		now:    time.Now,
	}
}

// NewCacheWithStore returns a cache that persists the positive entry
// through store, rehydrating it on construction. Hook invocations are
// separate processes; without persistence every intercepted command
// would pay a full probe.
func NewCacheWithStore(runner RunnerFunc, log zerolog.Logger, store CacheStore) *Cache {
	c := NewCache(runner, log)
	c.store = store

	state, err := store.Load(context.Background())
	if err != nil {
		log.Debug().Err(err).Msg("ignoring unreadable status cache")
		return c
	}
	if !state.Running {
		return c
	}
	c.projectRoot = state.ProjectRoot
	c.containerDir = state.ContainerDir
	c.entry = &cacheEntry{
		capturedAt:   state.CapturedAt,
		status:       Status{Available: true, Running: true},
		containerDir: state.ContainerDir,
	}
	return c
}

// Refresh returns the environment status, probing at most once per
// CacheDuration while the environment stays running. hostDir is the
// current host working directory; a successful probe recomputes the
// project root and the container working directory from it.
func (c *Cache) Refresh(ctx context.Context, hostDir string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && c.now().Sub(c.entry.capturedAt) < CacheDuration {
		// The project root is stable for the entry's lifetime, but the
		// agent moves between directories, so the container working
		// directory must track the caller's hostDir on every hit.
		dir := pathmap.ToContainerPath(hostDir, c.projectRoot)
		if dir != c.containerDir {
			c.containerDir = dir
			c.entry.containerDir = dir
			c.persist(ctx)
		}
		return c.entry.status
	}

	state, root, err := describe(ctx, c.runner)
	if err != nil {
		c.entry = nil
		c.clearStore(ctx)
		c.log.Error().Err(err).Msg("ddev probe failed")
		return Status{}
	}

	if state != "running" {
		c.entry = nil
		c.clearStore(ctx)
		return Status{Available: true}
	}

	c.projectRoot = pathmap.ExpandHome(root)
	c.containerDir = pathmap.ToContainerPath(hostDir, c.projectRoot)

	status := Status{Available: true, Running: true}
	c.entry = &cacheEntry{
		capturedAt:   c.now(),
		status:       status,
		containerDir: c.containerDir,
	}
	c.persist(ctx)
	return status
}

// persist writes the current positive entry through the store, if any.
// Store failures are logged and otherwise ignored: persistence is an
// optimization, not a correctness requirement.
func (c *Cache) persist(ctx context.Context) {
	if c.store == nil || c.entry == nil {
		return
	}
	state := CacheState{
		CapturedAt:   c.entry.capturedAt,
		Running:      true,
		ProjectRoot:  c.projectRoot,
		ContainerDir: c.containerDir,
	}
	if err := c.store.Save(ctx, state); err != nil {
		c.log.Debug().Err(err).Msg("persisting status cache failed")
	}
}

func (c *Cache) clearStore(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Debug().Err(err).Msg("clearing status cache failed")
	}
}

// ProjectRoot returns the host-side project root from the last successful
// probe, or "" when none has succeeded yet.
func (c *Cache) ProjectRoot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectRoot
}

// ContainerDir returns the container working directory computed by the
// last successful probe, or "" when none has succeeded yet.
func (c *Cache) ContainerDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.containerDir
}

// Invalidate drops the cached entry so the next Refresh probes again.
// Used by the watch dashboard to poll live state.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

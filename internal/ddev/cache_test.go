package ddev

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeRunner counts probe invocations and plays back a scripted response.
type fakeRunner struct {
	calls  int
	output string
	err    error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls++
	return []byte(f.output), f.err
}

func describeJSON(status, shortroot string) string {
	return fmt.Sprintf(`{"level":"info","msg":"ok","raw":{"status":%q,"shortroot":%q,"approot":%q}}`,
		status, shortroot, shortroot)
}

func newTestCache(runner *fakeRunner) (*Cache, *time.Time) {
	c := NewCache(runner.run, zerolog.Nop())
	now := time.Now()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestRefreshRunningIsCached(t *testing.T) {
	runner := &fakeRunner{output: describeJSON("running", "/home/u/app")}
	c, now := newTestCache(runner)

	st := c.Refresh(context.Background(), "/home/u/app/web")
	if !st.Available || !st.Running {
		t.Fatalf("status = %+v, want running", st)
	}
	if runner.calls != 1 {
		t.Fatalf("probe calls = %d, want 1", runner.calls)
	}

	// Just inside the window: served from cache.
	*now = now.Add(CacheDuration - time.Millisecond)
	st = c.Refresh(context.Background(), "/home/u/app/web")
	if !st.Running {
		t.Errorf("status = %+v, want running from cache", st)
	}
	if runner.calls != 1 {
		t.Errorf("probe calls = %d, want 1 (cache hit)", runner.calls)
	}

	// At the window boundary: probes again.
	*now = now.Add(time.Millisecond)
	c.Refresh(context.Background(), "/home/u/app/web")
	if runner.calls != 2 {
		t.Errorf("probe calls = %d, want 2 (cache expired)", runner.calls)
	}
}

func TestRefreshStoppedIsNeverCached(t *testing.T) {
	runner := &fakeRunner{output: describeJSON("stopped", "/home/u/app")}
	c, _ := newTestCache(runner)

	for i := 0; i < 3; i++ {
		st := c.Refresh(context.Background(), "/home/u/app")
		if !st.Available || st.Running {
			t.Fatalf("status = %+v, want available but not running", st)
		}
	}
	if runner.calls != 3 {
		t.Errorf("probe calls = %d, want 3 (stopped is re-probed every time)", runner.calls)
	}
}

func TestRefreshProbeFailure(t *testing.T) {
	runner := &fakeRunner{output: "ddev is not installed", err: errors.New("exit status 127")}
	c, _ := newTestCache(runner)

	st := c.Refresh(context.Background(), "/home/u/app")
	if st.Available || st.Running {
		t.Errorf("status = %+v, want unavailable", st)
	}

	// Failure is not cached either.
	c.Refresh(context.Background(), "/home/u/app")
	if runner.calls != 2 {
		t.Errorf("probe calls = %d, want 2", runner.calls)
	}
}

func TestRefreshUnparseableOutput(t *testing.T) {
	runner := &fakeRunner{output: "not json at all"}
	c, _ := newTestCache(runner)

	st := c.Refresh(context.Background(), "/home/u/app")
	if st.Available || st.Running {
		t.Errorf("status = %+v, want unavailable", st)
	}
}

func TestRefreshExpandsShortroot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	runner := &fakeRunner{output: describeJSON("running", "~/sites/app")}
	c, _ := newTestCache(runner)

	st := c.Refresh(context.Background(), home+"/sites/app")
	if !st.Running {
		t.Fatalf("status = %+v, want running", st)
	}
	if got := c.ProjectRoot(); got != home+"/sites/app" {
		t.Errorf("ProjectRoot = %q, want %q", got, home+"/sites/app")
	}
	// Host dir equals the project root, so the container dir is the
	// container root exactly.
	if got := c.ContainerDir(); got != "/var/www/html" {
		t.Errorf("ContainerDir = %q, want /var/www/html", got)
	}
}

func TestRefreshComputesContainerDir(t *testing.T) {
	runner := &fakeRunner{output: describeJSON("running", "/home/u/app")}
	c, _ := newTestCache(runner)

	c.Refresh(context.Background(), "/home/u/app/wp-content/plugins/sync")
	want := "/var/www/html/wp-content/plugins/sync"
	if got := c.ContainerDir(); got != want {
		t.Errorf("ContainerDir = %q, want %q", got, want)
	}
}

func TestRefreshHitTracksWorkingDir(t *testing.T) {
	runner := &fakeRunner{output: describeJSON("running", "/home/u/app")}
	c, now := newTestCache(runner)

	c.Refresh(context.Background(), "/home/u/app/web")
	if got := c.ContainerDir(); got != "/var/www/html/web" {
		t.Fatalf("ContainerDir = %q, want /var/www/html/web", got)
	}

	// Within the window the agent moves to another directory: the cached
	// status is reused, but the container dir must follow the move.
	*now = now.Add(CacheDuration - time.Second)
	st := c.Refresh(context.Background(), "/home/u/app/wp-content")
	if !st.Running {
		t.Fatalf("status = %+v, want running from cache", st)
	}
	if runner.calls != 1 {
		t.Errorf("probe calls = %d, want 1 (cache hit)", runner.calls)
	}
	if got := c.ContainerDir(); got != "/var/www/html/wp-content" {
		t.Errorf("ContainerDir = %q, want /var/www/html/wp-content", got)
	}
}

func TestCacheEntrySurvivesProcessRestart(t *testing.T) {
	store := NewFileCacheStore(t.TempDir())
	runner := &fakeRunner{output: describeJSON("running", "/home/u/app")}

	first := NewCacheWithStore(runner.run, zerolog.Nop(), store)
	first.Refresh(context.Background(), "/home/u/app/web")
	if runner.calls != 1 {
		t.Fatalf("probe calls = %d, want 1", runner.calls)
	}

	// A fresh instance over the same store stands in for the next hook
	// process: within the window it must serve from the persisted entry.
	second := NewCacheWithStore(runner.run, zerolog.Nop(), store)
	st := second.Refresh(context.Background(), "/home/u/app/web")
	if !st.Available || !st.Running {
		t.Fatalf("status = %+v, want running from persisted entry", st)
	}
	if runner.calls != 1 {
		t.Errorf("probe calls = %d, want 1 (no re-probe after restart)", runner.calls)
	}
	if got := second.ProjectRoot(); got != "/home/u/app" {
		t.Errorf("ProjectRoot = %q, want /home/u/app", got)
	}
	if got := second.ContainerDir(); got != "/var/www/html/web" {
		t.Errorf("ContainerDir = %q, want /var/www/html/web", got)
	}
}

func TestCacheEntryClearedWhenNotRunning(t *testing.T) {
	store := NewFileCacheStore(t.TempDir())
	runner := &fakeRunner{output: describeJSON("running", "/home/u/app")}

	first := NewCacheWithStore(runner.run, zerolog.Nop(), store)
	first.Refresh(context.Background(), "/home/u/app")

	runner.output = describeJSON("stopped", "/home/u/app")
	first.Invalidate()
	st := first.Refresh(context.Background(), "/home/u/app")
	if st.Running {
		t.Fatalf("status = %+v, want stopped", st)
	}

	// The stopped result clears the persisted entry, so the next process
	// starts cold and probes.
	second := NewCacheWithStore(runner.run, zerolog.Nop(), store)
	second.Refresh(context.Background(), "/home/u/app")
	if runner.calls != 3 {
		t.Errorf("probe calls = %d, want 3 (no stale entry rehydrated)", runner.calls)
	}
}

func TestInvalidateForcesProbe(t *testing.T) {
	runner := &fakeRunner{output: describeJSON("running", "/home/u/app")}
	c, _ := newTestCache(runner)

	c.Refresh(context.Background(), "/home/u/app")
	c.Invalidate()
	c.Refresh(context.Background(), "/home/u/app")
	if runner.calls != 2 {
		t.Errorf("probe calls = %d, want 2 after Invalidate", runner.calls)
	}
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
)

type runLog struct {
	mu  sync.Mutex
	ids []string
}

func (r *runLog) fn(_ context.Context, runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, runID)
	return nil
}

func (r *runLog) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func startWatcher(t *testing.T, opts Options, fn RegenerateFunc) *Watcher {
	t.Helper()
	w, err := New(opts, fn)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}
	return w
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{DocsRoot: t.TempDir()}, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = New(Options{}, (&runLog{}).fn)
	require.Error(t, err)
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	docs := t.TempDir()
	runs := &runLog{}
	startWatcher(t, Options{DocsRoot: docs, Debounce: 100 * time.Millisecond}, runs.fn)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(docs, "README.md"), []byte{byte('a' + i)}, 0o600))
	}

	require.Eventually(t, func() bool { return runs.count() == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, runs.count(), "a burst yields one regeneration")

	_, err := uuid.Parse(runs.ids[0])
	assert.NoError(t, err, "run IDs are UUIDs")
}

func TestWatcher_ConfigFileAndNewDirectories(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	cfgPath := filepath.Join(root, "docsite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: \"1.0\"\n"), 0o600))

	runs := &runLog{}
	startWatcher(t, Options{ConfigPath: cfgPath, DocsRoot: docs, Debounce: 50 * time.Millisecond}, runs.fn)

	require.NoError(t, os.WriteFile(cfgPath, []byte("version: \"1.0\"\n# changed\n"), 0o600))
	require.Eventually(t, func() bool { return runs.count() == 1 }, 3*time.Second, 20*time.Millisecond)

	sub := filepath.Join(docs, "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.Eventually(t, func() bool { return runs.count() == 2 }, 3*time.Second, 20*time.Millisecond)

	// give the watcher time to register the new directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "1.md"), []byte("# One\n"), 0o600))
	require.Eventually(t, func() bool { return runs.count() == 3 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	out := filepath.Join(docs, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	cfgPath := filepath.Join(root, "docsite.yaml")

	runs := &runLog{}
	startWatcher(t, Options{ConfigPath: cfgPath, DocsRoot: docs, Ignore: []string{out}, Debounce: 50 * time.Millisecond}, runs.fn)

	require.NoError(t, os.WriteFile(filepath.Join(root, "other.yaml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(docs, ".hidden.md"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "page.md.swp"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(out, "config.json"), []byte("{}"), 0o600))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, runs.count())
}

func TestWatcher_SetIgnoreWhileRunning(t *testing.T) {
	docs := t.TempDir()
	out := filepath.Join(docs, "site")
	require.NoError(t, os.MkdirAll(out, 0o755))

	runs := &runLog{}
	w := startWatcher(t, Options{DocsRoot: docs, Debounce: 50 * time.Millisecond}, runs.fn)
	require.NoError(t, w.SetIgnore(out))

	require.NoError(t, os.WriteFile(filepath.Join(out, "config.json"), []byte("{}"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, runs.count())

	require.NoError(t, os.WriteFile(filepath.Join(docs, "page.md"), []byte("# Page\n"), 0o600))
	require.Eventually(t, func() bool { return runs.count() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestRunOnce_Serialized(t *testing.T) {
	var active, maxActive int32
	fn := func(context.Context, string) error {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	}
	w, err := New(Options{DocsRoot: t.TempDir()}, fn)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.RunOnce(context.Background()))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}

func TestShouldIgnore(t *testing.T) {
	for name, want := range map[string]bool{
		"README.md":    false,
		".README.md":   true,
		"page.md~":     true,
		"page.md.swp":  true,
		"#page.md#":    true,
		"x.md.123.tmp": true,
	} {
		assert.Equal(t, want, shouldIgnore(filepath.Join("/docs", name)), name)
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/a/b", "/a/b"))
	assert.True(t, within("/a/b", "/a/b/c.md"))
	assert.False(t, within("/a/b", "/a/bc"))
	assert.False(t, within("/a/b", "/a"))
}

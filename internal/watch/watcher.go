// Package watch regenerates outputs when the project file or the
// documentation sources change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// RegenerateFunc performs one regeneration. runID identifies the run in logs.
type RegenerateFunc func(ctx context.Context, runID string) error

// Options configure a Watcher.
type Options struct {
	// ConfigPath is the project file; its directory is watched for changes to it.
	ConfigPath string
	// DocsRoot is watched recursively when set.
	DocsRoot string
	// Ignore lists directories whose events are dropped (e.g. the output directory).
	Ignore   []string
	Debounce time.Duration
}

// Watcher coalesces filesystem events into serialized regenerations.
type Watcher struct {
	configPath string
	docsRoot   string
	debounce   time.Duration
	regenerate RegenerateFunc

	watcher *fsnotify.Watcher
	runs    chan struct{}
	ready   chan struct{}

	timerMu sync.Mutex
	timer   *time.Timer

	runMu sync.Mutex

	ignoreMu sync.RWMutex
	ignore   []string
}

// New creates a watcher. Nothing is watched until Run is called.
func New(opts Options, fn RegenerateFunc) (*Watcher, error) {
	if fn == nil {
		return nil, errors.ValidationError("regenerate callback is required").Build()
	}
	if opts.ConfigPath == "" && opts.DocsRoot == "" {
		return nil, errors.ValidationError("nothing to watch").Build()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w := &Watcher{
		debounce:   opts.Debounce,
		regenerate: fn,
		runs:       make(chan struct{}, 1),
		ready:      make(chan struct{}),
	}
	var err error
	if opts.ConfigPath != "" {
		if w.configPath, err = absPath(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	if opts.DocsRoot != "" {
		if w.docsRoot, err = absPath(opts.DocsRoot); err != nil {
			return nil, err
		}
	}
	if err := w.SetIgnore(opts.Ignore...); err != nil {
		return nil, err
	}
	return w, nil
}

// SetIgnore replaces the directories whose events are dropped. It is safe to
// call while Run is active, e.g. after the output directory moved.
func (w *Watcher) SetIgnore(dirs ...string) error {
	resolved := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := absPath(dir)
		if err != nil {
			return err
		}
		resolved = append(resolved, abs)
	}
	w.ignoreMu.Lock()
	w.ignore = resolved
	w.ignoreMu.Unlock()
	return nil
}

func (w *Watcher) ignored(name string) bool {
	w.ignoreMu.RLock()
	defer w.ignoreMu.RUnlock()
	for _, dir := range w.ignore {
		if within(dir, name) {
			return true
		}
	}
	return false
}

// Run watches until ctx is canceled. A regeneration already in progress is
// allowed to finish before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryWatch, "failed to create file watcher").Build()
	}
	w.watcher = fw
	defer func() {
		if err := fw.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	if w.configPath != "" {
		dir := filepath.Dir(w.configPath)
		if err := fw.Add(dir); err != nil {
			return errors.WrapError(err, errors.CategoryWatch, "failed to watch config directory").
				WithContext("dir", dir).
				Build()
		}
	}
	if w.docsRoot != "" {
		if _, err := os.Stat(w.docsRoot); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "docs root is not accessible").
				WithContext("dir", w.docsRoot).
				Build()
		}
		w.addDirsRecursive(w.docsRoot)
	}
	slog.Info("Watching for changes",
		slog.String("config", w.configPath),
		slog.String("docs_root", w.docsRoot),
		slog.Duration("debounce", w.debounce))

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.runLoop(loopCtx)
	}()
	defer wg.Wait()
	defer cancel()
	defer w.stopTimer()
	close(w.ready)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// Ready is closed once Run has registered its watches.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Trigger requests a regeneration after the debounce period.
func (w *Watcher) Trigger() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.runs <- struct{}{}:
		default:
			// a run is already pending
		}
	})
}

// RunOnce performs a regeneration immediately, serialized with watch-triggered runs.
func (w *Watcher) RunOnce(ctx context.Context) error {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID))
	start := time.Now()
	log.Info("Regenerating")
	if err := w.regenerate(ctx, runID); err != nil {
		log.Error("Regeneration failed", logfields.Error(err))
		return err
	}
	log.Info("Regenerated", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

func (w *Watcher) runLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.runs:
			_ = w.RunOnce(ctx)
		}
	}
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !w.relevant(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create && w.underDocs(ev.Name) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
		}
	}
	if ev.Op == fsnotify.Chmod {
		return
	}
	slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.Trigger()
}

func (w *Watcher) relevant(name string) bool {
	if w.ignored(name) {
		return false
	}
	if w.configPath != "" && name == w.configPath {
		return true
	}
	if !w.underDocs(name) {
		return false
	}
	return !shouldIgnore(name)
}

func (w *Watcher) underDocs(name string) bool {
	return w.docsRoot != "" && within(w.docsRoot, name)
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func within(dir, name string) bool {
	rel, err := filepath.Rel(dir, name)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// shouldIgnore drops hidden, editor swap and temp files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."), strings.HasPrefix(base, "#"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"), strings.HasSuffix(base, ".tmp"):
		return true
	}
	return false
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve path").
			WithContext("path", p).
			Build()
	}
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		return r, nil
	}
	return abs, nil
}

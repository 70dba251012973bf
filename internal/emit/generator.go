package emit

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
	"git.home.luguber.info/inful/docsitecfg/internal/metrics"
)

// Generator writes rendered formats into an output directory.
type Generator struct {
	dir      string
	clean    bool
	recorder metrics.Recorder
}

// NewGenerator creates a generator writing into dir.
func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir, recorder: metrics.NoopRecorder{}}
}

// WithClean removes stale files of known formats before writing.
func (g *Generator) WithClean(clean bool) *Generator {
	g.clean = clean
	return g
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// Generate renders every named format and writes it atomically. It returns the
// written paths in format order. Nothing is written if a format name is unknown
// or any format fails to render.
func (g *Generator) Generate(ctx context.Context, doc Document, formats []string) ([]string, error) {
	start := time.Now()
	paths, err := g.generate(ctx, doc, formats)
	g.recorder.ObserveGenerateDuration(time.Since(start))
	switch {
	case err == nil:
		g.recorder.IncGenerateOutcome(metrics.OutcomeSuccess)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		g.recorder.IncGenerateOutcome(metrics.OutcomeCanceled)
	default:
		g.recorder.IncGenerateOutcome(metrics.OutcomeFailed)
	}
	return paths, err
}

func (g *Generator) generate(ctx context.Context, doc Document, formats []string) ([]string, error) {
	if doc.Site == nil {
		return nil, errors.InternalError("no site configuration to render").Build()
	}
	if len(formats) == 0 {
		return nil, errors.ValidationError("no output formats selected").Build()
	}

	selected := make([]Format, 0, len(formats))
	for _, name := range formats {
		f, err := Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, f)
	}

	rendered := make([][]byte, len(selected))
	for i, f := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := f.Render(doc)
		if err != nil {
			return nil, err
		}
		rendered[i] = data
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("dir", g.dir).
			Build()
	}
	if g.clean {
		g.removeStale(selected)
	}

	paths := make([]string, 0, len(selected))
	for i, f := range selected {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(g.dir, f.FileName())
		if err := writeAtomic(path, rendered[i]); err != nil {
			return paths, err
		}
		g.recorder.IncFileWritten(f.Name())
		slog.Debug("Wrote output", logfields.Format(f.Name()), logfields.Path(path), slog.Int("bytes", len(rendered[i])))
		paths = append(paths, path)
	}
	return paths, nil
}

// removeStale deletes outputs of registered formats that were not selected.
func (g *Generator) removeStale(selected []Format) {
	keep := make(map[string]bool, len(selected))
	for _, f := range selected {
		keep[f.FileName()] = true
	}
	for _, name := range Names() {
		f, err := Get(name)
		if err != nil || keep[f.FileName()] {
			continue
		}
		path := filepath.Join(g.dir, f.FileName())
		if err := os.Remove(path); err == nil {
			slog.Info("Removed stale output", logfields.Path(path))
		} else if !os.IsNotExist(err) {
			slog.Warn("Failed to remove stale output", logfields.Path(path), logfields.Error(err))
		}
	}
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temp file").
			WithContext("path", path).
			Build()
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to close output").
			WithContext("path", path).
			Build()
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set output permissions").
			WithContext("path", path).
			Build()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to move output into place").
			WithContext("path", path).
			Build()
	}
	return nil
}

package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
	"git.home.luguber.info/inful/docsitecfg/internal/metrics"
	"git.home.luguber.info/inful/docsitecfg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string   `short:"o" help:"Output directory (overrides output.directory)"`
	Format []string `short:"f" help:"Output formats (overrides output.formats)" sep:","`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()
	return c.run(ctx, g, root)
}

func (c *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	p, err := loadProject(g, root)
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if p.cfg.Monitoring.Metrics.Enabled {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		srv := &http.Server{
			Addr:              p.cfg.Monitoring.Metrics.Address,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go serveMetrics(srv)
		defer shutdownMetrics(srv)
	}

	outputDir := func(p *project) string {
		if c.Output != "" {
			return c.Output
		}
		return p.cfg.Output.Directory
	}
	var w *watch.Watcher
	w, err = watch.New(watch.Options{
		ConfigPath: root.Config,
		DocsRoot:   p.cfg.Docs.Root,
		Ignore:     []string{outputDir(p)},
		Debounce:   p.cfg.Watch.DebounceDuration(),
	}, func(ctx context.Context, runID string) error {
		// the project file may have changed since the last run
		current, err := loadProject(g, root)
		if err != nil {
			return err
		}
		// output.directory may have moved; drop events from our own writes
		if err := w.SetIgnore(outputDir(current)); err != nil {
			return err
		}
		paths, err := generateOutputs(ctx, current, c.Output, c.Format, rec)
		if err != nil {
			return err
		}
		slog.Debug("Outputs written", logfields.RunID(runID), logfields.Count(len(paths)))
		return nil
	})
	if err != nil {
		return err
	}

	if err := w.RunOnce(ctx); err != nil && !errors.HasCategory(err, errors.CategoryFileSystem) {
		slog.Warn("Initial generation failed; waiting for changes", logfields.Error(err))
	} else if err != nil {
		return err
	}
	return w.Run(ctx)
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}

func serveMetrics(srv *http.Server) {
	slog.Info("Serving metrics", slog.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", logfields.Error(err))
	}
}

func shutdownMetrics(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("Metrics server shutdown error", logfields.Error(err))
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

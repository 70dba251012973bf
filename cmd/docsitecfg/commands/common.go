package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsitecfg/internal/config"
	"git.home.luguber.info/inful/docsitecfg/internal/docs"
	"git.home.luguber.info/inful/docsitecfg/internal/emit"
	"git.home.luguber.info/inful/docsitecfg/internal/gitinfo"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// Global carries process-wide dependencies into subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) stderr() io.Writer {
	if g == nil || g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

func (g *Global) getenv() func(string) string {
	if g == nil || g.Getenv == nil {
		return os.Getenv
	}
	return g.Getenv
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Project configuration file" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Write the site configuration in the configured formats"`
	Print    PrintCmd    `cmd:"" help:"Print the site configuration to stdout"`
	Check    CheckCmd    `cmd:"" help:"Check the site configuration (and documents, when a docs root is set)"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate whenever the project file or the documents change"`
	Init     InitCmd     `cmd:"" help:"Write an example project configuration file"`
	Info     VersionCmd  `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; sets up a default logger until the
// project file (with its logging section) is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(g.stderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	g.Logger = logger
	return nil
}

// project is a loaded project file together with the site it describes.
type project struct {
	cfg  *config.Config
	site *site.Config
	mode site.BuildMode
}

func loadProject(g *Global, root *CLI) (*project, error) {
	cfg, found, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(cfg.Monitoring.Logging, root.Verbose, g.stderr())
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	if !found {
		slog.Debug("No project file; using defaults", logfields.File(root.Config))
	}

	opts := cfg.SiteOptions(g.getenv())
	p := &project{cfg: cfg, site: site.Load(opts), mode: opts.Mode}
	slog.Debug("Loaded site configuration",
		logfields.Base(p.site.Base),
		logfields.Mode(p.mode.String()),
		slog.Bool("git", p.site.Theme.Plugins.Git))
	return p, nil
}

// document assembles the render input. Git metadata is collected only when the
// git plugin is enabled and a docs root is configured; a missing repository
// degrades to no metadata.
func (p *project) document(ctx context.Context) (emit.Document, error) {
	doc := emit.Document{Site: p.site}
	if !p.site.Theme.Plugins.Git || p.cfg.Docs.Root == "" {
		return doc, nil
	}

	collector, err := gitinfo.Open(p.cfg.Docs.Root)
	if err != nil {
		slog.Warn("Git metadata unavailable", logfields.Path(p.cfg.Docs.Root), logfields.Error(err))
		return doc, nil
	}
	collector.MaxCommits = p.cfg.Docs.MaxCommits
	pages, err := collector.Collect(ctx, p.cfg.Docs.Root, docs.Pages(docs.References(p.site)))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return doc, ctxErr
		}
		slog.Warn("Git metadata unavailable", logfields.Path(p.cfg.Docs.Root), logfields.Error(err))
		return doc, nil
	}
	doc.Pages = pages
	return doc, nil
}

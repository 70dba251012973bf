package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsitecfg/internal/emit"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
	"git.home.luguber.info/inful/docsitecfg/internal/metrics"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output string   `short:"o" help:"Output directory (overrides output.directory)"`
	Format []string `short:"f" help:"Output formats: json, yaml, hugo, head (overrides output.formats)" sep:","`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	p, err := loadProject(g, root)
	if err != nil {
		return err
	}
	paths, err := generateOutputs(ctx, p, c.Output, c.Format, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(g.stdout(), "Wrote %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

// generateOutputs renders the project into dir (or output.directory when
// empty) in formats (or output.formats when empty).
func generateOutputs(ctx context.Context, p *project, dir string, formats []string, rec metrics.Recorder) ([]string, error) {
	if dir == "" {
		dir = p.cfg.Output.Directory
	}
	if len(formats) == 0 {
		formats = p.cfg.Output.Formats
	}

	start := time.Now()
	doc, err := p.document(ctx)
	if err != nil {
		return nil, err
	}
	paths, err := emit.NewGenerator(dir).
		WithClean(p.cfg.Output.Clean).
		WithRecorder(rec).
		Generate(ctx, doc, formats)
	if err != nil {
		return nil, err
	}
	slog.Info("Generated site configuration",
		logfields.Path(dir),
		logfields.Count(len(paths)),
		logfields.Mode(p.mode.String()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return paths, nil
}

package commands

import (
	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/lint"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	DocsDir string `name:"docs-dir" short:"d" help:"Documents root to verify references against (overrides docs.root)"`
	Format  string `short:"f" default:"text" help:"Report format (text or json)" enum:"text,json"`
	Quiet   bool   `short:"q" help:"Only report errors"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	p, err := loadProject(g, root)
	if err != nil {
		return err
	}
	opts := lint.Options{DocsRoot: p.cfg.Docs.Root, Quiet: c.Quiet}
	if c.DocsDir != "" {
		opts.DocsRoot = c.DocsDir
	}

	result, err := lint.NewLinter().Check(p.site, opts)
	if err != nil {
		return err
	}
	if err := lint.NewFormatter(c.Format).Format(g.stdout(), result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.ValidationError("site configuration check failed").
			WithContext("errors", result.ErrorCount()).
			WithContext("warnings", result.WarningCount()).
			Build()
	}
	return nil
}

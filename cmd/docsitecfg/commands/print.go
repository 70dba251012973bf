package commands

import (
	"git.home.luguber.info/inful/docsitecfg/internal/emit"
)

// PrintCmd implements the 'print' command.
type PrintCmd struct {
	Format string `short:"f" default:"json" help:"Output format" enum:"json,yaml,hugo,head"`
}

func (c *PrintCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	p, err := loadProject(g, root)
	if err != nil {
		return err
	}
	f, err := emit.Get(c.Format)
	if err != nil {
		return err
	}
	doc, err := p.document(ctx)
	if err != nil {
		return err
	}
	data, err := f.Render(doc)
	if err != nil {
		return err
	}
	_, err = g.stdout().Write(data)
	return err
}

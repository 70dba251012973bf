package emit

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// headFormat renders the head tags as an HTML fragment, one element per line.
type headFormat struct{}

func (headFormat) Name() string     { return "head" }
func (headFormat) FileName() string { return "head.html" }

func (headFormat) Render(doc Document) ([]byte, error) {
	return RenderHead(doc.Site.Head)
}

// RenderHead renders tags as HTML elements.
func RenderHead(tags []site.HeadTag) ([]byte, error) {
	var buf bytes.Buffer
	for _, tag := range tags {
		if err := html.Render(&buf, headNode(tag)); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to render head tag").
				WithContext("tag", tag.Name).
				Build()
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func headNode(tag site.HeadTag) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag.Name,
		DataAtom: atom.Lookup([]byte(tag.Name)),
	}
	for _, a := range tag.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	return n
}

func init() { Register(headFormat{}) }

package docs

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
)

// Title returns the page title of the document rel under root: the frontmatter
// title when set, otherwise the first level-one heading, otherwise the file
// base name (the directory name for an index file).
func Title(root, rel string) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewError(errors.CategoryNotFound, "document not found").
				WithContext("path", rel).
				WithCause(err).
				Build()
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", rel).
			Build()
	}
	title, err := TitleOf(content)
	if err != nil || title != "" {
		return title, err
	}
	return fallbackTitle(rel), nil
}

func fallbackTitle(rel string) string {
	name := path.Base(rel)
	if name == indexFile {
		if dir := path.Base(path.Dir(rel)); dir != "." && dir != "/" {
			return dir
		}
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// TitleOf extracts the title from document content; "" when the document
// declares none.
func TitleOf(content []byte) (string, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter").Build()
	}
	if len(fm) > 0 {
		var meta struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return "", errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter").Build()
		}
		if t := strings.TrimSpace(meta.Title); t != "" {
			return t, nil
		}
	}
	return firstHeading(body), nil
}

func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		var buf bytes.Buffer
		collectText(h, body, &buf)
		title = strings.TrimSpace(buf.String())
		return gmast.WalkStop, nil
	})
	return title
}

func collectText(n gmast.Node, source []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			collectText(c, source, buf)
		}
	}
}

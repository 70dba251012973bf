package emit

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/gitinfo"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// userConfig is the builder-facing document: the site configuration plus
// optional page metadata.
type userConfig struct {
	site.Config `yaml:",inline"`
	PageMeta    map[string]gitinfo.PageInfo `json:"pageMeta,omitempty" yaml:"pageMeta,omitempty"`
}

func newUserConfig(doc Document) userConfig {
	return userConfig{Config: *doc.Site, PageMeta: doc.Pages}
}

type jsonFormat struct{}

func (jsonFormat) Name() string     { return "json" }
func (jsonFormat) FileName() string { return "config.json" }

func (jsonFormat) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newUserConfig(doc)); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to marshal json config").Build()
	}
	return buf.Bytes(), nil
}

type yamlFormat struct{}

func (yamlFormat) Name() string     { return "yaml" }
func (yamlFormat) FileName() string { return "config.yaml" }

func (yamlFormat) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newUserConfig(doc)); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to marshal yaml config").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to flush yaml config").Build()
	}
	return buf.Bytes(), nil
}

func init() {
	Register(jsonFormat{})
	Register(yamlFormat{})
}

package emit

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// hugoFormat writes a multilingual hugo.yaml carrying the same navigation.
type hugoFormat struct{}

func (hugoFormat) Name() string     { return "hugo" }
func (hugoFormat) FileName() string { return "hugo.yaml" }

func (hugoFormat) Render(doc Document) ([]byte, error) {
	cfg := doc.Site
	prefixes := make([]string, 0, len(cfg.Locales))
	for p := range cfg.Locales {
		prefixes = append(prefixes, p)
	}
	// the root locale comes first and becomes the default content language
	sort.Slice(prefixes, func(i, j int) bool {
		if (prefixes[i] == site.LocaleEN) != (prefixes[j] == site.LocaleEN) {
			return prefixes[i] == site.LocaleEN
		}
		return prefixes[i] < prefixes[j]
	})

	languages := map[string]any{}
	mounts := make([]map[string]any, 0, len(prefixes))
	var defaultLang string
	for i, prefix := range prefixes {
		meta := cfg.Locales[prefix]
		key, err := LanguageKey(meta.Lang)
		if err != nil {
			return nil, err
		}
		if _, dup := languages[key]; dup {
			return nil, errors.RenderError("two locales map to the same hugo language").
				WithContext("language", key).
				Build()
		}
		if i == 0 {
			defaultLang = key
		}
		languages[key] = hugoLanguage(cfg, prefix, meta, i+1)
		mounts = append(mounts, contentMount(cfg.Theme.DocsDir, prefix, key, prefixes))
	}

	root := map[string]any{
		"baseURL":                        cfg.Base,
		"title":                          cfg.Locales[prefixes[0]].Title,
		"languageCode":                   cfg.Locales[prefixes[0]].Lang,
		"defaultContentLanguage":         defaultLang,
		"defaultContentLanguageInSubdir": false,
		"enableGitInfo":                  cfg.Theme.Plugins.Git,
		"languages":                      languages,
		"module":                         map[string]any{"mounts": mounts},
		"params": map[string]any{
			"head":            cfg.Head,
			"repo":            cfg.Theme.Repo,
			"docsDir":         cfg.Theme.DocsDir,
			"colorModeSwitch": cfg.Theme.ColorModeSwitch,
		},
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to marshal hugo config").Build()
	}
	return data, nil
}

func hugoLanguage(cfg *site.Config, prefix string, meta site.LocaleMeta, weight int) map[string]any {
	theme := cfg.Theme.Locales[prefix]

	menu := make([]map[string]any, 0, len(theme.Navbar))
	for i, l := range theme.Navbar {
		menu = append(menu, map[string]any{"name": l.Text, "url": l.Link, "weight": (i + 1) * 10})
	}

	params := map[string]any{
		"description": meta.Description,
		"sidebar":     theme.Sidebar,
		"ui":          theme,
	}

	lang := map[string]any{
		"languageCode": meta.Lang,
		"title":        meta.Title,
		"weight":       weight,
		"menus":        map[string]any{"main": menu},
		"params":       params,
	}
	if theme.SelectLanguageName != "" {
		lang["languageName"] = theme.SelectLanguageName
	}
	return lang
}

// contentMount mounts the locale's content directory for language key. The
// root locale's directory contains the other locales' directories, which it
// excludes so no page is published in two languages.
func contentMount(docsDir, prefix, key string, prefixes []string) map[string]any {
	mount := map[string]any{
		"source": localeDir(docsDir, prefix),
		"target": "content",
		"lang":   key,
	}
	if prefix != site.LocaleEN {
		return mount
	}
	var exclude []string
	for _, p := range prefixes {
		if p != site.LocaleEN {
			exclude = append(exclude, strings.Trim(p, "/")+"/**")
		}
	}
	if len(exclude) > 0 {
		mount["excludeFiles"] = exclude
	}
	return mount
}

func localeDir(docsDir, prefix string) string {
	if prefix == site.LocaleEN {
		return docsDir
	}
	return docsDir + "/" + strings.Trim(prefix, "/")
}

// LanguageKey derives the short language key ("en", "zh") from a BCP 47 tag.
func LanguageKey(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryValidation, "invalid language tag").
			WithContext("tag", tag).
			Build()
	}
	base, _ := t.Base()
	return base.String(), nil
}

func init() { Register(hugoFormat{}) }

package docs

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// Source tells where a reference was declared.
type Source string

const (
	SourceNavbar  Source = "navbar"
	SourceSidebar Source = "sidebar"
)

// indexFile is the document served for a directory link.
const indexFile = "README.md"

// Reference is one navigation target of a locale.
type Reference struct {
	Locale  string
	Source  Source
	Section string // sidebar section prefix; empty for navbar links
	Group   string // sidebar group heading
	Label   string
	Target  string // as authored
	Path    string // slash path of the document relative to the docs root
}

// References lists every navbar and sidebar target of cfg, ordered by locale,
// then navbar before sidebar, then declaration order.
func References(cfg *site.Config) []Reference {
	locales := make([]string, 0, len(cfg.Theme.Locales))
	for k := range cfg.Theme.Locales {
		locales = append(locales, k)
	}
	sort.Strings(locales)

	var refs []Reference
	for _, locale := range locales {
		loc := cfg.Theme.Locales[locale]
		for _, l := range loc.Navbar {
			refs = append(refs, Reference{
				Locale: locale, Source: SourceNavbar,
				Label: l.Text, Target: l.Link, Path: ResolveLink(l.Link),
			})
		}
		for _, section := range loc.SidebarSections() {
			for _, g := range loc.Sidebar[section] {
				for _, e := range g.Children {
					refs = append(refs, Reference{
						Locale: locale, Source: SourceSidebar, Section: section, Group: g.Text,
						Label: e.Label(), Target: e.Path(), Path: ResolveEntry(section, e),
					})
				}
			}
		}
	}
	return refs
}

// Walk groups the references of cfg by locale prefix.
func Walk(cfg *site.Config) map[string][]Reference {
	out := make(map[string][]Reference, len(cfg.Theme.Locales))
	for _, r := range References(cfg) {
		out[r.Locale] = append(out[r.Locale], r)
	}
	return out
}

// Pages returns the distinct document paths of refs, sorted.
func Pages(refs []Reference) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Path == "" {
			continue
		}
		if _, ok := seen[r.Path]; ok {
			continue
		}
		seen[r.Path] = struct{}{}
		out = append(out, r.Path)
	}
	sort.Strings(out)
	return out
}

// ResolveLink maps a site link such as "/zh/guide/" or "/guide/intro.html"
// onto the Markdown document serving it. External links resolve to "".
func ResolveLink(link string) string {
	if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		return ""
	}
	if i := strings.IndexAny(link, "#?"); i >= 0 {
		link = link[:i]
	}
	p := strings.TrimPrefix(link, "/")
	if p == "" || strings.HasSuffix(p, "/") {
		return p + indexFile
	}
	switch path.Ext(p) {
	case ".md":
		return p
	case ".html":
		return strings.TrimSuffix(p, ".html") + ".md"
	default:
		return p + ".md"
	}
}

// ResolveEntry maps a sidebar entry declared under section onto a document path.
// Bare entries are relative to the section unless they are absolute.
func ResolveEntry(section string, e site.SidebarEntry) string {
	if e.IsLink() || strings.HasPrefix(e.Path(), "/") {
		return ResolveLink(e.Path())
	}
	return ResolveLink(path.Join(section, e.Path()))
}

// Exists reports whether the document rel exists under root.
func Exists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

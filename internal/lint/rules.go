package lint

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsitecfg/internal/docs"
	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// Rule checks one property of a site configuration.
type Rule interface {
	// Name returns the issue code reported by this rule.
	Name() string
	Check(cfg *site.Config, opts Options) ([]Issue, error)
}

// LocaleRule requires the site and the theme to declare the same locale prefixes.
type LocaleRule struct{}

func (LocaleRule) Name() string { return CodeLocaleMismatch }

func (r LocaleRule) Check(cfg *site.Config, _ Options) ([]Issue, error) {
	var issues []Issue
	for _, p := range sortedKeys(cfg.Locales) {
		if _, ok := cfg.Theme.Locales[p]; !ok {
			issues = append(issues, Issue{
				Code: r.Name(), Severity: SeverityError,
				Location: "locales." + p,
				Message:  fmt.Sprintf("locale %q has no theme configuration", p),
				Fix:      "add the locale under theme.locales",
			})
		}
	}
	for _, p := range sortedKeys(cfg.Theme.Locales) {
		if _, ok := cfg.Locales[p]; !ok {
			issues = append(issues, Issue{
				Code: r.Name(), Severity: SeverityError,
				Location: "theme.locales." + p,
				Message:  fmt.Sprintf("theme locale %q has no site metadata", p),
				Fix:      "add the locale under locales",
			})
		}
	}
	return issues, nil
}

// LinkPrefixRule requires every navbar and sidebar link of a locale to stay
// under that locale's prefix, and root-locale links to stay out of the others.
type LinkPrefixRule struct{}

func (LinkPrefixRule) Name() string { return CodeLinkPrefix }

func (r LinkPrefixRule) Check(cfg *site.Config, _ Options) ([]Issue, error) {
	var others []string
	for p := range cfg.Theme.Locales {
		if p != site.LocaleEN {
			others = append(others, p)
		}
	}
	sort.Strings(others)

	var issues []Issue
	for _, p := range sortedKeys(cfg.Theme.Locales) {
		loc := cfg.Theme.Locales[p]
		check := func(where, link string) {
			if isExternal(link) {
				return
			}
			if msg := prefixViolation(p, others, link); msg != "" {
				issues = append(issues, Issue{
					Code: r.Name(), Severity: SeverityError,
					Location: "theme.locales." + p + "." + where,
					Message:  msg,
				})
			}
		}
		for i, l := range loc.Navbar {
			check(fmt.Sprintf("navbar[%d]", i), l.Link)
		}
		for _, section := range loc.SidebarSections() {
			check("sidebar."+section, section)
			for gi, g := range loc.Sidebar[section] {
				for ci, e := range g.Children {
					if e.IsLink() {
						check(fmt.Sprintf("sidebar.%s[%d].children[%d]", section, gi, ci), e.Path())
					}
				}
			}
		}
	}
	return issues, nil
}

func prefixViolation(locale string, others []string, link string) string {
	if locale != site.LocaleEN {
		if !strings.HasPrefix(link, locale) {
			return fmt.Sprintf("link %q does not start with %q", link, locale)
		}
		return ""
	}
	for _, o := range others {
		if strings.HasPrefix(link, o) {
			return fmt.Sprintf("root locale link %q points into locale %q", link, o)
		}
	}
	return ""
}

func isExternal(link string) bool {
	return strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:")
}

// LangRule requires every lang attribute to be a well-formed BCP 47 tag.
type LangRule struct{}

func (LangRule) Name() string { return CodeInvalidLang }

func (r LangRule) Check(cfg *site.Config, _ Options) ([]Issue, error) {
	var issues []Issue
	check := func(where, tag string) {
		if _, err := language.Parse(tag); err != nil {
			issues = append(issues, Issue{
				Code: r.Name(), Severity: SeverityError,
				Location: where,
				Message:  fmt.Sprintf("language tag %q is not valid: %v", tag, err),
				Fix:      "use a BCP 47 tag such as en-US or zh-CN",
			})
		}
	}
	check("lang", cfg.Lang)
	for _, p := range sortedKeys(cfg.Locales) {
		check("locales."+p+".lang", cfg.Locales[p].Lang)
	}
	return issues, nil
}

// FaviconRule requires exactly one 16x16 and one 32x32 icon link resolved
// against the base path.
type FaviconRule struct{}

func (FaviconRule) Name() string { return CodeHeadFavicon }

func (r FaviconRule) Check(cfg *site.Config, _ Options) ([]Issue, error) {
	var issues []Issue
	counts := map[string]int{"16x16": 0, "32x32": 0}
	for i, tag := range cfg.Head {
		if tag.Name != "link" {
			continue
		}
		if rel, _ := tag.Get("rel"); rel != "icon" {
			continue
		}
		sizes, _ := tag.Get("sizes")
		if _, ok := counts[sizes]; ok {
			counts[sizes]++
		}
		if href, _ := tag.Get("href"); !strings.HasPrefix(href, cfg.Base) || strings.Contains(href, "${") {
			issues = append(issues, Issue{
				Code: r.Name(), Severity: SeverityError,
				Location: fmt.Sprintf("head[%d]", i),
				Message:  fmt.Sprintf("favicon href %q is not under base %q", href, cfg.Base),
			})
		}
	}
	for _, size := range []string{"16x16", "32x32"} {
		if n := counts[size]; n != 1 {
			issues = append(issues, Issue{
				Code: r.Name(), Severity: SeverityError,
				Location: "head",
				Message:  fmt.Sprintf("expected exactly one %s favicon, found %d", size, n),
			})
		}
	}
	return issues, nil
}

// DocumentRule requires every referenced document to exist under the docs root
// and warns about documents without a declared title.
type DocumentRule struct{}

func (DocumentRule) Name() string { return CodeMissingDocument }

func (r DocumentRule) Check(cfg *site.Config, opts Options) ([]Issue, error) {
	if opts.DocsRoot == "" {
		return nil, nil
	}
	var issues []Issue
	seen := map[string]bool{}
	for _, ref := range docs.References(cfg) {
		if ref.Path == "" || seen[ref.Path] {
			continue
		}
		seen[ref.Path] = true
		where := "theme.locales." + ref.Locale + "." + string(ref.Source)
		if ref.Section != "" {
			where += "." + ref.Section
		}
		if !docs.Exists(opts.DocsRoot, ref.Path) {
			issues = append(issues, Issue{
				Code: r.Name(), Severity: SeverityError,
				Location: where,
				Message:  fmt.Sprintf("%q resolves to missing document %s", ref.Target, ref.Path),
				Fix:      "create the document or fix the link",
			})
			continue
		}
		title, err := declaredTitle(opts.DocsRoot, ref.Path)
		if err != nil {
			if !errors.HasCategory(err, errors.CategoryValidation) {
				return nil, err
			}
			issues = append(issues, Issue{
				Code: CodeInvalidFrontmatter, Severity: SeverityError,
				Location: where,
				Message:  fmt.Sprintf("document %s: %s", ref.Path, frontmatterProblem(err)),
				Fix:      "close the frontmatter with a --- line and check its YAML syntax",
			})
			continue
		}
		if title == "" {
			issues = append(issues, Issue{
				Code: CodeEmptyTitle, Severity: SeverityWarning,
				Location: where,
				Message:  fmt.Sprintf("document %s has no title", ref.Path),
				Fix:      "add a title to the frontmatter or a level-one heading",
			})
		}
	}
	return issues, nil
}

func frontmatterProblem(err error) string {
	if stderrors.Is(err, docs.ErrMissingClosingDelimiter) {
		return "frontmatter has no closing delimiter"
	}
	return "frontmatter is not valid YAML"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

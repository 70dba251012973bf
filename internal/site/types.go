package site

// Config is the top-level site configuration handed to the external site builder.
// It is built once by Load and never mutated afterward.
type Config struct {
	Lang    string                `json:"lang" yaml:"lang"`
	Base    string                `json:"base" yaml:"base"`
	Bundler Adapter               `json:"bundler" yaml:"bundler"`
	Theme   ThemeConfig           `json:"theme" yaml:"theme"`
	Locales map[string]LocaleMeta `json:"locales" yaml:"locales"`
	Head    []HeadTag             `json:"head" yaml:"head"`
}

// Adapter is an opaque reference to an external builder capability (bundler or theme).
// Only the name travels; the builder resolves it.
type Adapter struct {
	Name string `json:"name" yaml:"name"`
}

// LocaleMeta holds the page metadata of a single locale.
type LocaleMeta struct {
	Lang        string `json:"lang" yaml:"lang"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ThemeConfig carries the theme adapter and its options.
type ThemeConfig struct {
	Adapter         Adapter                      `json:"adapter" yaml:"adapter"`
	Repo            string                       `json:"repo" yaml:"repo"`
	DocsDir         string                       `json:"docsDir" yaml:"docsDir"`
	ColorModeSwitch bool                         `json:"colorModeSwitch" yaml:"colorModeSwitch"`
	Locales         map[string]ThemeLocaleConfig `json:"locales" yaml:"locales"`
	Plugins         ThemePlugins                 `json:"themePlugins" yaml:"themePlugins"`
}

// ThemePlugins toggles theme features.
type ThemePlugins struct {
	// Git enables version-control derived page metadata (last updated, contributors).
	Git bool `json:"git" yaml:"git"`
}

// ThemeLocaleConfig holds the per-locale UI strings and navigation of the theme.
type ThemeLocaleConfig struct {
	Navbar  []NavLink                 `json:"navbar" yaml:"navbar"`
	Sidebar map[string][]SidebarGroup `json:"sidebar" yaml:"sidebar"`

	SelectLanguageText      string `json:"selectLanguageText,omitempty" yaml:"selectLanguageText,omitempty"`
	SelectLanguageName      string `json:"selectLanguageName,omitempty" yaml:"selectLanguageName,omitempty"`
	SelectLanguageAriaLabel string `json:"selectLanguageAriaLabel,omitempty" yaml:"selectLanguageAriaLabel,omitempty"`

	EditLinkText     string `json:"editLinkText,omitempty" yaml:"editLinkText,omitempty"`
	LastUpdatedText  string `json:"lastUpdatedText,omitempty" yaml:"lastUpdatedText,omitempty"`
	ContributorsText string `json:"contributorsText,omitempty" yaml:"contributorsText,omitempty"`

	// custom containers
	Tip     string `json:"tip,omitempty" yaml:"tip,omitempty"`
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
	Danger  string `json:"danger,omitempty" yaml:"danger,omitempty"`

	// 404 page
	NotFound   []string `json:"notFound,omitempty" yaml:"notFound,omitempty"`
	BackToHome string   `json:"backToHome,omitempty" yaml:"backToHome,omitempty"`
}

// NavLink is a labelled link used by the navbar and by sidebar children.
type NavLink struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SidebarGroup is a headed group of sidebar entries.
type SidebarGroup struct {
	Text     string         `json:"text" yaml:"text"`
	Children []SidebarEntry `json:"children" yaml:"children"`
}

// Links returns every NavLink of the locale (navbar first, then sidebar children
// with an explicit link, in section order).
func (l ThemeLocaleConfig) Links() []NavLink {
	out := make([]NavLink, 0, len(l.Navbar))
	out = append(out, l.Navbar...)
	for _, section := range sortedKeys(l.Sidebar) {
		for _, g := range l.Sidebar[section] {
			for _, c := range g.Children {
				if c.IsLink() {
					out = append(out, *c.link)
				}
			}
		}
	}
	return out
}

// SidebarSections returns the sidebar section prefixes in sorted order.
func (l ThemeLocaleConfig) SidebarSections() []string { return sortedKeys(l.Sidebar) }

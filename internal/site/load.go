package site

import "strings"

const (
	SiteTitle  = "MoneyPrinterTurbo"
	ThemeColor = "#3eaf7c"

	DefaultBase    = "money-printer-turbo"
	DefaultRepo    = "harry0703/MoneyPrinterTurbo/sites"
	DefaultDocsDir = "docs"

	// LocaleEN and LocaleZH are the URL path prefixes of the two locales.
	LocaleEN = "/"
	LocaleZH = "/zh/"
)

// Options parameterize Load. The zero value yields the canonical site.
type Options struct {
	Base    string // path segment the site is served under; "" means DefaultBase
	Repo    string
	DocsDir string
	Mode    BuildMode
}

// Default loads the canonical configuration, reading the build mode from
// ModeEnvVar through getenv (typically os.Getenv).
func Default(getenv func(string) string) *Config {
	return Load(Options{Mode: ResolveBuildMode(getenv(ModeEnvVar))})
}

// Load assembles the site configuration. It performs no validation and
// has no side effects.
func Load(opts Options) *Config {
	if opts.Base == "" {
		opts.Base = DefaultBase
	}
	if opts.Repo == "" {
		opts.Repo = DefaultRepo
	}
	if opts.DocsDir == "" {
		opts.DocsDir = DefaultDocsDir
	}
	base := NormalizeBase(opts.Base)

	return &Config{
		Lang:    "zh-CN",
		Base:    base,
		Bundler: Adapter{Name: "vite"},
		Theme: ThemeConfig{
			Adapter:         Adapter{Name: "default"},
			Repo:            opts.Repo,
			DocsDir:         opts.DocsDir,
			ColorModeSwitch: false,
			Locales: map[string]ThemeLocaleConfig{
				LocaleEN: englishTheme(),
				LocaleZH: chineseTheme(),
			},
			// git metadata is only collected for production builds
			Plugins: ThemePlugins{Git: opts.Mode.IsProduction()},
		},
		Locales: map[string]LocaleMeta{
			LocaleEN: {
				Lang:        "en-US",
				Title:       SiteTitle,
				Description: "Generate short videos with one click using AI LLM.",
			},
			LocaleZH: {
				Lang:        "zh-CN",
				Title:       SiteTitle,
				Description: "利用AI大模型，一键生成高清短视频。",
			},
		},
		Head: HeadTags(base),
	}
}

// NormalizeBase turns a path segment such as "docs" or "/docs" into "/docs/".
// An empty or root value yields "/".
func NormalizeBase(base string) string {
	trimmed := strings.Trim(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

func englishTheme() ThemeLocaleConfig {
	return ThemeLocaleConfig{
		Navbar: []NavLink{
			{Text: "Guide", Link: "/guide/"},
			{Text: "Components", Link: "/components/"},
		},
		SelectLanguageText:      "Languages",
		SelectLanguageName:      "English",
		SelectLanguageAriaLabel: "Select language",
		Sidebar: map[string][]SidebarGroup{
			"/guide/":      GuideSidebar("Guide", "Advanced"),
			"/components/": ComponentsSidebar("Components", "Advanced"),
		},
		EditLinkText: "Edit this page on GitHub",
	}
}

func chineseTheme() ThemeLocaleConfig {
	return ThemeLocaleConfig{
		Navbar: []NavLink{
			{Text: "指南", Link: "/zh/guide/"},
			{Text: "组件", Link: "/zh/components/"},
		},
		SelectLanguageText:      "选择语言",
		SelectLanguageName:      "简体中文",
		SelectLanguageAriaLabel: "选择语言",
		Sidebar: map[string][]SidebarGroup{
			"/zh/guide/":      GuideSidebar("指南", "深入"),
			"/zh/components/": ComponentsSidebar("组件", "高级"),
		},
		EditLinkText:     "在 GitHub 上编辑此页",
		LastUpdatedText:  "上次更新",
		ContributorsText: "贡献者",
		Tip:              "提示",
		Warning:          "注意",
		Danger:           "警告",
		NotFound: []string{
			"这里什么都没有",
			"我们怎么到这来了？",
			"这是一个 404 页面",
			"看起来我们进入了错误的链接",
		},
		BackToHome: "返回首页",
	}
}

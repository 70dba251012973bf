package emit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/gitinfo"
	"git.home.luguber.info/inful/docsitecfg/internal/metrics"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

func testDoc(mode site.BuildMode) Document {
	return Document{Site: site.Load(site.Options{Mode: mode})}
}

func TestNames_BuiltinFormats(t *testing.T) {
	assert.Equal(t, []string{"head", "hugo", "json", "yaml"}, Names())
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("toml")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	f, err := Get(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, "config.json", f.FileName())
}

func TestJSONFormat_Shape(t *testing.T) {
	data, err := jsonFormat{}.Render(testDoc(site.ModeProduction))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "zh-CN", got["lang"])
	assert.Equal(t, "/money-printer-turbo/", got["base"])
	assert.NotContains(t, got, "pageMeta")

	theme := got["theme"].(map[string]any)
	assert.Equal(t, true, theme["themePlugins"].(map[string]any)["git"])
	assert.Equal(t, "harry0703/MoneyPrinterTurbo/sites", theme["repo"])

	head := got["head"].([]any)
	require.Len(t, head, 11)
	first := head[0].([]any)
	assert.Equal(t, "link", first[0])
	assert.Equal(t, "/money-printer-turbo/icons/favicon-16x16.png", first[1].(map[string]any)["href"])

	assert.NotContains(t, string(data), `<`, "html escaping is disabled")
}

func TestJSONFormat_Deterministic(t *testing.T) {
	a, err := jsonFormat{}.Render(testDoc(site.ModeDevelopment))
	require.NoError(t, err)
	b, err := jsonFormat{}.Render(testDoc(site.ModeDevelopment))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJSONFormat_PageMeta(t *testing.T) {
	doc := testDoc(site.ModeProduction)
	doc.Pages = map[string]gitinfo.PageInfo{
		"guide/README.md": {
			UpdatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Contributors: []gitinfo.Contributor{{Name: "alice", Email: "alice@example.com", Commits: 2}},
		},
	}
	data, err := jsonFormat{}.Render(doc)
	require.NoError(t, err)

	var got struct {
		PageMeta map[string]gitinfo.PageInfo `json:"pageMeta"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Contains(t, got.PageMeta, "guide/README.md")
	assert.Equal(t, 2, got.PageMeta["guide/README.md"].Contributors[0].Commits)
	assert.Contains(t, string(data), `"updatedTime": "2024-03-01T10:00:00Z"`)
}

func TestYAMLFormat_Shape(t *testing.T) {
	data, err := yamlFormat{}.Render(testDoc(site.ModeDevelopment))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "/money-printer-turbo/", got["base"])
	theme := got["theme"].(map[string]any)
	assert.Equal(t, false, theme["themePlugins"].(map[string]any)["git"])

	locales := theme["locales"].(map[string]any)
	zh := locales["/zh/"].(map[string]any)
	sidebar := zh["sidebar"].(map[string]any)
	guide := sidebar["/zh/guide/"].([]any)
	children := guide[0].(map[string]any)["children"].([]any)
	assert.Equal(t, "README.md", children[0])
}

func TestHugoFormat(t *testing.T) {
	data, err := hugoFormat{}.Render(testDoc(site.ModeProduction))
	require.NoError(t, err)

	var got struct {
		BaseURL                string         `yaml:"baseURL"`
		DefaultContentLanguage string         `yaml:"defaultContentLanguage"`
		EnableGitInfo          bool           `yaml:"enableGitInfo"`
		Languages              map[string]any `yaml:"languages"`
	}
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "/money-printer-turbo/", got.BaseURL)
	assert.Equal(t, "en", got.DefaultContentLanguage)
	assert.True(t, got.EnableGitInfo)
	require.Len(t, got.Languages, 2)

	en := got.Languages["en"].(map[string]any)
	zh := got.Languages["zh"].(map[string]any)
	assert.Equal(t, 1, en["weight"])
	assert.Equal(t, 2, zh["weight"])
	assert.NotContains(t, en, "contentDir")
	assert.NotContains(t, zh, "contentDir")
	assert.Equal(t, "简体中文", zh["languageName"])

	menu := zh["menus"].(map[string]any)["main"].([]any)
	require.Len(t, menu, 2)
	assert.Equal(t, "指南", menu[0].(map[string]any)["name"])
	assert.Equal(t, "/zh/guide/", menu[0].(map[string]any)["url"])
}

type hugoMount struct {
	Source       string   `yaml:"source"`
	Target       string   `yaml:"target"`
	Lang         string   `yaml:"lang"`
	ExcludeFiles []string `yaml:"excludeFiles"`
}

func TestHugoFormat_LanguageContentIsDisjoint(t *testing.T) {
	data, err := hugoFormat{}.Render(testDoc(site.ModeProduction))
	require.NoError(t, err)

	var got struct {
		Module struct {
			Mounts []hugoMount `yaml:"mounts"`
		} `yaml:"module"`
	}
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Equal(t, []hugoMount{
		{Source: "docs", Target: "content", Lang: "en", ExcludeFiles: []string{"zh/**"}},
		{Source: "docs/zh", Target: "content", Lang: "zh"},
	}, got.Module.Mounts)

	// a mount nested inside another must be excluded from the outer one
	for _, outer := range got.Module.Mounts {
		for _, inner := range got.Module.Mounts {
			rel, nested := strings.CutPrefix(inner.Source, outer.Source+"/")
			if !nested {
				continue
			}
			assert.Contains(t, outer.ExcludeFiles, rel+"/**", "%s overlaps %s", outer.Lang, inner.Lang)
		}
	}
}

func TestHugoFormat_GitFlagFollowsMode(t *testing.T) {
	data, err := hugoFormat{}.Render(testDoc(site.ModeDevelopment))
	require.NoError(t, err)
	assert.Contains(t, string(data), "enableGitInfo: false")
}

func TestLanguageKey(t *testing.T) {
	for tag, want := range map[string]string{"en-US": "en", "zh-CN": "zh", "pt": "pt"} {
		got, err := LanguageKey(tag)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := LanguageKey("not a tag!")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRenderHead_Golden(t *testing.T) {
	data, err := RenderHead(site.HeadTags("/docs/"))
	require.NoError(t, err)

	want := strings.Join([]string{
		`<link rel="icon" type="image/png" sizes="16x16" href="/docs/icons/favicon-16x16.png"/>`,
		`<link rel="icon" type="image/png" sizes="32x32" href="/docs/icons/favicon-32x32.png"/>`,
		`<meta name="application-name" content="MoneyPrinterTurbo"/>`,
		`<meta name="apple-mobile-web-app-title" content="MoneyPrinterTurbo"/>`,
		`<meta name="apple-mobile-web-app-capable" content="yes"/>`,
		`<meta name="apple-mobile-web-app-status-bar-style" content="black"/>`,
		`<link rel="apple-touch-icon" href="/docs/icons/apple-touch-icon-152x152.png"/>`,
		`<link rel="mask-icon" href="/docs/icons/safari-pinned-tab.svg" color="#3eaf7c"/>`,
		`<meta name="msapplication-TileImage" content="/docs/icons/msapplication-icon-144x144.png"/>`,
		`<meta name="msapplication-TileColor" content="#000000"/>`,
		`<meta name="theme-color" content="#3eaf7c"/>`,
	}, "\n") + "\n"
	assert.Equal(t, want, string(data))
}

func TestRenderHead_EscapesAttributes(t *testing.T) {
	data, err := RenderHead([]site.HeadTag{{Name: "meta", Attrs: []site.Attr{{Key: "content", Value: `a"b<c`}}}})
	require.NoError(t, err)
	assert.Equal(t, "<meta content=\"a&#34;b&lt;c\"/>\n", string(data))
}

type countingRecorder struct {
	metrics.NoopRecorder
	outcomes []metrics.Outcome
	written  []string
}

func (r *countingRecorder) IncGenerateOutcome(o metrics.Outcome) { r.outcomes = append(r.outcomes, o) }
func (r *countingRecorder) IncFileWritten(f string)              { r.written = append(r.written, f) }

func TestGenerator_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rec := &countingRecorder{}
	g := NewGenerator(dir).WithRecorder(rec)

	paths, err := g.Generate(context.Background(), testDoc(site.ModeDevelopment), []string{"json", "head"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "config.json"), filepath.Join(dir, "head.html")}, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, []metrics.Outcome{metrics.OutcomeSuccess}, rec.outcomes)
	assert.Equal(t, []string{"json", "head"}, rec.written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files are left behind")
}

func TestGenerator_UnknownFormatWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rec := &countingRecorder{}
	_, err := NewGenerator(dir).WithRecorder(rec).
		Generate(context.Background(), testDoc(site.ModeDevelopment), []string{"json", "toml"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	assert.NoDirExists(t, dir)
	assert.Equal(t, []metrics.Outcome{metrics.OutcomeFailed}, rec.outcomes)
}

func TestGenerator_Clean(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "hugo.yaml")
	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0o600))

	_, err := NewGenerator(dir).WithClean(true).
		Generate(context.Background(), testDoc(site.ModeDevelopment), []string{"json"})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, unrelated)
	assert.FileExists(t, filepath.Join(dir, "config.json"))
}

func TestGenerator_Canceled(t *testing.T) {
	rec := &countingRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(t.TempDir()).WithRecorder(rec).Generate(ctx, testDoc(site.ModeDevelopment), []string{"json"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []metrics.Outcome{metrics.OutcomeCanceled}, rec.outcomes)
}

func TestGenerator_NoFormats(t *testing.T) {
	_, err := NewGenerator(t.TempDir()).Generate(context.Background(), testDoc(site.ModeDevelopment), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "version: \"1.0\"\nsite:\n  base: docs\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.Site.Base)
	assert.Equal(t, defaultOutputDir, cfg.Output.Directory)
	assert.Equal(t, []string{"json"}, cfg.Output.Formats)
	assert.Equal(t, defaultDebounce, cfg.Watch.DebounceDuration())
	assert.Equal(t, LogLevelInfo, cfg.Monitoring.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Monitoring.Logging.Format)
	assert.Equal(t, defaultMetricsAddress, cfg.Monitoring.Metrics.Address)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCSITE_TEST_BASE", "from-env")
	path := writeConfig(t, "site:\n  base: ${DOCSITE_TEST_BASE}\noutput:\n  directory: out\n  formats: [JSON, hugo]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Site.Base)
	assert.Equal(t, []string{"json", "hugo"}, cfg.Output.Formats, "formats are case-folded")
}

func TestLoad_MissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad version", body: "version: \"9\"\n"},
		{name: "bad mode", body: "site:\n  mode: staging\n"},
		{name: "duplicate format", body: "output:\n  formats: [json, JSON]\n"},
		{name: "empty format", body: "output:\n  formats: [\"\"]\n"},
		{name: "bad debounce", body: "watch:\n  debounce: soon\n"},
		{name: "bad log level", body: "monitoring:\n  logging:\n    level: loud\n"},
		{name: "bad log format", body: "monitoring:\n  logging:\n    format: xml\n"},
		{name: "negative max commits", body: "docs:\n  max_commits: -1\n"},
		{name: "malformed yaml", body: "site: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "docsite.yaml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "hugo", "head"}, cfg.Output.Formats)
	assert.Equal(t, "./sites/docs", cfg.Docs.Root)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))
}

func TestResolveMode_Precedence(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}
	tests := []struct {
		name     string
		fileMode string
		env      map[string]string
		want     site.BuildMode
	}{
		{name: "default development", want: site.ModeDevelopment},
		{name: "node env production", env: map[string]string{"NODE_ENV": "production"}, want: site.ModeProduction},
		{name: "node env is exact", env: map[string]string{"NODE_ENV": "prod"}, want: site.ModeDevelopment},
		{name: "file beats node env", fileMode: "development", env: map[string]string{"NODE_ENV": "production"}, want: site.ModeDevelopment},
		{name: "override beats file", fileMode: "development", env: map[string]string{ModeOverrideEnvVar: "prod"}, want: site.ModeProduction},
		{name: "bad override ignored", fileMode: "production", env: map[string]string{ModeOverrideEnvVar: "??"}, want: site.ModeProduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Site.Mode = tt.fileMode
			assert.Equal(t, tt.want, cfg.ResolveMode(env(tt.env)))
		})
	}
}

func TestSiteOptions(t *testing.T) {
	cfg := Default()
	cfg.Site = SiteConfig{Base: "b", Repo: "r", DocsDir: "d", Mode: "production"}
	opts := cfg.SiteOptions(func(string) string { return "" })
	assert.Equal(t, site.Options{Base: "b", Repo: "r", DocsDir: "d", Mode: site.ModeProduction}, opts)
}

func TestWatchConfig_DebounceDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, WatchConfig{Debounce: "2s"}.DebounceDuration())
	assert.Equal(t, defaultDebounce, WatchConfig{Debounce: "-1s"}.DebounceDuration())
	assert.Equal(t, defaultDebounce, WatchConfig{}.DebounceDuration())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}, false, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(LoggingConfig{Level: LogLevelError}, true, &buf).Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// ModeOverrideEnvVar forces the build mode regardless of the file or NODE_ENV.
const ModeOverrideEnvVar = "DOCSITE_MODE"

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first existing .env file. Variables already present
// in the process environment are not overwritten.
func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
		return
	}
}

// ResolveMode determines the build mode.
// Precedence:
// 1. DOCSITE_MODE (lenient parsing)
// 2. site.mode from the file
// 3. NODE_ENV, where only the exact value "production" selects production
func (c *Config) ResolveMode(getenv func(string) string) site.BuildMode {
	if raw := getenv(ModeOverrideEnvVar); raw != "" {
		if m, ok := site.ParseBuildMode(raw); ok {
			return m
		}
		slog.Warn("Ignoring unrecognized mode override", "env", ModeOverrideEnvVar, "value", raw)
	}
	if c != nil && c.Site.Mode != "" {
		if m, ok := site.ParseBuildMode(c.Site.Mode); ok {
			return m
		}
	}
	return site.ResolveBuildMode(getenv(site.ModeEnvVar))
}

// SiteOptions converts the site section into loader options.
func (c *Config) SiteOptions(getenv func(string) string) site.Options {
	return site.Options{
		Base:    c.Site.Base,
		Repo:    c.Site.Repo,
		DocsDir: c.Site.DocsDir,
		Mode:    c.ResolveMode(getenv),
	}
}

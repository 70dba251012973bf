package config

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// Validate checks the configuration after defaults have been applied.
// Format names are checked for shape only; the emitter registry decides
// whether a name is known.
func Validate(cfg *Config) error {
	if cfg.Site.Mode != "" {
		if _, ok := site.ParseBuildMode(cfg.Site.Mode); !ok {
			return errors.ConfigError("invalid site.mode (expected production or development)").
				WithContext("mode", cfg.Site.Mode).
				Build()
		}
	}

	if cfg.Docs.MaxCommits < 0 {
		return errors.ConfigError("docs.max_commits must not be negative").
			WithContext("max_commits", cfg.Docs.MaxCommits).
			Build()
	}

	seen := make(map[string]struct{}, len(cfg.Output.Formats))
	for i, f := range cfg.Output.Formats {
		name := strings.ToLower(strings.TrimSpace(f))
		if name == "" {
			return errors.ConfigError("empty output format").WithContext("index", i).Build()
		}
		if _, dup := seen[name]; dup {
			return errors.ConfigError("duplicate output format").WithContext("format", name).Build()
		}
		seen[name] = struct{}{}
		cfg.Output.Formats[i] = name
	}

	if strings.TrimSpace(cfg.Output.Directory) == "" {
		return errors.ConfigError("output.directory must not be empty").Build()
	}

	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return errors.ConfigError("invalid watch.debounce").
			WithContext("debounce", cfg.Watch.Debounce).
			Build()
	}

	level, ok := ParseLogLevel(string(cfg.Monitoring.Logging.Level))
	if !ok {
		return errors.ConfigError("invalid monitoring.logging.level").
			WithContext("level", cfg.Monitoring.Logging.Level).
			Build()
	}
	cfg.Monitoring.Logging.Level = level

	format, ok := ParseLogFormat(string(cfg.Monitoring.Logging.Format))
	if !ok {
		return errors.ConfigError("invalid monitoring.logging.format").
			WithContext("format", cfg.Monitoring.Logging.Format).
			Build()
	}
	cfg.Monitoring.Logging.Format = format

	return nil
}

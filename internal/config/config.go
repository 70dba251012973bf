package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
)

// CurrentVersion is the only supported configuration file version.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docsite.yaml"

// Config is the project configuration of docsitecfg.
type Config struct {
	Version    string           `yaml:"version"`
	Site       SiteConfig       `yaml:"site"`
	Docs       DocsConfig       `yaml:"docs,omitempty"`
	Output     OutputConfig     `yaml:"output"`
	Watch      WatchConfig      `yaml:"watch,omitempty"`
	Monitoring MonitoringConfig `yaml:"monitoring,omitempty"`
}

// SiteConfig overrides the site options. Empty fields keep the canonical values.
type SiteConfig struct {
	Base    string `yaml:"base,omitempty"`     // path segment the site is served under
	Repo    string `yaml:"repo,omitempty"`     // repository used for edit links
	DocsDir string `yaml:"docs_dir,omitempty"` // docs directory inside the repository
	Mode    string `yaml:"mode,omitempty"`     // production|development; empty defers to the environment
}

// DocsConfig points at the documents on disk. It is only needed by the
// document checks and git metadata.
type DocsConfig struct {
	Root string `yaml:"root,omitempty"`
	// MaxCommits bounds the git history walked for page metadata; 0 walks all of it.
	MaxCommits int `yaml:"max_commits,omitempty"`
}

// OutputConfig selects where and in which formats the site configuration is written.
type OutputConfig struct {
	Directory string   `yaml:"directory"`
	Formats   []string `yaml:"formats"`
	Clean     bool     `yaml:"clean"` // remove outputs of unselected formats before writing
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
}

// DebounceDuration parses Debounce, falling back to the default.
func (w WatchConfig) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(w.Debounce); err == nil && d > 0 {
		return d
	}
	return defaultDebounce
}

// MonitoringConfig groups logging and metrics settings.
type MonitoringConfig struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig enables the Prometheus endpoint of the watch command.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address,omitempty"`
}

// Load reads the configuration file at configPath. Variables from .env files
// are loaded first and ${VAR} references in the file are expanded.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			WithCause(err).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when configPath does not exist.
// The second result reports whether a file was read.
func LoadOrDefault(configPath string) (*Config, bool, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFiles()
		return Default(), false, nil
	}
	cfg, err := Load(configPath)
	return cfg, err == nil, err
}

// Parse decodes, defaults and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).Build()
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Base:    "money-printer-turbo",
			Repo:    "harry0703/MoneyPrinterTurbo/sites",
			DocsDir: "docs",
		},
		Docs: DocsConfig{Root: "./sites/docs"},
		Output: OutputConfig{
			Directory: defaultOutputDir,
			Formats:   []string{"json", "hugo", "head"},
			Clean:     true,
		},
		Watch: WatchConfig{Debounce: defaultDebounce.String()},
		Monitoring: MonitoringConfig{
			Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
			Metrics: MetricsConfig{Enabled: false, Address: defaultMetricsAddress},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

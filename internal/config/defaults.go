package config

import "time"

const (
	defaultOutputDir      = "./site-config"
	defaultFormat         = "json"
	defaultDebounce       = 500 * time.Millisecond
	defaultMetricsAddress = ":9464"
)

// applyDefaults fills unset fields. Site fields stay empty: site.Load owns those defaults.
func applyDefaults(cfg *Config) {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{defaultFormat}
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	if cfg.Monitoring.Logging.Level == "" {
		cfg.Monitoring.Logging.Level = LogLevelInfo
	}
	if cfg.Monitoring.Logging.Format == "" {
		cfg.Monitoring.Logging.Format = LogFormatText
	}
	if cfg.Monitoring.Metrics.Address == "" {
		cfg.Monitoring.Metrics.Address = defaultMetricsAddress
	}
}

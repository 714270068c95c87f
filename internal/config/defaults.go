package config

const (
	defaultTheme  = "default"
	defaultOutput = "output"
	defaultRoot   = "."
	defaultTitle  = "My Site"
)

// applyDefaults fills unset values. It runs after normalization so canonical
// values drive the defaults.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = Version
	}
	if cfg.Project.Root == "" {
		cfg.Project.Root = defaultRoot
	}
	if cfg.Project.Theme == "" {
		cfg.Project.Theme = defaultTheme
	}
	if cfg.Project.Output == "" {
		cfg.Project.Output = defaultOutput
	}
	if cfg.Project.Title == "" {
		if cfg.Project.Name != "" {
			cfg.Project.Title = cfg.Project.Name
		} else {
			cfg.Project.Title = defaultTitle
		}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

package config

import "strings"

// normalizeConfig case-folds enumerations and trims free-text fields,
// returning a warning for every value it had to change.
func normalizeConfig(cfg *Config) []string {
	var warnings []string

	if raw := string(cfg.Logging.Level); raw != "" {
		level, warning := logLevelNormalizer.Check("logging.level", raw)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		cfg.Logging.Level = level
	}
	if raw := string(cfg.Logging.Format); raw != "" {
		format, warning := logFormatNormalizer.Check("logging.format", raw)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		cfg.Logging.Format = format
	}

	cfg.Version = strings.TrimSpace(cfg.Version)
	cfg.Project.Name = strings.TrimSpace(cfg.Project.Name)
	cfg.Project.Theme = strings.TrimSpace(cfg.Project.Theme)
	cfg.Project.Title = strings.TrimSpace(cfg.Project.Title)
	cfg.Project.Root = strings.TrimSpace(cfg.Project.Root)
	cfg.Project.Output = strings.TrimSpace(cfg.Project.Output)
	return warnings
}

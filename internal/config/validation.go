package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Validate checks a loaded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ConfigError("configuration is nil").Build()
	}
	if cfg.Version != Version {
		return errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, Version)).Build()
	}
	return ValidateProject(cfg.Project)
}

// ValidateProject checks the fields generation depends on.
func ValidateProject(p Project) error {
	if strings.TrimSpace(p.Root) == "" {
		return errors.ConfigError("project.root is required").Build()
	}
	if strings.TrimSpace(p.Output) == "" {
		return errors.ConfigError("project.output is required").Build()
	}
	if strings.TrimSpace(p.Theme) == "" {
		return errors.ConfigError("project.theme is required").Build()
	}
	if strings.ContainsAny(p.Theme, `/\`) || p.Theme == "." || p.Theme == ".." {
		return errors.ConfigError(fmt.Sprintf("project.theme must be a folder name, got %q", p.Theme)).Build()
	}

	root, err := filepath.Abs(p.Root)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid project.root").Build()
	}
	output, err := filepath.Abs(p.Output)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid project.output").Build()
	}
	if output == root {
		return errors.ConfigError("project.output must not be the project root; it is cleared before every build").Build()
	}
	for _, protected := range []string{"content", "themes", "static"} {
		dir := filepath.Join(root, protected)
		if output == dir || strings.HasPrefix(dir, output+string(filepath.Separator)) {
			return errors.ConfigError(fmt.Sprintf("project.output must not contain the %s folder", protected)).Build()
		}
	}
	return nil
}

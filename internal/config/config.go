package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "sitegen.yaml"

// Version is the only supported configuration version.
const Version = "1.0"

// Config is the sitegen.yaml configuration.
type Config struct {
	Version  string         `yaml:"version"`
	Project  Project        `yaml:"project"`
	Logging  LoggingConfig  `yaml:"logging"`
	Build    BuildConfig    `yaml:"build"`
	Markdown MarkdownConfig `yaml:"markdown"`
}

// Project names the site sources and where the generated site goes.
// Root and Output are resolved against the configuration file's directory.
type Project struct {
	Name   string `yaml:"name"`
	Root   string `yaml:"root"`
	Theme  string `yaml:"theme"`
	Output string `yaml:"output"`
	Title  string `yaml:"title"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// BuildConfig holds optional build artefacts. Empty paths disable them.
type BuildConfig struct {
	Report      string `yaml:"report,omitempty"`       // JSON build report
	MetricsFile string `yaml:"metrics_file,omitempty"` // Prometheus textfile
	HistoryDB   string `yaml:"history_db,omitempty"`   // SQLite build history
}

// MarkdownConfig tunes the markdown renderer.
type MarkdownConfig struct {
	HardWraps bool `yaml:"hard_wraps"`
}

// Load reads, normalizes, defaults and validates a configuration file.
// .env files next to it are loaded first so ${VAR} references expand.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultFile
	}
	dir := filepath.Dir(configPath)
	if loaded, err := loadEnvFiles(dir); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	} else if len(loaded) > 0 {
		slog.Debug("Loaded environment files", "files", loaded)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
				WithCause(err).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}

	for _, w := range normalizeConfig(&cfg) {
		slog.Warn("Config normalization", "warning", w)
	}
	applyDefaults(&cfg)
	cfg.resolvePaths(dir)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePaths makes relative project paths relative to the config directory.
func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Project.Root = resolve(c.Project.Root)
	c.Project.Output = resolve(c.Project.Output)
	c.Build.Report = resolve(c.Build.Report)
	c.Build.MetricsFile = resolve(c.Build.MetricsFile)
	c.Build.HistoryDB = resolve(c.Build.HistoryDB)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Config{
		Version: Version,
		Project: Project{
			Name:   "My Site",
			Root:   ".",
			Theme:  "default",
			Output: "./output",
			Title:  "My Site",
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Build: BuildConfig{
			Report:    "./output/build-report.json",
			HistoryDB: "./.sitegen/history.db",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	// #nosec G306 -- configuration is meant to be readable
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").Build()
	}
	return nil
}

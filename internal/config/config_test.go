package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultsAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "project:\n  name: Blog\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Version, cfg.Version)
	require.Equal(t, "Blog", cfg.Project.Title)
	require.Equal(t, defaultTheme, cfg.Project.Theme)
	require.Equal(t, filepath.Join(dir, defaultRoot), cfg.Project.Root)
	require.Equal(t, filepath.Join(dir, defaultOutput), cfg.Project.Output)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Empty(t, cfg.Build.Report)
}

func TestLoadNormalizesLogging(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: \"1.0\"\nlogging:\n  level: \" DEBUG \"\n  format: yaml\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestLoadExpandsEnvFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEGEN_TEST_THEME=midnight\n"), 0o600))
	path := writeConfig(t, dir, "project:\n  theme: ${SITEGEN_TEST_THEME}\n")
	t.Cleanup(func() { _ = os.Unsetenv("SITEGEN_TEST_THEME") })

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "midnight", cfg.Project.Theme)
}

func TestLoadDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEGEN_TEST_TITLE=from-file\n"), 0o600))
	t.Setenv("SITEGEN_TEST_TITLE", "from-env")
	path := writeConfig(t, dir, "project:\n  title: ${SITEGEN_TEST_TITLE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Project.Title)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "project: [\n"},
		{"bad version", "version: \"9\"\n"},
		{"theme path", "project:\n  theme: ../x\n"},
		{"output is root", "project:\n  output: .\n"},
		{"output contains content", "project:\n  root: site\n  output: site/..\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.body))
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Project.Theme)
	require.Equal(t, "My Site", cfg.Project.Title)
	require.Equal(t, filepath.Join(filepath.Dir(path), "output", "build-report.json"), cfg.Build.Report)

	err = Init(path, false)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.NoError(t, Init(path, true))
}

func TestSlogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
	require.Equal(t, "WARN", NormalizeLogLevel("warning").SlogLevel().String())
	require.Equal(t, "INFO", LogLevel("bogus").SlogLevel().String())
}

func TestNormalizeConfigWarnings(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "DEBUG", Format: "xml"}, Project: Project{Theme: " plain "}}
	warnings := normalizeConfig(cfg)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Equal(t, "plain", cfg.Project.Theme)
	require.Len(t, warnings, 2)
	require.Equal(t, "normalized logging.level from 'DEBUG' to 'debug'", warnings[0])
	require.Contains(t, warnings[1], "invalid log format")
}

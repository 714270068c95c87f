package assets

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, body string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), mode))
}

func TestCopyTreeMissingSource(t *testing.T) {
	n, err := NewCopier().CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCopyTreeVerbatim(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	write(t, filepath.Join(src, "robots.txt"), "User-agent: *\n", 0o644)
	write(t, filepath.Join(src, "img", "logo.svg"), "<svg/>", 0o600)
	write(t, filepath.Join(src, "bin", "run.sh"), "#!/bin/sh\n", 0o755)

	n, err := NewCopier().CopyTree(src, dst, nil)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	data, err := os.ReadFile(filepath.Join(dst, "img", "logo.svg"))
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dst, "bin", "run.sh"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestCopyTreeThemeSkip(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	write(t, filepath.Join(src, "layout.html"), "layout", 0o644)
	write(t, filepath.Join(src, "index.html"), "index", 0o644)
	write(t, filepath.Join(src, "templates", "category-page.html"), "tpl", 0o644)
	write(t, filepath.Join(src, "style.css"), "body{}", 0o644)
	write(t, filepath.Join(src, "docs", "index.html"), "nested index is an asset", 0o644)

	n, err := NewCopier().CopyTree(src, dst, ThemeSkip)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.FileExists(t, filepath.Join(dst, "style.css"))
	require.FileExists(t, filepath.Join(dst, "docs", "index.html"))
	require.NoFileExists(t, filepath.Join(dst, "layout.html"))
	require.NoFileExists(t, filepath.Join(dst, "index.html"))
	require.NoDirExists(t, filepath.Join(dst, "templates"))
}

func TestCopyTreeOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	write(t, filepath.Join(src, "a.txt"), "new", 0o644)
	write(t, filepath.Join(dst, "a.txt"), "old and longer", 0o644)

	_, err := NewCopier().CopyTree(src, dst, nil)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

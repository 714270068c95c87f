// Package assets copies theme and static files into the generated site.
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// SkipFunc decides whether an entry is left out. rel is slash separated and
// relative to the copy source. Skipping a directory skips its whole subtree.
type SkipFunc func(rel string, d fs.DirEntry) bool

// Copier copies directory trees verbatim.
type Copier struct{}

// NewCopier returns a Copier.
func NewCopier() *Copier { return &Copier{} }

// CopyTree copies every file below src into dst, preserving relative paths and
// permissions, and returns the number of files copied. A missing src copies nothing.
func (c *Copier) CopyTree(src, dst string, skip SkipFunc) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("asset source %s is not a directory", src)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return os.MkdirAll(dst, info.Mode().Perm()|0o700)
		}
		if skip != nil && skip(filepath.ToSlash(rel), d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		if d.IsDir() {
			dirInfo, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, dirInfo.Mode().Perm()|0o700)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		copied++
		return nil
	})
	return copied, err
}

// copyFile copies a single file from src to dst, keeping its permissions.
func copyFile(src, dst string) error {
	// #nosec G304 -- src comes from walking a project directory
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	// #nosec G304 -- dst is below the configured output directory
	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// ThemeSkip leaves out the files a theme uses for rendering rather than serving:
// the top-level layout.html and index.html and the templates folder.
func ThemeSkip(rel string, d fs.DirEntry) bool {
	switch rel {
	case "layout.html", "index.html":
		return !d.IsDir()
	case "templates":
		return d.IsDir()
	}
	return false
}

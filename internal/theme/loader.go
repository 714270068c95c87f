// Package theme loads the site-wide layout and optional index template of a
// project's theme folder.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

const (
	// ThemesDir is the folder below the project root holding the themes.
	ThemesDir = "themes"
	// LayoutFile is the mandatory site-wide layout of a theme.
	LayoutFile = "layout.html"
	// IndexFile is the optional home page template of a theme.
	IndexFile = "index.html"
)

// RequiredPlaceholders must all appear in a layout.
var RequiredPlaceholders = []string{"{{ content }}", "{{ navbar }}", "{{ title }}"}

// LayoutResult is the outcome of loading a layout. Failures are reported
// through Success and Error rather than a Go error.
type LayoutResult struct {
	Success bool
	Layout  string
	Error   string
}

// Loader reads theme files.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader { return &Loader{} }

// ThemePath returns <root>/themes/<theme>.
func ThemePath(project config.Project) string {
	return filepath.Join(project.Root, ThemesDir, project.Theme)
}

// LoadThemeLayout reads and validates layout.html. Every missing placeholder is
// listed in one message. Asset references into the theme folder are rewritten
// to root-relative paths because theme assets are copied to the output root.
func (l *Loader) LoadThemeLayout(project config.Project) LayoutResult {
	if strings.TrimSpace(project.Root) == "" || strings.TrimSpace(project.Theme) == "" {
		return LayoutResult{Error: "Project root and theme are required to load a theme layout"}
	}

	path := filepath.Join(ThemePath(project), LayoutFile)
	// #nosec G304 -- path is built from the project configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LayoutResult{Error: fmt.Sprintf("Theme layout is missing: %s", path)}
		}
		return LayoutResult{Error: fmt.Sprintf("Theme layout could not be read: %v", err)}
	}

	layout := string(raw)
	var missing []string
	for _, placeholder := range RequiredPlaceholders {
		if !strings.Contains(layout, placeholder) {
			missing = append(missing, placeholder)
		}
	}
	if len(missing) > 0 {
		return LayoutResult{Error: "Theme layout is missing required placeholders: " + strings.Join(missing, ", ")}
	}

	return LayoutResult{Success: true, Layout: RewriteAssetPaths(layout, project.Theme)}
}

// RewriteAssetPaths turns "/themes/<theme>/x" and "themes/<theme>/x" into "x".
// The prefix must start a value: the beginning of the text, a quote, a paren,
// "=", "," or whitespace. Longer paths such as "mythemes/<theme>/" are kept.
func RewriteAssetPaths(layout, theme string) string {
	prefix := regexp.MustCompile(`(^|["'(=,\s])/?` + regexp.QuoteMeta(ThemesDir+"/"+theme+"/"))
	return prefix.ReplaceAllString(layout, "$1")
}

// LoadIndexTemplate returns the theme's index.html. ok is false when the theme
// has none; a file that exists but cannot be read is an error.
func (l *Loader) LoadIndexTemplate(project config.Project) (tpl string, ok bool, err error) {
	path := filepath.Join(ThemePath(project), IndexFile)
	// #nosec G304 -- path is built from the project configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read theme index %s: %w", path, err)
	}
	return RewriteAssetPaths(string(raw), project.Theme), true, nil
}

package testing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// DefaultLayout carries every placeholder a theme layout needs.
const DefaultLayout = "<html><head><title>{{ title }}</title></head><body>{{ navbar }}<main>{{ content }}</main></body></html>"

// SiteFixture builds a project folder below a temporary directory.
type SiteFixture struct {
	t       *testing.T
	Project config.Project
}

// NewSiteFixture creates an empty project using theme.
func NewSiteFixture(t *testing.T, theme string) *SiteFixture {
	t.Helper()
	root := t.TempDir()
	return &SiteFixture{
		t:       t,
		Project: config.Project{Name: "fixture", Root: root, Theme: theme, Title: "Fixture Site"},
	}
}

// WithFile writes a file relative to the project root.
func (f *SiteFixture) WithFile(rel, body string) *SiteFixture {
	f.t.Helper()
	path := filepath.Join(f.Project.Root, filepath.FromSlash(rel))
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), testDirPermissions))
	require.NoError(f.t, os.WriteFile(path, []byte(body), testFilePermissions))
	return f
}

// WithLayout writes the layout of the fixture's theme.
func (f *SiteFixture) WithLayout(layout string) *SiteFixture {
	return f.WithFile("themes/"+f.Project.Theme+"/layout.html", layout)
}

// WithContent writes content/<rel> with a fenced header built from fields,
// written in the given key order.
func (f *SiteFixture) WithContent(rel string, fields [][2]string, body string) *SiteFixture {
	var b strings.Builder
	b.WriteString("---\n")
	for _, kv := range fields {
		b.WriteString(kv[0] + ": " + kv[1] + "\n")
	}
	b.WriteString("---\n")
	b.WriteString(body)
	return f.WithFile("content/"+rel, b.String())
}

// Output returns assertions over the project's output folder.
func (f *SiteFixture) Output(outputDir string) *FileAssertions {
	return NewFileAssertions(f.t, outputDir)
}

// FileAssertions checks the state of a generated tree.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates assertions rooted at baseDir.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) path(rel string) string {
	return filepath.Join(fa.baseDir, filepath.FromSlash(rel))
}

// AssertFileExists fails unless rel is a regular file.
func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	require.FileExists(fa.t, fa.path(rel))
	return fa
}

// AssertFileNotExists fails if rel exists.
func (fa *FileAssertions) AssertFileNotExists(rel string) *FileAssertions {
	fa.t.Helper()
	require.NoFileExists(fa.t, fa.path(rel))
	return fa
}

// AssertFileContains fails unless rel contains every snippet.
func (fa *FileAssertions) AssertFileContains(rel string, snippets ...string) *FileAssertions {
	fa.t.Helper()
	data := fa.Content(rel)
	for _, s := range snippets {
		require.Contains(fa.t, data, s, "file %s", rel)
	}
	return fa
}

// AssertFileNotContains fails if rel contains snippet.
func (fa *FileAssertions) AssertFileNotContains(rel, snippet string) *FileAssertions {
	fa.t.Helper()
	require.NotContains(fa.t, fa.Content(rel), snippet, "file %s", rel)
	return fa
}

// AssertTree fails unless the tree holds exactly the files in rels.
func (fa *FileAssertions) AssertTree(rels ...string) *FileAssertions {
	fa.t.Helper()
	want := append([]string(nil), rels...)
	sort.Strings(want)
	require.Equal(fa.t, want, fa.Files())
	return fa
}

// Files lists every regular file below the base directory, slash separated and sorted.
func (fa *FileAssertions) Files() []string {
	fa.t.Helper()
	var files []string
	err := filepath.WalkDir(fa.baseDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, relErr := filepath.Rel(fa.baseDir, p)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(fa.t, err)
	sort.Strings(files)
	return files
}

// Content reads rel.
func (fa *FileAssertions) Content(rel string) string {
	fa.t.Helper()
	data, err := os.ReadFile(fa.path(rel))
	require.NoError(fa.t, err)
	return string(data)
}

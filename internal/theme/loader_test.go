package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

func writeTheme(t *testing.T, root, name, file, body string) {
	t.Helper()
	path := filepath.Join(root, ThemesDir, name, file)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadThemeLayout(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "plain", LayoutFile, `<link href="/themes/plain/style.css"><script src="themes/plain/js/app.js"></script>`+
		`<title>{{ title }}</title>{{ navbar }}{{ content }}<img src="/themes/other/x.png">`)

	res := NewLoader().LoadThemeLayout(config.Project{Root: root, Theme: "plain"})
	require.True(t, res.Success, res.Error)
	require.Empty(t, res.Error)
	require.Equal(t, `<link href="style.css"><script src="js/app.js"></script><title>{{ title }}</title>{{ navbar }}{{ content }}<img src="/themes/other/x.png">`, res.Layout)
}

func TestLoadThemeLayoutMissingFile(t *testing.T) {
	res := NewLoader().LoadThemeLayout(config.Project{Root: t.TempDir(), Theme: "none"})
	require.False(t, res.Success)
	require.Contains(t, res.Error, "missing")
	require.Empty(t, res.Layout)
}

func TestLoadThemeLayoutMissingPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		missing []string
	}{
		{"navbar", "{{ title }}{{ content }}", []string{"{{ navbar }}"}},
		{"all", "<html></html>", []string{"{{ content }}", "{{ navbar }}", "{{ title }}"}},
		{"unspaced does not count", "{{title}}{{navbar}}{{ content }}", []string{"{{ navbar }}", "{{ title }}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTheme(t, root, "t", LayoutFile, tt.layout)
			res := NewLoader().LoadThemeLayout(config.Project{Root: root, Theme: "t"})
			require.False(t, res.Success)
			require.Contains(t, res.Error, "missing")
			for _, m := range tt.missing {
				require.Contains(t, res.Error, m)
			}
		})
	}
}

func TestLoadThemeLayoutRequiresProject(t *testing.T) {
	res := NewLoader().LoadThemeLayout(config.Project{})
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
}

func TestLoadIndexTemplate(t *testing.T) {
	root := t.TempDir()
	project := config.Project{Root: root, Theme: "t"}

	_, ok, err := NewLoader().LoadIndexTemplate(project)
	require.NoError(t, err)
	require.False(t, ok)

	writeTheme(t, root, "t", IndexFile, `<img src="/themes/t/hero.png">{{posts}}{{/posts}}`)
	tpl, ok, err := NewLoader().LoadIndexTemplate(project)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `<img src="hero.png">{{posts}}{{/posts}}`, tpl)
}

func TestThemePath(t *testing.T) {
	require.Equal(t, filepath.Join("site", "themes", "dark"), ThemePath(config.Project{Root: "site", Theme: "dark"}))
}

func TestRewriteAssetPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "absolute", in: `<link href="/themes/t/a.css">`, want: `<link href="a.css">`},
		{name: "relative single quote", in: `<img src='themes/t/b.png'>`, want: `<img src='b.png'>`},
		{name: "css url", in: `background: url(/themes/t/bg.png)`, want: `background: url(bg.png)`},
		{name: "srcset", in: `srcset="/themes/t/a.png 1x,/themes/t/b.png 2x"`, want: `srcset="a.png 1x,b.png 2x"`},
		{name: "start of text", in: `themes/t/x.js`, want: `x.js`},
		{name: "longer folder kept", in: `<img src="/mythemes/t/x.png">`, want: `<img src="/mythemes/t/x.png">`},
		{name: "nested folder kept", in: `<img src="/assets/themes/t/x.png">`, want: `<img src="/assets/themes/t/x.png">`},
		{name: "other theme kept", in: `<img src="/themes/tt/x.png">`, want: `<img src="/themes/tt/x.png">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RewriteAssetPaths(tt.in, "t"))
		})
	}
}

package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

func TestCategoryPageDefaultTemplate(t *testing.T) {
	a := post("a", "First", "Blog", day(2))
	a.Summary = "About first"
	b := post("b", "Second", "Blog", time.Time{})

	out, err := NewCategoryPageTemplate().Render("Blog", []content.Item{a, b}, "")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Blog</h1>")
	require.Contains(t, out, "2 item(s)")
	require.Contains(t, out, `<a href="/blog/first.html">First</a>`)
	require.Contains(t, out, `<p class="summary">About first</p>`)
	require.Contains(t, out, `<a href="/blog/second.html">Second</a>`)
	require.Equal(t, 1, strings.Count(out, "<time>"))
	require.NotContains(t, out, "{{")
}

func TestCategoryPageThemeOverride(t *testing.T) {
	theme := t.TempDir()
	path := filepath.Join(theme, "templates", "category-page.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("<h2>{{category}} ({{count}})</h2><ol>{{#items}}<li>{{title}}|{{url}}</li>{{/items}}</ol>{{title}}"), 0o600))

	page := post("p", "Guide", "Docs", day(1))
	page.Kind = content.KindPage
	out, err := NewCategoryPageTemplate().Render("Docs", []content.Item{page, post("x", "X", "Docs", day(1))}, theme)
	require.NoError(t, err)
	require.Equal(t, "<h2>Docs (2)</h2><ol><li>Guide|/guide.html</li><li>X|/docs/x.html</li></ol>{{title}}", out)
}

func TestCategoryPageMissingRegion(t *testing.T) {
	theme := t.TempDir()
	path := filepath.Join(theme, "templates", "category-page.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("<h2>{{category}}</h2>"), 0o600))

	_, err := NewCategoryPageTemplate().Render("Docs", nil, theme)
	require.ErrorIs(t, err, ErrMissingItemsRegion)
}

func TestCategoryPageEmpty(t *testing.T) {
	out, err := NewCategoryPageTemplate().Render("Empty", nil, t.TempDir())
	require.NoError(t, err)
	require.Contains(t, out, "0 item(s)")
	require.NotContains(t, out, "<li")
}

func TestExtractContentDiv(t *testing.T) {
	inner, ok, err := ExtractContentDiv(`<html><body><header>h</header><div id="content"><p>Hi <b>there</b></p></div></body></html>`)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "<p>Hi <b>there</b></p>", inner)

	inner, ok, err = ExtractContentDiv(`<div class="wrap content"><h1>T</h1></div>`)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "<h1>T</h1>", inner)

	_, ok, err = ExtractContentDiv(`<p>no div</p><div class="contents">x</div>`)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDefaultIndexTemplate(t *testing.T) {
	tpl := DefaultIndexTemplate()
	require.Contains(t, tpl, "{{posts")
	require.Contains(t, tpl, `id="content"`)
}

package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSiteFixtureWritesProject(t *testing.T) {
	f := NewSiteFixture(t, "plain").
		WithLayout(DefaultLayout).
		WithContent("posts/a.md", [][2]string{{"title", "A"}, {"category", "Blog"}}, "Body\n").
		WithFile("static/robots.txt", "ok")

	files := NewFileAssertions(t, f.Project.Root)
	files.AssertTree("content/posts/a.md", "static/robots.txt", "themes/plain/layout.html").
		AssertFileContains("content/posts/a.md", "---\ntitle: A\ncategory: Blog\n---\nBody\n").
		AssertFileNotContains("static/robots.txt", "nope").
		AssertFileNotExists("content/pages")
	require.Equal(t, "ok", files.Content("static/robots.txt"))
}

package content

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestItemURL(t *testing.T) {
	page := Item{Kind: KindPage, Slug: "about", Category: "Ignored"}
	require.Equal(t, "/about.html", page.URL())
	require.Equal(t, "about.html", page.OutputPath())

	post := Item{Kind: KindPost, Slug: "x", Category: "Blog"}
	require.Equal(t, "/blog/x.html", post.URL())
	require.Equal(t, "blog/x.html", post.OutputPath())

	loose := Item{Kind: KindPost, Slug: "y"}
	require.Equal(t, "/uncategorized/y.html", loose.URL())
}

func TestKindFromPath(t *testing.T) {
	contentDir := filepath.Join("root", "content")
	require.Equal(t, KindPage, KindFromPath(contentDir, filepath.Join(contentDir, "pages", "about.md")))
	require.Equal(t, KindPage, KindFromPath(contentDir, filepath.Join(contentDir, "site", "Pages", "a.md")))
	require.Equal(t, KindPost, KindFromPath(contentDir, filepath.Join(contentDir, "posts", "pages.md")))
	require.Equal(t, KindPost, KindFromPath(contentDir, filepath.Join(contentDir, "top.md")))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Item{Tags: []string{"a"}, CustomFields: map[string]string{"k": "v"}}
	c := orig.Clone()
	c.Tags[0] = "b"
	c.CustomFields["k"] = "changed"
	require.Equal(t, "a", orig.Tags[0])
	require.Equal(t, "v", orig.CustomFields["k"])
}

func TestSortNewestFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	items := []Item{
		{ID: "c", Title: "C", DatePublished: day(1)},
		{ID: "a", Title: "A", DatePublished: day(3)},
		{ID: "b2", Title: "B", DatePublished: day(2)},
		{ID: "b1", Title: "B", DatePublished: day(2)},
	}
	SortNewestFirst(items)
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
}

func TestFormattedDate(t *testing.T) {
	require.Empty(t, Item{}.FormattedDate())
	require.Equal(t, "March 05, 2024", Item{DatePublished: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}.FormattedDate())
}

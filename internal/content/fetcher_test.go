package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeContent(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, ContentDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestGetContentItemsArguments(t *testing.T) {
	f := NewFetcher(NewCache())

	_, _, err := f.GetContentItems("  ")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.ErrorIs(t, err, ErrRootRequired)

	_, _, err = f.GetContentItems(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestGetContentItemsWithoutContentDir(t *testing.T) {
	items, diags, err := NewFetcher(nil).GetContentItems(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, items)
	require.Empty(t, diags)
}

func TestGetContentItemsParsesHeaders(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "pages/about.md", "---\nid: about-id\ntitle: About Us\nslug: about\n---\nWho we are.\n")
	writeContent(t, root, "posts/2024/first.md", `---
id: first
Title: Ignored
title: First Post
category: Blog
Category: Other
tags: go, web ,
datePublished: 2024-03-01 10:30:00
dateUpdated: 2024-03-02 08:00:00
isDraft: False
summary: A summary
mood: happy
rating: 5
---
Body text.
`)
	writeContent(t, root, "posts/legacy.md", "title: Legacy Post\n\ncategory: Jannah Journeys\ndate: 2023-12-24\n\nFirst paragraph.\n")

	f := NewFetcher(NewCache())
	items, diags, err := f.GetContentItems(root)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, items, 3)

	about := items["about-id"]
	require.Equal(t, KindPage, about.Kind)
	require.Equal(t, "about", about.Slug)
	require.Equal(t, "Who we are.\n", about.Contents)

	first := items["first"]
	require.Equal(t, KindPost, first.Kind)
	require.Equal(t, "First Post", first.Title)
	require.Equal(t, "first-post", first.Slug)
	require.Equal(t, "Blog", first.Category)
	require.Equal(t, []string{"go", "web"}, first.Tags)
	require.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), first.DatePublished)
	require.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), first.DateUpdated)
	require.False(t, first.IsDraft)
	require.Equal(t, "A summary", first.Summary)
	require.Equal(t, map[string]string{"mood": "happy", "rating": "5"}, first.CustomFields)
	require.Equal(t, "/blog/first-post.html", first.URL())

	var legacy Item
	for _, it := range items {
		if it.Title == "Legacy Post" {
			legacy = it
		}
	}
	require.NotEmpty(t, legacy.ID)
	require.Equal(t, "Jannah Journeys", legacy.Category)
	require.Equal(t, "jannah-journeys", legacy.CategorySlug())
	require.Equal(t, time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), legacy.DatePublished)
	require.Equal(t, "\nFirst paragraph.\n", legacy.Contents)
}

func TestGetContentItemsSkipsBrokenFiles(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/good.md", "---\ntitle: Good\n---\nok\n")
	bad := writeContent(t, root, "posts/unterminated.md", "---\ntitle: Broken\nno closing fence\n")
	plain := writeContent(t, root, "posts/plain.md", "# Just markdown\n\nNo header here.\n")
	writeContent(t, root, "posts/notes.txt", "title: ignored\n")

	items, diags, err := NewFetcher(nil).GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, diags, 2)

	paths := []string{diags[0].Path, diags[1].Path}
	require.ElementsMatch(t, []string{bad, plain}, paths)
	for _, d := range diags {
		require.NotEmpty(t, d.Reason)
	}
}

func TestGetContentItemsFallbacks(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/my-great_idea.md", "---\ncategory: Notes\n---\nbody\n")
	writeContent(t, root, "posts/colon.md", "---\ntitle: Part 1: The Start\n---\nbody\n")

	f := NewFetcher(nil)
	first, _, err := f.GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, first, 2)

	titles := map[string]string{}
	for _, it := range first {
		titles[it.Slug] = it.Title
	}
	require.Equal(t, "My Great Idea", titles["my-great-idea"])
	require.Equal(t, "Part 1: The Start", titles["part-1-the-start"])

	// path-derived IDs are stable across scans
	f.Cache().Clear()
	second, _, err := f.GetContentItems(root)
	require.NoError(t, err)
	for id := range first {
		require.Contains(t, second, id)
	}
}

func TestGetContentItemsUsesCache(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/a.md", "---\nid: a\ntitle: A\n---\n")

	cache := NewCache()
	f := NewFetcher(cache)
	items, _, err := f.GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 1)

	writeContent(t, root, "posts/b.md", "---\nid: b\ntitle: B\n---\n")
	items, _, err = f.GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 1, "second fetch must not rescan")

	cache.Clear()
	items, _, err = f.GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 2)

	other := t.TempDir()
	writeContent(t, other, "posts/c.md", "---\nid: c\ntitle: C\n---\n")
	items, _, err = f.GetContentItems(other)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Contains(t, items, "c")
}

func TestDuplicateIDLastWins(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/a.md", "---\nid: same\ntitle: First\n---\n")
	writeContent(t, root, "posts/b.md", "---\nid: same\ntitle: Second\n---\n")

	items, _, err := NewFetcher(nil).GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Second", items["same"].Title)
}

func TestQueriesRequireLoadedCache(t *testing.T) {
	f := NewFetcher(NewCache())

	_, err := f.GetCategories()
	require.True(t, errors.HasCategory(err, errors.CategoryState))
	_, err = f.GetTags()
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = f.GetItemsByCategory("blog")
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestQueries(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/a.md", "---\nid: a\ntitle: A\ncategory: Blog\ntags: Go, web\ndatePublished: 2024-01-01\n---\n")
	writeContent(t, root, "posts/b.md", "---\nid: b\ntitle: B\ncategory: blog\ntags: go\ndatePublished: 2024-02-01\n---\n")
	writeContent(t, root, "posts/c.md", "---\nid: c\ntitle: C\ncategory: Art\n---\n")

	f := NewFetcher(nil)
	_, _, err := f.GetContentItems(root)
	require.NoError(t, err)

	cats, err := f.GetCategories()
	require.NoError(t, err)
	require.Equal(t, []string{"Art", "blog"}, cats)

	tags, err := f.GetTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "web", tags[1])

	byCat, err := f.GetItemsByCategory("BLOG")
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	require.Equal(t, "b", byCat[0].ID)
	require.Equal(t, "a", byCat[1].ID)
}

func TestUpdateCache(t *testing.T) {
	f := NewFetcher(NewCache())
	require.True(t, errors.HasCategory(f.UpdateCache(nil), errors.CategoryValidation))
	require.ErrorIs(t, f.UpdateCache(&Item{}), ErrIDRequired)

	require.NoError(t, f.UpdateCache(&Item{ID: "x", Title: "X", Category: "Blog"}))
	items, err := f.GetItemsByCategory("blog")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "X", items[0].Title)
}

func TestGetContentItemsKeepsUpsertsBeforeFirstScan(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/on-disk.md", "---\nid: disk\ntitle: On Disk\n---\nBody.\n")

	f := NewFetcher(NewCache())
	require.NoError(t, f.UpdateCache(&Item{ID: "x", Title: "X", Category: "Blog"}))

	items, _, err := f.GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Contains(t, items, "x")
	require.Equal(t, root, f.Cache().Root())

	f.Cache().Clear()
	items, _, err = f.GetContentItems(root)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Contains(t, items, "disk")
}

package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestSaveValidation(t *testing.T) {
	s := NewSaver(NewCache())

	_, err := s.Save("", &Item{Title: "x"})
	require.ErrorIs(t, err, ErrRootRequired)

	_, err = s.Save(t.TempDir(), nil)
	require.ErrorIs(t, err, ErrItemRequired)

	_, err = s.Save(t.TempDir(), &Item{Title: " "})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = s.Save(t.TempDir(), &Item{Title: "x", Summary: strings.Repeat("é", MaxSummaryLength+1)})
	require.ErrorIs(t, err, ErrSummaryLength)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = s.Save(t.TempDir(), &Item{Title: "x", Summary: strings.Repeat("é", MaxSummaryLength)})
	require.NoError(t, err)
}

func TestSaveThenFetchRoundTrip(t *testing.T) {
	root := t.TempDir()
	cache := NewCache()
	saver := NewSaver(cache).WithClock(fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

	saved, err := saver.Save(root, &Item{
		Title:        "Hello World!",
		Category:     "Jannah Journeys",
		Tags:         []string{"travel", "faith"},
		Summary:      "A trip",
		Contents:     "Some *markdown*.\n",
		CustomFields: map[string]string{"mood": "calm", "title": "shadowed"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "hello-world", saved.Slug)
	require.Equal(t, KindPost, saved.Kind)
	require.Equal(t, filepath.Join(root, ContentDir, "posts", "hello-world.md"), saved.FilePath)
	require.NotEmpty(t, saved.Fingerprint)
	require.FileExists(t, saved.FilePath)

	// cache query without a rescan
	fetcher := NewFetcher(cache)
	byCat, err := fetcher.GetItemsByCategory("jannah journeys")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	require.Equal(t, "Hello World!", byCat[0].Title)
	require.Equal(t, "Jannah Journeys", byCat[0].Category)

	// a fresh scan reads back the same values
	items, diags, err := NewFetcher(NewCache()).GetContentItems(root)
	require.NoError(t, err)
	require.Empty(t, diags)
	got, ok := items[saved.ID]
	require.True(t, ok)
	require.Equal(t, saved.Title, got.Title)
	require.Equal(t, saved.Category, got.Category)
	require.Equal(t, saved.Tags, got.Tags)
	require.Equal(t, saved.Contents, got.Contents)
	require.Equal(t, saved.Fingerprint, got.Fingerprint)
	require.Equal(t, map[string]string{"mood": "calm"}, got.CustomFields)
	require.True(t, saved.DatePublished.Equal(got.DatePublished))
}

func TestSavePageGoesToPagesDir(t *testing.T) {
	root := t.TempDir()
	saved, err := NewSaver(nil).Save(root, &Item{Title: "About", Kind: KindPage})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ContentDir, PagesDir, "about.md"), saved.FilePath)

	items, _, err := NewFetcher(nil).GetContentItems(root)
	require.NoError(t, err)
	require.Equal(t, KindPage, items[saved.ID].Kind)
}

func TestSaveBumpsDateUpdatedOnlyOnChange(t *testing.T) {
	root := t.TempDir()
	t1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)
	clock := t1
	saver := NewSaver(nil).WithClock(func() time.Time { return clock })

	first, err := saver.Save(root, &Item{Title: "Stable", Contents: "v1\n"})
	require.NoError(t, err)
	require.Equal(t, t1, first.DateUpdated)

	clock = t2
	again, err := saver.Save(root, &first)
	require.NoError(t, err)
	require.Equal(t, first.Fingerprint, again.Fingerprint)
	require.Equal(t, t1, again.DateUpdated)

	again.Contents = "v2\n"
	changed, err := saver.Save(root, &again)
	require.NoError(t, err)
	require.NotEqual(t, first.Fingerprint, changed.Fingerprint)
	require.Equal(t, t2, changed.DateUpdated)

	data, err := os.ReadFile(changed.FilePath)
	require.NoError(t, err)
	require.Contains(t, string(data), "2024-01-03 09:00:00")
}

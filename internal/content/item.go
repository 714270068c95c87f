package content

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Kind tells pages apart from everything else. It is fixed when an item is read
// and decides where the item is published.
type Kind string

const (
	KindPage Kind = "page"
	KindPost Kind = "post"
)

// PagesDir is the content sub-folder whose files are published as pages.
const PagesDir = "pages"

// MaxSummaryLength is the longest summary the saver accepts, in runes.
const MaxSummaryLength = 140

// DateFormat is the human readable form used by templates.
const DateFormat = "January 02, 2006"

// Item is a single content unit read from a markdown file.
type Item struct {
	ID            string
	FilePath      string
	Kind          Kind
	Title         string
	Contents      string
	DatePublished time.Time
	DateUpdated   time.Time
	IsDraft       bool
	Category      string
	Tags          []string
	Summary       string
	CustomFields  map[string]string
	Slug          string
	Fingerprint   string
}

// IsPage reports whether the item is published at the site root.
func (i Item) IsPage() bool { return i.Kind == KindPage }

// CategorySlug returns the URL folder of the item's category.
func (i Item) CategorySlug() string { return CategorySlug(i.Category) }

// URL returns the site-absolute link of the generated page.
func (i Item) URL() string {
	if i.IsPage() {
		return "/" + i.Slug + ".html"
	}
	return "/" + i.CategorySlug() + "/" + i.Slug + ".html"
}

// OutputPath is the slash separated location of the generated page below the output root.
func (i Item) OutputPath() string {
	return strings.TrimPrefix(i.URL(), "/")
}

// FormattedDate renders DatePublished for templates; the zero time renders empty.
func (i Item) FormattedDate() string {
	if i.DatePublished.IsZero() {
		return ""
	}
	return i.DatePublished.Format(DateFormat)
}

// TagList joins the tags the way they are written in a header.
func (i Item) TagList() string {
	return strings.Join(i.Tags, ", ")
}

// Clone returns a deep copy so callers can mutate it without touching the cache.
func (i Item) Clone() Item {
	out := i
	out.Tags = slices.Clone(i.Tags)
	if i.CustomFields != nil {
		out.CustomFields = maps.Clone(i.CustomFields)
	}
	return out
}

// KindFromPath derives the kind from the location of a file relative to the
// content directory. Any directory segment named "pages" marks a page.
func KindFromPath(contentDir, path string) Kind {
	rel, err := filepath.Rel(contentDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	dirs := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	for _, segment := range dirs {
		if strings.EqualFold(segment, PagesDir) {
			return KindPage
		}
	}
	return KindPost
}

// SortNewestFirst orders items by DatePublished descending. Ties fall back to
// title and then ID so the order never depends on map iteration.
func SortNewestFirst(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if c := b.DatePublished.Compare(a.DatePublished); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

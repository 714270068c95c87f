package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// ContentDir is the folder below a project root that holds the markdown sources.
const ContentDir = "content"

// Fetcher scans content files into a Cache and answers queries against it.
type Fetcher struct {
	cache  *Cache
	logger *slog.Logger
}

// NewFetcher returns a fetcher backed by cache. A nil cache gets a private one.
func NewFetcher(cache *Cache) *Fetcher {
	if cache == nil {
		cache = NewCache()
	}
	return &Fetcher{cache: cache, logger: slog.Default()}
}

// WithLogger sets the logger used for skipped files.
func (f *Fetcher) WithLogger(logger *slog.Logger) *Fetcher {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Cache returns the cache the fetcher reads and fills.
func (f *Fetcher) Cache() *Cache { return f.cache }

// GetContentItems returns every item below <rootFolder>/content keyed by ID,
// together with the files that were skipped.
//
// The first call scans the disk; later calls for the same root are served from
// the cache until it is cleared. A call for another root rescans.
func (f *Fetcher) GetContentItems(rootFolder string) (map[string]Item, []Diagnostic, error) {
	if strings.TrimSpace(rootFolder) == "" {
		return nil, nil, errors.WrapError(ErrRootRequired, errors.CategoryValidation, "cannot fetch content").Build()
	}
	info, err := os.Stat(rootFolder)
	if err != nil || !info.IsDir() {
		return nil, nil, errors.NotFoundError("root folder not found").
			WithCause(err).
			WithContext("path", rootFolder).
			Build()
	}

	if f.cache.servesRoot(rootFolder) {
		return f.cache.Items(), f.cache.Diagnostics(), nil
	}

	items, diagnostics, err := f.scan(rootFolder)
	if err != nil {
		return nil, nil, err
	}
	f.cache.replace(rootFolder, items, diagnostics)
	f.logger.Debug("Loaded content", logfields.Path(rootFolder), logfields.Count(len(items)))
	return f.cache.Items(), f.cache.Diagnostics(), nil
}

func (f *Fetcher) scan(rootFolder string) (map[string]Item, []Diagnostic, error) {
	items := make(map[string]Item)
	var diagnostics []Diagnostic

	contentDir := filepath.Join(rootFolder, ContentDir)
	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		return items, nil, nil
	}

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == contentDir {
				return walkErr
			}
			diagnostics = append(diagnostics, Diagnostic{Path: path, Reason: walkErr.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		item, err := parseSafely(contentDir, path)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Path: path, Reason: err.Error()})
			f.logger.Debug("Skipping content file", logfields.Path(path), logfields.Error(err))
			return nil
		}
		items[item.ID] = item
		return nil
	})
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan content").
			WithContext("path", contentDir).
			Build()
	}
	return items, diagnostics, nil
}

// parseSafely turns a panic inside the parser into an error so a single file
// cannot abort a scan.
func parseSafely(contentDir, path string) (item Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while parsing: %v", r)
		}
	}()
	return ParseFile(contentDir, path)
}

// GetCategories returns the distinct categories of the loaded items, sorted
// case-insensitively. The first spelling seen in newest-first order is kept.
func (f *Fetcher) GetCategories() ([]string, error) {
	if err := f.requireLoaded(); err != nil {
		return nil, err
	}
	var values []string
	for _, item := range f.cache.List() {
		values = append(values, item.Category)
	}
	return distinctFold(values), nil
}

// GetTags returns the distinct tags of the loaded items, sorted case-insensitively.
func (f *Fetcher) GetTags() ([]string, error) {
	if err := f.requireLoaded(); err != nil {
		return nil, err
	}
	var values []string
	for _, item := range f.cache.List() {
		values = append(values, item.Tags...)
	}
	return distinctFold(values), nil
}

// GetItemsByCategory returns loaded items whose category matches case-insensitively,
// newest first. A blank category selects uncategorized items.
func (f *Fetcher) GetItemsByCategory(category string) ([]Item, error) {
	if err := f.requireLoaded(); err != nil {
		return nil, err
	}
	want := strings.TrimSpace(category)
	var out []Item
	for _, item := range f.cache.List() {
		if strings.EqualFold(strings.TrimSpace(item.Category), want) {
			out = append(out, item)
		}
	}
	return out, nil
}

// UpdateCache upserts an item by ID without touching the disk.
func (f *Fetcher) UpdateCache(item *Item) error {
	if item == nil {
		return errors.WrapError(ErrItemRequired, errors.CategoryValidation, "cannot update cache").Build()
	}
	if strings.TrimSpace(item.ID) == "" {
		return errors.WrapError(ErrIDRequired, errors.CategoryValidation, "cannot update cache").Build()
	}
	f.cache.Upsert(*item)
	return nil
}

func (f *Fetcher) requireLoaded() error {
	if !f.cache.Loaded() {
		return errors.WrapError(ErrNotLoaded, errors.CategoryState, "content must be fetched first").Build()
	}
	return nil
}

func distinctFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

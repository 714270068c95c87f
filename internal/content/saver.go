package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"github.com/google/uuid"
	"github.com/inful/mdfp"
)

// Saver writes items back to disk and upserts them into a Cache.
type Saver struct {
	cache  *Cache
	now    func() time.Time
	logger *slog.Logger
}

// NewSaver returns a saver that keeps cache consistent with what it writes.
func NewSaver(cache *Cache) *Saver {
	if cache == nil {
		cache = NewCache()
	}
	return &Saver{cache: cache, now: time.Now, logger: slog.Default()}
}

// WithClock overrides the time source, for tests.
func (s *Saver) WithClock(now func() time.Time) *Saver {
	if now != nil {
		s.now = now
	}
	return s
}

// WithLogger sets the logger.
func (s *Saver) WithLogger(logger *slog.Logger) *Saver {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Save writes item below rootFolder and returns the stored version, with any
// generated ID, slug, path, dates and fingerprint filled in.
//
// DateUpdated only moves when the fingerprint of header and body changes, so
// saving an unmodified item is a no-op apart from the rewrite.
func (s *Saver) Save(rootFolder string, item *Item) (Item, error) {
	if strings.TrimSpace(rootFolder) == "" {
		return Item{}, errors.WrapError(ErrRootRequired, errors.CategoryValidation, "cannot save content").Build()
	}
	if item == nil {
		return Item{}, errors.WrapError(ErrItemRequired, errors.CategoryValidation, "cannot save content").Build()
	}
	if strings.TrimSpace(item.Title) == "" {
		return Item{}, errors.WrapError(ErrTitleRequired, errors.CategoryValidation, "cannot save content").Build()
	}
	if n := utf8.RuneCountInString(item.Summary); n > MaxSummaryLength {
		return Item{}, errors.WrapError(ErrSummaryLength, errors.CategoryValidation, "cannot save content").
			WithContext("length", n).
			WithContext("max", MaxSummaryLength).
			Build()
	}

	out := item.Clone()
	now := s.now()
	contentDir := filepath.Join(rootFolder, ContentDir)

	out.Title = strings.TrimSpace(out.Title)
	if strings.TrimSpace(out.ID) == "" {
		out.ID = uuid.NewString()
	}
	out.Slug = deriveSlug(out.Slug, out.Title, out.FilePath)
	if out.FilePath != "" && !filepath.IsAbs(out.FilePath) {
		out.FilePath = filepath.Join(rootFolder, out.FilePath)
	}
	if out.Kind == "" {
		if out.FilePath != "" {
			out.Kind = KindFromPath(contentDir, out.FilePath)
		} else {
			out.Kind = KindPost
		}
	}
	if out.FilePath == "" {
		folder := "posts"
		if out.IsPage() {
			folder = PagesDir
		}
		out.FilePath = filepath.Join(contentDir, folder, out.Slug+".md")
	}
	if out.DatePublished.IsZero() {
		out.DatePublished = now
	}

	fields := headerFields(out)
	fingerprint, err := computeFingerprint(fields, out.Contents)
	if err != nil {
		return Item{}, errors.WrapError(err, errors.CategoryContent, "failed to fingerprint content").Build()
	}
	if fingerprint != out.Fingerprint || out.DateUpdated.IsZero() {
		out.DateUpdated = now
	}
	out.Fingerprint = fingerprint
	fields[keyDateUpdated] = out.DateUpdated.Format(DateTimeLayout)
	fields[mdfp.FingerprintField] = fingerprint

	header, err := frontmatter.SerializeFields(fields, frontmatter.Style{Newline: "\n"})
	if err != nil {
		return Item{}, errors.WrapError(err, errors.CategoryContent, "failed to serialize front matter").Build()
	}
	data := frontmatter.Join(header, []byte(out.Contents), frontmatter.Style{Newline: "\n", HasTrailingNewline: true})

	if err := writeFileAtomic(out.FilePath, data); err != nil {
		return Item{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to write content file").
			WithContext("path", out.FilePath).
			Build()
	}

	s.cache.Upsert(out)
	s.logger.Debug("Saved content", logfields.Path(out.FilePath), logfields.Slug(out.Slug))
	return out.Clone(), nil
}

// headerFields renders the persisted header, excluding dateUpdated and the fingerprint.
// Custom fields never shadow recognized keys.
func headerFields(item Item) map[string]string {
	fields := make(map[string]string, len(item.CustomFields)+8)
	for k, v := range item.CustomFields {
		if !isKnownKey(k) {
			fields[k] = v
		}
	}
	fields[keyID] = item.ID
	fields[keyTitle] = item.Title
	fields[keySlug] = item.Slug
	fields[keyDatePublished] = item.DatePublished.Format(DateTimeLayout)
	fields[keyIsDraft] = strconv.FormatBool(item.IsDraft)
	if item.Category != "" {
		fields[keyCategory] = item.Category
	}
	if len(item.Tags) > 0 {
		fields[keyTags] = item.TagList()
	}
	if item.Summary != "" {
		fields[keySummary] = item.Summary
	}
	return fields
}

func computeFingerprint(fields map[string]string, body string) (string, error) {
	serialized, err := frontmatter.SerializeFields(fields, frontmatter.Style{Newline: "\n"})
	if err != nil {
		return "", err
	}
	header := strings.TrimSuffix(string(serialized), "\n")
	return mdfp.CalculateFingerprintFromParts(header, body), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".sitegen-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

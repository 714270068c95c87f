package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"github.com/google/uuid"
	"github.com/inful/mdfp"
)

// Header keys understood by the parser. Lookups are exact-case.
const (
	keyID            = "id"
	keyTitle         = "title"
	keyTitleAlt      = "Title"
	keySlug          = "slug"
	keySlugAlt       = "Slug"
	keyDatePublished = "datePublished"
	keyDateLegacy    = "date"
	keyDateUpdated   = "dateUpdated"
	keyCategory      = "category"
	keyCategoryAlt   = "Category"
	keyTags          = "tags"
	keyIsDraft       = "isDraft"
	keySummary       = "summary"
)

// DateTimeLayout is the layout dates are written with.
const DateTimeLayout = "2006-01-02 15:04:05"

var dateLayouts = []string{
	DateTimeLayout,
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// pathNamespace seeds the deterministic IDs of items without an id header.
var pathNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sitegen:content"))

func isKnownKey(key string) bool {
	switch key {
	case keyID, keyTitle, keyTitleAlt, keySlug, keySlugAlt, keyDatePublished, keyDateLegacy,
		keyDateUpdated, keyCategory, keyCategoryAlt, keyTags, keyIsDraft, keySummary, mdfp.FingerprintField:
		return true
	}
	return false
}

// ParseFile reads and parses one content file. contentDir is used to derive the
// item kind and the fallback ID.
func ParseFile(contentDir, path string) (Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Item{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(contentDir, path, data)
}

// Parse builds an item from raw file content.
func Parse(contentDir, path string, data []byte) (Item, error) {
	doc, err := frontmatter.Split(data)
	if err != nil {
		return Item{}, err
	}

	var (
		fields map[string]string
		body   []byte
	)
	if doc.Fenced {
		fields, err = frontmatter.ParseFields(doc.Header)
		body = doc.Body
	} else {
		fields, body, err = frontmatter.ParseLegacy(data)
	}
	if err != nil {
		return Item{}, err
	}

	rel, relErr := filepath.Rel(contentDir, path)
	if relErr != nil {
		rel = path
	}

	item := Item{
		FilePath:     path,
		Kind:         KindFromPath(contentDir, path),
		Contents:     string(body),
		CustomFields: make(map[string]string),
	}

	item.ID = strings.TrimSpace(fields[keyID])
	if item.ID == "" {
		item.ID = uuid.NewSHA1(pathNamespace, []byte(filepath.ToSlash(rel))).String()
	}

	item.Title = strings.TrimSpace(preferLower(fields, keyTitle, keyTitleAlt))
	if item.Title == "" {
		item.Title = TitleFromFileName(path)
	}
	item.Slug = deriveSlug(preferLower(fields, keySlug, keySlugAlt), item.Title, path)
	item.Category = strings.TrimSpace(preferLower(fields, keyCategory, keyCategoryAlt))
	item.Tags = splitTags(fields[keyTags])
	item.Summary = strings.TrimSpace(fields[keySummary])
	item.Fingerprint = strings.TrimSpace(fields[mdfp.FingerprintField])

	if draft, ok := fields[keyIsDraft]; ok {
		item.IsDraft, _ = strconv.ParseBool(strings.ToLower(strings.TrimSpace(draft)))
	}

	published, ok := fields[keyDatePublished]
	if !ok {
		published = fields[keyDateLegacy]
	}
	item.DatePublished = ParseDate(published)
	item.DateUpdated = ParseDate(fields[keyDateUpdated])

	for key, value := range fields {
		if !isKnownKey(key) {
			item.CustomFields[key] = value
		}
	}
	return item, nil
}

// ParseDate accepts the header date layouts and returns the zero time for
// blank or unrecognized values.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// preferLower returns the lowercase key's value when present, the alternate otherwise.
func preferLower(fields map[string]string, lower, alt string) string {
	if v, ok := fields[lower]; ok {
		return v
	}
	return fields[alt]
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

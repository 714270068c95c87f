package content

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Uncategorized is the category folder used when an item has no category.
const Uncategorized = "uncategorized"

// Untitled is the last resort slug.
const Untitled = "untitled"

// Sanitize turns free text into a URL-safe slug. Diacritics are folded to
// their base letter, the result is lowercased, every rune outside [a-z0-9-]
// becomes a separator and separator runs collapse to a single dash.
//
// Sanitize is idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			// dashes, whitespace, underscores and punctuation all separate words
			pendingDash = true
		}
	}
	return b.String()
}

// CategorySlug returns the URL folder for a category, "uncategorized" when blank.
func CategorySlug(category string) string {
	if slug := Sanitize(category); slug != "" {
		return slug
	}
	return Uncategorized
}

// TitleFromFileName derives a display title from a file name such as
// "my-first_post.md" -> "My First Post".
func TitleFromFileName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return ""
	}
	return cases.Title(language.English).String(base)
}

// deriveSlug applies the slug fallback chain: explicit slug, title, file name, "untitled".
func deriveSlug(explicit, title, path string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	if s := Sanitize(title); s != "" {
		return s
	}
	if path != "" {
		if s := Sanitize(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))); s != "" {
			return s
		}
	}
	return Untitled
}

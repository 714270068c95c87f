package pages

import (
	"html"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// BuildNavbar links every published page, sorted by title.
func BuildNavbar(items []content.Item) string {
	var pages []content.Item
	for _, item := range items {
		if item.IsPage() && !item.IsDraft {
			pages = append(pages, item)
		}
	}
	slices.SortStableFunc(pages, func(a, b content.Item) int {
		if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})

	var b strings.Builder
	b.WriteString(`<nav class="site-nav"><ul>`)
	for _, p := range pages {
		b.WriteString(`<li><a href="`)
		b.WriteString(html.EscapeString(p.URL()))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(p.Title))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

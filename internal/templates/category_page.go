package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

//go:embed templates_defaults/*.html
var embeddedDefaults embed.FS

// CategoryPageFile is the theme override for category listings, relative to the theme folder.
const CategoryPageFile = "templates/category-page.html"

const itemsSection = "items"

// ErrMissingItemsRegion is returned for a category template without an {{#items}} region.
var ErrMissingItemsRegion = errors.New("category page template has no {{#items}}...{{/items}} region")

// DefaultIndexTemplate returns the built-in home page template.
func DefaultIndexTemplate() string {
	return mustDefault("index.html")
}

func mustDefault(name string) string {
	b, err := embeddedDefaults.ReadFile("templates_defaults/" + name)
	if err != nil {
		panic(fmt.Sprintf("embedded default template %s missing: %v", name, err))
	}
	return string(b)
}

// CategoryPageTemplate renders the listing of one category.
type CategoryPageTemplate struct{}

// NewCategoryPageTemplate returns a CategoryPageTemplate.
func NewCategoryPageTemplate() *CategoryPageTemplate { return &CategoryPageTemplate{} }

// Load returns the theme override when themePath has one, otherwise the embedded default.
func (t *CategoryPageTemplate) Load(themePath string) (string, error) {
	if themePath != "" {
		path := filepath.Join(themePath, filepath.FromSlash(CategoryPageFile))
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			return string(raw), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read category template %s: %w", path, err)
		}
	}
	return mustDefault("category-page.html"), nil
}

// Render fills the template with items in the order given. The {{#items}}
// region is instantiated once per item; {{category}} and {{count}} are
// replaced in the rest of the template.
func (t *CategoryPageTemplate) Render(categoryName string, items []content.Item, themePath string) (string, error) {
	raw, err := t.Load(themePath)
	if err != nil {
		return "", err
	}

	tpl := Parse(raw)
	region := findSection(tpl.Nodes, itemsSection)
	if region == nil {
		return "", ErrMissingItemsRegion
	}

	var list strings.Builder
	for _, item := range items {
		renderItem(&list, region.Children, itemScope(item))
	}

	outer := scope{known: map[string]string{
		"category": categoryName,
		"count":    strconv.Itoa(len(items)),
	}}
	var b strings.Builder
	writeOuter(&b, tpl.Nodes, region, list.String(), outer)
	return b.String(), nil
}

func findSection(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.Kind == NodeSection && n.Name == name {
			return n
		}
		if n.Kind == NodeSection {
			if found := findSection(n.Children, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// writeOuter writes the template around the items region, splicing the
// rendered list in its place. Only the outer variables are substituted.
func writeOuter(b *strings.Builder, nodes []*Node, region *Node, list string, s scope) {
	for _, n := range nodes {
		switch {
		case n == region:
			b.WriteString(list)
		case n.Kind == NodeVariable:
			if v, ok := s.lookup(n.Name); ok {
				b.WriteString(v)
			} else {
				b.WriteString(n.Open)
			}
		case n.Kind == NodeSection:
			b.WriteString(n.Open)
			writeOuter(b, n.Children, region, list, s)
			b.WriteString(n.Close)
		default:
			n.writeSource(b)
		}
	}
}

package pages

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/templates"
	"git.home.luguber.info/inful/sitegen/internal/theme"
)

const stageCategory = "category_pages"

// CategoryDir is the output folder of the category listings.
const CategoryDir = "category"

// CategoryPageGenerator writes <output>/category/<category-slug>.html for every
// category with at least one published item.
type CategoryPageGenerator struct {
	ctx      *Context
	template *templates.CategoryPageTemplate
}

// NewCategoryPageGenerator returns a generator for ctx.
func NewCategoryPageGenerator(ctx *Context) *CategoryPageGenerator {
	return &CategoryPageGenerator{ctx: ctx, template: templates.NewCategoryPageTemplate()}
}

// Category is a group of items sharing a category slug.
type Category struct {
	Slug    string
	Display string
	Items   []content.Item // newest first, drafts included
}

// Published returns the non-draft members.
func (c Category) Published() []content.Item {
	var out []content.Item
	for _, item := range c.Items {
		if !item.IsDraft {
			out = append(out, item)
		}
	}
	return out
}

// GroupByCategory groups items by category slug, sorted by slug. Posts without a
// category fall into "uncategorized"; pages without one are not listed. The
// display name is the spelling of the newest published member.
func GroupByCategory(items []content.Item) []Category {
	sorted := slices.Clone(items)
	content.SortNewestFirst(sorted)

	bySlug := make(map[string]*Category)
	for _, item := range sorted {
		if item.IsPage() && strings.TrimSpace(item.Category) == "" {
			continue
		}
		slug := item.CategorySlug()
		group, ok := bySlug[slug]
		if !ok {
			group = &Category{Slug: slug}
			bySlug[slug] = group
		}
		if group.Display == "" && !item.IsDraft {
			group.Display = strings.TrimSpace(item.Category)
		}
		group.Items = append(group.Items, item)
	}

	out := make([]Category, 0, len(bySlug))
	for _, group := range bySlug {
		if group.Display == "" {
			group.Display = displayFallback(group.Slug)
		}
		out = append(out, *group)
	}
	slices.SortFunc(out, func(a, b Category) int { return strings.Compare(a.Slug, b.Slug) })
	return out
}

func displayFallback(slug string) string {
	if slug == content.Uncategorized {
		return "Uncategorized"
	}
	return slug
}

// Generate writes the listings and returns how many were written.
func (g *CategoryPageGenerator) Generate() int {
	layout := g.ctx.processedLayout()
	themePath := theme.ThemePath(g.ctx.Project)
	written := 0

	for _, category := range GroupByCategory(g.ctx.Items) {
		published := category.Published()
		if len(published) == 0 {
			g.ctx.Logger.Debug("Skipping all-draft category", logfields.Category(category.Display))
			continue
		}
		rel := CategoryDir + "/" + category.Slug + ".html"
		if err := g.ctx.claim(rel, "category "+category.Display); err != nil {
			g.ctx.fail(stageCategory, rel, err)
			continue
		}
		err := guard(func() error {
			body, err := g.template.Render(category.Display, published, themePath)
			if err != nil {
				return err
			}
			return g.ctx.write(rel, g.ctx.page(layout, category.Display, body))
		})
		if err != nil {
			g.ctx.fail(stageCategory, rel, err)
			continue
		}
		written++
	}
	g.ctx.Recorder.PagesWritten("category", written)
	g.ctx.Logger.Debug("Generated category pages", logfields.Count(written))
	return written
}

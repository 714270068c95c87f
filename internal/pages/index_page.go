package pages

import (
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/templates"
	"git.home.luguber.info/inful/sitegen/internal/theme"
)

const stageIndex = "index_page"

// IndexFile is the home page below the output root.
const IndexFile = "index.html"

// IndexPageGenerator writes the home page from the theme's index.html or a
// built-in fallback. It must run after ContentPageGenerator: a published page
// with slug "index" already owns index.html and suppresses the synthesized one.
type IndexPageGenerator struct {
	ctx    *Context
	loader *theme.Loader
}

// NewIndexPageGenerator returns a generator for ctx.
func NewIndexPageGenerator(ctx *Context) *IndexPageGenerator {
	return &IndexPageGenerator{ctx: ctx, loader: theme.NewLoader()}
}

// Suppressed reports whether a published page claims the home page.
func (g *IndexPageGenerator) Suppressed() bool {
	for _, item := range g.ctx.Items {
		if item.IsPage() && !item.IsDraft && strings.EqualFold(item.Slug, "index") {
			return true
		}
	}
	return false
}

// Generate writes index.html and returns the number of pages written (0 or 1).
func (g *IndexPageGenerator) Generate() int {
	if g.Suppressed() {
		g.ctx.Logger.Debug("Index page provided by content", logfields.Reason("page with slug index"))
		return 0
	}

	if err := g.ctx.claim(IndexFile, "index page"); err != nil {
		g.ctx.fail(stageIndex, IndexFile, err)
		return 0
	}

	err := guard(func() error {
		tpl, ok, err := g.loader.LoadIndexTemplate(g.ctx.Project)
		if err != nil {
			return err
		}
		if !ok {
			tpl = templates.DefaultIndexTemplate()
		}

		body := g.ctx.Processor.ProcessPostsBlocks(tpl, g.ctx.Items)
		if g.ctx.Renderer != nil {
			rendered, err := g.ctx.Renderer.Render([]byte(body))
			if err != nil {
				return err
			}
			body = rendered
			inner, found, err := templates.ExtractContentDiv(rendered)
			if err != nil {
				return err
			}
			if found {
				body = inner
			}
		}
		return g.ctx.write(IndexFile, g.ctx.page(g.ctx.processedLayout(), g.ctx.Project.Title, body))
	})
	if err != nil {
		g.ctx.fail(stageIndex, IndexFile, err)
		return 0
	}
	g.ctx.Recorder.PagesWritten("index", 1)
	return 1
}

package pages

import (
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

const stageContent = "content_pages"

// SiteLink is a link from a content body to a page of the site.
type SiteLink struct {
	Source string // content file
	Target string // site path, e.g. /blog/x.html
}

// ContentPageGenerator writes one page per published item: pages to
// <output>/<slug>.html, everything else to <output>/<category-slug>/<slug>.html.
type ContentPageGenerator struct {
	ctx   *Context
	links []SiteLink
}

// NewContentPageGenerator returns a generator for ctx.
func NewContentPageGenerator(ctx *Context) *ContentPageGenerator {
	return &ContentPageGenerator{ctx: ctx}
}

// Generate writes the pages and returns how many were written.
func (g *ContentPageGenerator) Generate() int {
	layout := g.ctx.processedLayout()
	written := 0

	for _, item := range g.ctx.Items {
		if item.IsDraft {
			continue
		}
		if err := g.ctx.claim(item.OutputPath(), item.FilePath); err != nil {
			g.ctx.fail(stageContent, item.FilePath, err)
			continue
		}

		err := guard(func() error { return g.generateItem(layout, item) })
		if err != nil {
			g.ctx.fail(stageContent, item.FilePath, err)
			continue
		}
		written++
	}
	g.ctx.Recorder.PagesWritten("content", written)
	g.ctx.Logger.Debug("Generated content pages", logfields.Count(written))
	return written
}

func (g *ContentPageGenerator) generateItem(layout string, item content.Item) error {
	body := g.ctx.Processor.ProcessPostsBlocks(item.Contents, g.ctx.Items)
	rendered, err := g.ctx.Renderer.Render([]byte(body))
	if err != nil {
		return err
	}
	if err := g.ctx.write(item.OutputPath(), g.ctx.page(layout, item.Title, rendered)); err != nil {
		return err
	}
	for _, link := range markdown.ExtractLinks([]byte(body)) {
		if link.IsSiteLink() {
			g.links = append(g.links, SiteLink{Source: item.FilePath, Target: link.Path()})
		}
	}
	return nil
}

// Links returns the site links found in the bodies of generated pages.
func (g *ContentPageGenerator) Links() []SiteLink { return g.links }

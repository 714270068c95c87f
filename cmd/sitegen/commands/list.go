package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Categories bool   `help:"List distinct categories" xor:"what"`
	Tags       bool   `help:"List distinct tags" xor:"what"`
	Category   string `help:"Only items of this category (case-insensitive)" xor:"what"`
	Drafts     bool   `help:"Include drafts"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	fetcher := content.NewFetcher(content.NewCache()).WithLogger(g.logger())
	items, diagnostics, err := fetcher.GetContentItems(cfg.Project.Root)
	if err != nil {
		return err
	}
	out := g.out()
	for _, d := range diagnostics {
		_, _ = fmt.Fprintf(out, "skipped: %s\n", d)
	}

	switch {
	case l.Categories:
		categories, err := fetcher.GetCategories()
		if err != nil {
			return err
		}
		for _, c := range categories {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", c, content.CategorySlug(c))
		}
		return nil
	case l.Tags:
		tags, err := fetcher.GetTags()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, strings.Join(tags, "\n"))
		return nil
	}

	list := fetcher.Cache().List()
	if l.Category != "" {
		if list, err = fetcher.GetItemsByCategory(l.Category); err != nil {
			return err
		}
	}
	shown := 0
	for _, item := range list {
		if item.IsDraft && !l.Drafts {
			continue
		}
		draft := ""
		if item.IsDraft {
			draft = " [draft]"
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s%s\n", item.DatePublished.Format("2006-01-02"), item.Kind, item.URL(), item.Title, draft)
		shown++
	}
	g.logger().Debug("Listed content", "shown", shown, "total", len(items))
	return nil
}

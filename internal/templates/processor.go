package templates

import (
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Processor expands posts blocks, item variables and conditional sections.
//
// A template must be processed once per generation pass. Expanded output has no
// block markers left, so running it again is not a no-op on templates whose
// items contain tags of their own.
type Processor struct{}

// NewProcessor returns a Processor.
func NewProcessor() *Processor { return &Processor{} }

// ProcessPostsBlocks expands every {{posts ...}}...{{/posts}} block against
// items. Everything outside the blocks is written back verbatim.
func (p *Processor) ProcessPostsBlocks(template string, items []content.Item) string {
	tpl := Parse(template)
	var b strings.Builder
	for _, n := range tpl.Nodes {
		p.expandBlocks(&b, n, items)
	}
	return b.String()
}

func (p *Processor) expandBlocks(b *strings.Builder, n *Node, items []content.Item) {
	switch n.Kind {
	case NodePosts:
		for _, item := range Select(items, ParseFilter(n.Args)) {
			renderItem(b, n.Children, itemScope(item))
		}
	case NodeSection:
		b.WriteString(n.Open)
		for _, c := range n.Children {
			p.expandBlocks(b, c, items)
		}
		b.WriteString(n.Close)
	default:
		b.WriteString(n.Open)
	}
}

// ProcessSingleItemVariables substitutes one item's variables and resolves its
// conditional sections. Posts blocks are left untouched.
func (p *Processor) ProcessSingleItemVariables(template string, item content.Item) string {
	var b strings.Builder
	renderItem(&b, Parse(template).Nodes, itemScope(item))
	return b.String()
}

// scope holds the values visible to an item template. known names always
// resolve, possibly to an empty string; custom names resolve only when set.
type scope struct {
	known  map[string]string
	custom map[string]string
}

func (s scope) lookup(name string) (string, bool) {
	if v, ok := s.known[name]; ok {
		return v, true
	}
	v, ok := s.custom[name]
	return v, ok
}

func itemScope(item content.Item) scope {
	return scope{
		known: map[string]string{
			"url":      item.URL(),
			"title":    item.Title,
			"category": item.Category,
			"summary":  item.Summary,
			"date":     item.FormattedDate(),
			"slug":     item.Slug,
			"tags":     item.TagList(),
		},
		custom: item.CustomFields,
	}
}

// renderItem writes nodes with the scope applied. Unknown variables stay as
// written. A section over an absent custom field keeps its tags while its body
// is still rendered. Nested posts blocks are copied verbatim.
func renderItem(b *strings.Builder, nodes []*Node, s scope) {
	for _, n := range nodes {
		switch n.Kind {
		case NodeVariable:
			if v, ok := s.lookup(n.Name); ok {
				b.WriteString(v)
			} else {
				b.WriteString(n.Open)
			}
		case NodeSection:
			v, ok := s.lookup(n.Name)
			switch {
			case !ok:
				b.WriteString(n.Open)
				renderItem(b, n.Children, s)
				b.WriteString(n.Close)
			case strings.TrimSpace(v) != "":
				renderItem(b, n.Children, s)
			}
		case NodePosts:
			n.writeSource(b)
		default:
			b.WriteString(n.Open)
		}
	}
}

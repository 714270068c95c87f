package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Options controls markdown rendering.
type Options struct {
	// HardWraps turns single newlines inside a paragraph into <br>.
	HardWraps bool
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// IsSiteLink reports whether the destination points at a generated page of the
// site itself, such as "/blog/x.html".
func (l Link) IsSiteLink() bool {
	d := l.Destination
	if l.Kind == LinkKindImage || !strings.HasPrefix(d, "/") || strings.HasPrefix(d, "//") {
		return false
	}
	return strings.HasSuffix(l.Path(), ".html")
}

// Path is the destination without query or fragment.
func (l Link) Path() string {
	d := l.Destination
	if i := strings.IndexAny(d, "?#"); i >= 0 {
		d = d[:i]
	}
	return d
}

// ExtractLinks parses a markdown body and returns its links in document order,
// followed by reference definitions sorted by label.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// reference-style links resolve to Link nodes with a Destination
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}

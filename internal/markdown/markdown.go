// Package markdown converts content bodies to HTML with goldmark and extracts
// the links they contain.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown into an HTML fragment.
type Renderer interface {
	Render(source []byte) (string, error)
}

// GoldmarkRenderer renders GitHub flavoured markdown. Raw HTML in the source is
// passed through so themes can embed markup in index templates and bodies.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewRenderer returns the default renderer.
func NewRenderer(opts Options) *GoldmarkRenderer {
	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	htmlOpts := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(htmlOpts...))
	return &GoldmarkRenderer{md: goldmark.New(rendererOpts...)}
}

// Render implements Renderer.
func (r *GoldmarkRenderer) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

package pages

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// Sink receives what the generators produce.
type Sink interface {
	// FileWritten records a generated file, slash separated and relative to the output root.
	FileWritten(rel string)
	// ItemFailed records a non-fatal failure of one output unit.
	ItemFailed(msg string)
}

// Context carries everything the generators need for one run.
type Context struct {
	Project   config.Project
	OutputDir string
	Layout    string // validated theme layout
	Items     []content.Item
	Renderer  markdown.Renderer
	Processor *templates.Processor
	Sink      Sink
	Recorder  metrics.Recorder
	Logger    *slog.Logger

	navbar  string
	claimed map[string]string // output path -> owner
}

// NewContext builds a Context. Items are sorted by ID so every run visits them
// in the same order; nil collaborators get defaults.
func NewContext(project config.Project, outputDir, layout string, items []content.Item, sink Sink) *Context {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b content.Item) int { return strings.Compare(a.ID, b.ID) })
	c := &Context{
		Project:   project,
		OutputDir: outputDir,
		Layout:    layout,
		Items:     sorted,
		Renderer:  markdown.NewRenderer(markdown.Options{}),
		Processor: templates.NewProcessor(),
		Sink:      sink,
		Recorder:  metrics.NoopRecorder{},
		Logger:    slog.Default(),
		claimed:   make(map[string]string),
	}
	c.navbar = BuildNavbar(sorted)
	return c
}

// Navbar returns the navigation markup shared by every page.
func (c *Context) Navbar() string { return c.navbar }

// processedLayout runs the posts-block processor over the layout.
func (c *Context) processedLayout() string {
	return c.Processor.ProcessPostsBlocks(c.Layout, c.Items)
}

// page substitutes one unit into the processed layout.
func (c *Context) page(layout, title, body string) string {
	return templates.Substitute(layout, map[string]string{
		"title":   html.EscapeString(title),
		"navbar":  c.navbar,
		"content": body,
	})
}

// claim reserves the output path rel for owner. Every path is generated at
// most once per run, whichever generator asks first, and must stay below the
// output directory.
func (c *Context) claim(rel, owner string) error {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return fmt.Errorf("output %s is outside the output directory", rel)
	}
	key := path.Clean(rel)
	if other, taken := c.claimed[key]; taken {
		return fmt.Errorf("output %s already generated from %s", key, other)
	}
	c.claimed[key] = owner
	return nil
}

// write stores a page below the output directory and reports it.
func (c *Context) write(rel, data string) error {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return fmt.Errorf("output %s is outside the output directory", rel)
	}
	target := filepath.Join(c.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}
	// #nosec G306 -- generated pages are public
	if err := os.WriteFile(target, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	c.Sink.FileWritten(rel)
	return nil
}

// fail reports a unit failure without stopping the generator.
func (c *Context) fail(stage, unit string, err error) {
	c.Logger.Warn("Page generation failed", logfields.Stage(stage), logfields.Path(unit), logfields.Error(err))
	c.Recorder.ItemFailed(stage)
	c.Sink.ItemFailed(fmt.Sprintf("%s: %v", unit, err))
}

// guard runs fn and turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

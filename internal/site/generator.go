// Package site runs a full static site generation for one project.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/assets"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	foundationerrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/history"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/pages"
	"git.home.luguber.info/inful/sitegen/internal/theme"
)

// Stage names used in logs, metrics and Result.StageDurations.
const (
	StagePrepareOutput = "prepare_output"
	StageTheme         = "theme"
	StageContent       = "content"
	StageContentPages  = "content_pages"
	StageCategoryPages = "category_pages"
	StageIndexPage     = "index_page"
	StageThemeAssets   = "theme_assets"
	StageStaticAssets  = "static_assets"
	StageLinkCheck     = "link_check"
)

// StaticDir is the folder below the project root copied verbatim into the output.
const StaticDir = "static"

// DefaultOutputDir is used when a project names no output folder.
const DefaultOutputDir = "output"

// HistoryRecorder stores finished runs.
type HistoryRecorder interface {
	Record(ctx context.Context, run history.Run) (history.Run, error)
}

// StaticSiteGenerator turns a project folder into a static site.
type StaticSiteGenerator struct {
	fetcher  *content.Fetcher
	loader   *theme.Loader
	copier   *assets.Copier
	renderer markdown.Renderer
	recorder metrics.Recorder
	history  HistoryRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewStaticSiteGenerator returns a generator reading content through cache.
// A nil cache gets a private one.
func NewStaticSiteGenerator(cache *content.Cache) *StaticSiteGenerator {
	if cache == nil {
		cache = content.NewCache()
	}
	return &StaticSiteGenerator{
		fetcher:  content.NewFetcher(cache),
		loader:   theme.NewLoader(),
		copier:   assets.NewCopier(),
		renderer: markdown.NewRenderer(markdown.Options{}),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithRenderer replaces the markdown renderer.
func (g *StaticSiteGenerator) WithRenderer(r markdown.Renderer) *StaticSiteGenerator {
	if r != nil {
		g.renderer = r
	}
	return g
}

// WithRecorder attaches a metrics recorder.
func (g *StaticSiteGenerator) WithRecorder(r metrics.Recorder) *StaticSiteGenerator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithHistory records every finished run in h.
func (g *StaticSiteGenerator) WithHistory(h HistoryRecorder) *StaticSiteGenerator {
	g.history = h
	return g
}

// WithLogger sets the logger.
func (g *StaticSiteGenerator) WithLogger(logger *slog.Logger) *StaticSiteGenerator {
	if logger != nil {
		g.logger = logger
		g.fetcher.WithLogger(logger)
	}
	return g
}

// WithClock overrides the time source.
func (g *StaticSiteGenerator) WithClock(now func() time.Time) *StaticSiteGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// OutputDir returns the folder a project generates into.
func OutputDir(project config.Project) string {
	if strings.TrimSpace(project.Output) == "" {
		return filepath.Join(project.Root, DefaultOutputDir)
	}
	return project.Output
}

// run carries the per-generation state shared by the stages.
type run struct {
	project   config.Project
	outputDir string
	result    *Result
	layout    string
	items     []content.Item
	pageCtx   *pages.Context
	links     []pages.SiteLink
}

// Generate builds the site for project. It never returns nil; a fatal failure
// leaves Success false with the cause in Err, while per-page failures only add
// to Errors. Cancellation of ctx is honoured between stages.
func (g *StaticSiteGenerator) Generate(ctx context.Context, project config.Project) (res *Result) {
	res = newResult(g.now())
	r := &run{project: project, outputDir: OutputDir(project), result: res}

	g.logger.Info("Starting site generation",
		logfields.Path(project.Root), logfields.Theme(project.Theme), slog.String("output", r.outputDir))

	defer func() {
		if rec := recover(); rec != nil {
			res.fail(foundationerrors.InternalError(fmt.Sprintf("site generation panicked: %v", rec)).Fatal().Build())
		}
		res.EndTime = g.now()
		g.finish(ctx, r)
	}()

	if err := validateProject(project); err != nil {
		res.fail(err)
		return res
	}

	stages := []struct {
		name string
		fn   func(*run) error
	}{
		{StagePrepareOutput, g.prepareOutput},
		{StageTheme, g.loadTheme},
		{StageContent, g.loadContent},
		{StageContentPages, g.contentPages},
		{StageCategoryPages, g.categoryPages},
		{StageIndexPage, g.indexPage},
		{StageThemeAssets, g.themeAssets},
		{StageStaticAssets, g.staticAssets},
		{StageLinkCheck, g.checkLinks},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			res.fail(foundationerrors.WrapError(err, foundationerrors.CategoryGeneration, "site generation canceled").
				WithContext("stage", st.name).Build())
			g.recorder.StageFinished(st.name, metrics.ResultCanceled, 0)
			return res
		}
		if err := g.runStage(r, st.name, st.fn); err != nil {
			res.fail(err)
			return res
		}
	}

	res.Success = true
	return res
}

func (g *StaticSiteGenerator) runStage(r *run, name string, fn func(*run) error) error {
	start := time.Now()
	err := fn(r)
	d := time.Since(start)
	r.result.StageDurations[name] = d
	if err != nil {
		g.recorder.StageFinished(name, metrics.ResultFatal, d)
		g.logger.Error("Stage failed", logfields.Stage(name), logfields.Duration(d), logfields.Error(err))
		return err
	}
	g.recorder.StageFinished(name, metrics.ResultSuccess, d)
	g.logger.Debug("Stage complete", logfields.Stage(name), logfields.Duration(d))
	return nil
}

func (g *StaticSiteGenerator) finish(ctx context.Context, r *run) {
	res := r.result
	outcome := res.Outcome()
	g.recorder.BuildFinished(outcome, res.Duration())

	if res.Success {
		g.logger.Info("Site generation complete", slog.String("summary", res.Summary()))
	} else {
		g.logger.Error("Site generation failed", logfields.Error(res.Err), slog.String("outcome", string(outcome)))
	}

	if g.history == nil {
		return
	}
	// the run is recorded even when ctx was canceled
	hctx := context.WithoutCancel(ctx)
	if _, err := g.history.Record(hctx, historyRun(r.project, res)); err != nil {
		g.logger.Warn("Failed to record build history", logfields.Error(err))
		res.Warnings = append(res.Warnings, fmt.Sprintf("history: %v", err))
	}
}

func historyRun(project config.Project, res *Result) history.Run {
	run := history.Run{
		Project:    project.Name,
		Root:       project.Root,
		Theme:      project.Theme,
		StartedAt:  res.StartTime,
		FinishedAt: res.EndTime,
		Outcome:    string(res.Outcome()),
		Pages:      res.PagesGenerated,
		Files:      len(res.GeneratedFiles),
		Assets:     res.AssetsCopied,
		Errors:     slices.Clone(res.Errors),
		Warnings:   slices.Clone(res.Warnings),
		Skipped:    len(res.Skipped),
	}
	if res.Err != nil {
		run.Error = res.Err.Error()
	}
	return run
}

func validateProject(project config.Project) error {
	if strings.TrimSpace(project.Root) == "" {
		return foundationerrors.ValidationError("project root is required").Build()
	}
	if strings.TrimSpace(project.Theme) == "" {
		return foundationerrors.ValidationError("project theme is required").Build()
	}
	info, err := os.Stat(project.Root)
	if err != nil {
		return foundationerrors.NotFoundError(fmt.Sprintf("project root not found: %s", project.Root)).WithCause(err).Build()
	}
	if !info.IsDir() {
		return foundationerrors.ValidationError(fmt.Sprintf("project root is not a directory: %s", project.Root)).Build()
	}
	return nil
}

// prepareOutput empties the output folder but keeps the folder itself.
// Entries that cannot be removed are logged and left behind.
func (g *StaticSiteGenerator) prepareOutput(r *run) error {
	if err := os.MkdirAll(r.outputDir, 0o750); err != nil {
		return foundationerrors.FileSystemError("cannot create output directory").
			WithCause(err).WithContext("path", r.outputDir).Fatal().Build()
	}
	entries, err := os.ReadDir(r.outputDir)
	if err != nil {
		return foundationerrors.FileSystemError("cannot read output directory").
			WithCause(err).WithContext("path", r.outputDir).Fatal().Build()
	}
	for _, entry := range entries {
		target := filepath.Join(r.outputDir, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			g.logger.Warn("Failed to clear output entry", logfields.Path(target), logfields.Error(err))
		}
	}
	return nil
}

func (g *StaticSiteGenerator) loadTheme(r *run) error {
	layout := g.loader.LoadThemeLayout(r.project)
	if !layout.Success {
		return foundationerrors.ThemeError(layout.Error).Fatal().
			WithContext("theme", r.project.Theme).Build()
	}
	r.layout = layout.Layout
	return nil
}

func (g *StaticSiteGenerator) loadContent(r *run) error {
	items, diagnostics, err := g.fetcher.GetContentItems(r.project.Root)
	if err != nil {
		return err
	}
	r.result.Skipped = diagnostics
	for _, d := range diagnostics {
		g.logger.Warn("Skipped content file", logfields.Path(d.Path), logfields.Reason(d.Reason))
	}

	r.items = make([]content.Item, 0, len(items))
	for _, item := range items {
		r.items = append(r.items, item)
	}
	g.recorder.ContentLoaded(len(r.items), len(diagnostics))

	r.pageCtx = pages.NewContext(r.project, r.outputDir, r.layout, r.items, r.result)
	r.pageCtx.Renderer = g.renderer
	r.pageCtx.Recorder = g.recorder
	r.pageCtx.Logger = g.logger
	g.logger.Info("Content loaded", logfields.Count(len(r.items)), slog.Int("skipped", len(diagnostics)))
	return nil
}

func (g *StaticSiteGenerator) contentPages(r *run) error {
	gen := pages.NewContentPageGenerator(r.pageCtx)
	r.result.PagesGenerated += gen.Generate()
	r.links = gen.Links()
	return nil
}

func (g *StaticSiteGenerator) categoryPages(r *run) error {
	r.result.PagesGenerated += pages.NewCategoryPageGenerator(r.pageCtx).Generate()
	return nil
}

func (g *StaticSiteGenerator) indexPage(r *run) error {
	r.result.PagesGenerated += pages.NewIndexPageGenerator(r.pageCtx).Generate()
	return nil
}

func (g *StaticSiteGenerator) themeAssets(r *run) error {
	return g.copyAssets(r, "theme", theme.ThemePath(r.project), assets.ThemeSkip)
}

func (g *StaticSiteGenerator) staticAssets(r *run) error {
	return g.copyAssets(r, "static", filepath.Join(r.project.Root, StaticDir), nil)
}

// copyAssets failures are non-fatal: pages are already written.
func (g *StaticSiteGenerator) copyAssets(r *run, source, src string, skip assets.SkipFunc) error {
	n, err := g.copier.CopyTree(src, r.outputDir, skip)
	r.result.AssetsCopied += n
	g.recorder.AssetsCopied(source, n)
	if err != nil {
		msg := fmt.Sprintf("%s assets: %v", source, err)
		g.logger.Warn("Asset copy failed", slog.String("source", source), logfields.Error(err))
		r.result.Errors = append(r.result.Errors, msg)
	}
	return nil
}

// checkLinks warns about site links in content that point at no generated
// page or copied asset.
func (g *StaticSiteGenerator) checkLinks(r *run) error {
	seen := make(map[string]bool)
	for _, link := range r.links {
		target := path.Clean("/" + strings.TrimPrefix(link.Target, "/"))
		key := link.Source + "\x00" + target
		if seen[key] {
			continue
		}
		seen[key] = true
		if exists(r.outputDir, target) {
			continue
		}
		r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("%s: broken link %s", link.Source, target))
		g.logger.Warn("Broken site link", logfields.File(link.Source), logfields.Path(target))
	}
	return nil
}

func exists(outputDir, target string) bool {
	p := filepath.Join(outputDir, filepath.FromSlash(strings.TrimPrefix(target, "/")))
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(p, pages.IndexFile))
		return err == nil
	}
	return true
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

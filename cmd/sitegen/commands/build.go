package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/history"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for the generated site (overrides project.output)"`
	Theme       string `help:"Theme to use (overrides project.theme)"`
	Report      string `help:"Write a JSON build report to this file (overrides build.report)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile (overrides build.metrics_file)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Project.Output = b.Output
	}
	if b.Theme != "" {
		cfg.Project.Theme = b.Theme
	}
	if b.Report != "" {
		cfg.Build.Report = b.Report
	}
	if b.MetricsFile != "" {
		cfg.Build.MetricsFile = b.MetricsFile
	}
	if err := config.ValidateProject(cfg.Project); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, g, cfg)
}

// RunBuild generates the site described by cfg and writes the configured
// report, metrics and history. Per-page failures are printed but do not fail
// the command.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) error {
	logger := g.logger()
	out := g.out()

	var promRecorder *metrics.PrometheusRecorder
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Build.MetricsFile != "" {
		promRecorder = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = promRecorder
	}

	generator := site.NewStaticSiteGenerator(content.NewCache()).
		WithLogger(logger).
		WithRecorder(recorder).
		WithRenderer(markdown.NewRenderer(markdown.Options{HardWraps: cfg.Markdown.HardWraps}))

	if cfg.Build.HistoryDB != "" {
		store, err := history.Open(cfg.Build.HistoryDB)
		if err != nil {
			logger.Warn("Build history disabled", logfields.Path(cfg.Build.HistoryDB), logfields.Error(err))
		} else {
			defer func() { _ = store.Close() }()
			generator.WithHistory(store)
		}
	}

	_, _ = fmt.Fprintf(out, "Building %s into %s\n", cfg.Project.Root, site.OutputDir(cfg.Project))
	res := generator.Generate(ctx, cfg.Project)

	for _, msg := range res.Errors {
		_, _ = fmt.Fprintf(out, "error: %s\n", msg)
	}
	for _, msg := range res.Warnings {
		_, _ = fmt.Fprintf(out, "warning: %s\n", msg)
	}
	for _, d := range res.Skipped {
		_, _ = fmt.Fprintf(out, "skipped: %s\n", d)
	}

	if cfg.Build.Report != "" {
		if err := res.Persist(cfg.Build.Report); err != nil {
			logger.Warn("Failed to write build report", logfields.Path(cfg.Build.Report), logfields.Error(err))
		}
	}
	if promRecorder != nil {
		if err := promRecorder.WriteTextfile(cfg.Build.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Build.MetricsFile), logfields.Error(err))
		}
	}

	if !res.Success {
		return res.Err
	}
	_, _ = fmt.Fprintln(out, res.Summary())
	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit  int  `short:"n" help:"Number of runs to show" default:"10"`
	Errors bool `help:"Also print the errors and warnings of each run"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if cfg.Build.HistoryDB == "" {
		return errors.ConfigError("build.history_db is not configured").Build()
	}

	store, err := history.Open(cfg.Build.HistoryDB)
	if err != nil {
		return errors.HistoryError("cannot open build history").WithCause(err).Build()
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return errors.HistoryError("cannot read build history").WithCause(err).Build()
	}

	out := g.out()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "no builds recorded")
		return nil
	}
	for _, r := range runs {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\tpages=%d files=%d assets=%d skipped=%d duration=%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Outcome, r.Project,
			r.Pages, r.Files, r.Assets, r.Skipped, r.Duration().Truncate(time.Millisecond))
		if !h.Errors {
			continue
		}
		if r.Error != "" {
			_, _ = fmt.Fprintf(out, "  fatal: %s\n", r.Error)
		}
		for _, e := range r.Errors {
			_, _ = fmt.Fprintf(out, "  error: %s\n", e)
		}
		for _, w := range r.Warnings {
			_, _ = fmt.Fprintf(out, "  warning: %s\n", w)
		}
	}
	return nil
}

package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// Result aggregates one generation run.
//
// Errors holds per-unit failures and may be non-empty while Success is true.
// Success is false only when the whole run was aborted; Err then holds the cause.
type Result struct {
	Success        bool
	StartTime      time.Time
	EndTime        time.Time
	GeneratedFiles []string // slash separated, relative to the output directory
	Errors         []string
	Warnings       []string
	PagesGenerated int
	AssetsCopied   int
	Skipped        []content.Diagnostic
	StageDurations map[string]time.Duration
	Err            error
}

func newResult(start time.Time) *Result {
	return &Result{StartTime: start, StageDurations: make(map[string]time.Duration)}
}

// FileWritten implements pages.Sink.
func (r *Result) FileWritten(rel string) {
	r.GeneratedFiles = append(r.GeneratedFiles, rel)
}

// ItemFailed implements pages.Sink.
func (r *Result) ItemFailed(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *Result) fail(err error) {
	r.Success = false
	if r.Err == nil {
		r.Err = err
	}
}

// Duration is the wall time of the run.
func (r *Result) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// Outcome classifies the run for metrics and history.
func (r *Result) Outcome() metrics.BuildOutcomeLabel {
	switch {
	case !r.Success && r.Err != nil && isCanceled(r.Err):
		return metrics.OutcomeCanceled
	case !r.Success:
		return metrics.OutcomeFailed
	case len(r.Errors) > 0 || len(r.Warnings) > 0 || len(r.Skipped) > 0:
		return metrics.OutcomeWarning
	default:
		return metrics.OutcomeSuccess
	}
}

// Summary renders a single line overview of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("pages=%d files=%d assets=%d duration=%s errors=%d warnings=%d skipped=%d outcome=%s",
		r.PagesGenerated, len(r.GeneratedFiles), r.AssetsCopied, r.Duration().Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), len(r.Skipped), r.Outcome())
}

// resultJSON is the serialized form of a Result.
type resultJSON struct {
	SchemaVersion  int                  `json:"schema_version"`
	Success        bool                 `json:"success"`
	Outcome        string               `json:"outcome"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	DurationMS     int64                `json:"duration_ms"`
	GeneratedFiles []string             `json:"generated_files"`
	Errors         []string             `json:"errors"`
	Warnings       []string             `json:"warnings"`
	PagesGenerated int                  `json:"pages_generated"`
	AssetsCopied   int                  `json:"assets_copied"`
	Skipped        []content.Diagnostic `json:"skipped"`
	StageMS        map[string]int64     `json:"stage_durations_ms"`
	Error          string               `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		SchemaVersion:  1,
		Success:        r.Success,
		Outcome:        string(r.Outcome()),
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		DurationMS:     r.Duration().Milliseconds(),
		GeneratedFiles: nonNil(r.GeneratedFiles),
		Errors:         nonNil(r.Errors),
		Warnings:       nonNil(r.Warnings),
		PagesGenerated: r.PagesGenerated,
		AssetsCopied:   r.AssetsCopied,
		Skipped:        r.Skipped,
		StageMS:        make(map[string]int64, len(r.StageDurations)),
	}
	if out.Skipped == nil {
		out.Skipped = []content.Diagnostic{}
	}
	for stage, d := range r.StageDurations {
		out.StageMS[stage] = d.Milliseconds()
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Persist writes the result as indented JSON to path via a temporary file and rename.
func (r *Result) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ensure directory for report: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	tmp := path + ".tmp"
	// #nosec G306 -- the report is meant to be readable
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename json: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

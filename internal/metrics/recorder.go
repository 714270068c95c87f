package metrics

import "time"

// ResultLabel is how a single stage ended.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a generation run.
type BuildOutcomeLabel string

const (
	OutcomeSuccess  BuildOutcomeLabel = "success"
	OutcomeWarning  BuildOutcomeLabel = "warning"
	OutcomeFailed   BuildOutcomeLabel = "failed"
	OutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder receives the events of a generation run. Stages that never ran
// report a zero duration.
type Recorder interface {
	StageFinished(stage string, result ResultLabel, d time.Duration)
	BuildFinished(outcome BuildOutcomeLabel, d time.Duration)
	ContentLoaded(items, skipped int)
	PagesWritten(kind string, n int)
	ItemFailed(stage string)
	AssetsCopied(source string, n int)
}

// NoopRecorder discards every event.
type NoopRecorder struct{}

func (NoopRecorder) StageFinished(string, ResultLabel, time.Duration) {}
func (NoopRecorder) BuildFinished(BuildOutcomeLabel, time.Duration)   {}
func (NoopRecorder) ContentLoaded(int, int)                           {}
func (NoopRecorder) PagesWritten(string, int)                         {}
func (NoopRecorder) ItemFailed(string)                                {}
func (NoopRecorder) AssetsCopied(string, int)                         {}

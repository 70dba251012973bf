package metrics

import "time"

// Outcome labels a generation result.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder defines the observability hooks of a generation run.
type Recorder interface {
	ObserveGenerateDuration(d time.Duration)
	IncGenerateOutcome(outcome Outcome)
	IncFileWritten(format string)
	IncLintIssues(code string, n int)
}

// NoopRecorder is the default Recorder.
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerateDuration(time.Duration) {}
func (NoopRecorder) IncGenerateOutcome(Outcome)            {}
func (NoopRecorder) IncFileWritten(string)                 {}
func (NoopRecorder) IncLintIssues(string, int)             {}

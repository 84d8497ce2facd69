package metrics

import "time"

// PassOutcome labels the result of a full pass.
type PassOutcome string

const (
	OutcomeSuccess  PassOutcome = "success"
	OutcomeFailed   PassOutcome = "failed"
	OutcomeCanceled PassOutcome = "canceled"
)

// Recorder receives metrics from a pass. Implementations must be safe to
// call from a single goroutine per pass.
type Recorder interface {
	ObservePhaseDuration(phase string, d time.Duration)
	ObservePassDuration(d time.Duration)
	IncPassOutcome(outcome PassOutcome)
	SetClassifications(taxonomy, lang string, n int)
	AddTasks(kind string, n int)
	AddErrors(category string, n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(string, time.Duration) {}
func (NoopRecorder) ObservePassDuration(time.Duration)          {}
func (NoopRecorder) IncPassOutcome(PassOutcome)                 {}
func (NoopRecorder) SetClassifications(string, string, int)     {}
func (NoopRecorder) AddTasks(string, int)                       {}
func (NoopRecorder) AddErrors(string, int)                      {}

package metrics

import "time"

// PassOutcome enumerates render pass results for counters.
type PassOutcome string

const (
	OutcomeSuccess  PassOutcome = "success"
	OutcomeFailed   PassOutcome = "failed"
	OutcomeCanceled PassOutcome = "canceled"
	OutcomeSkipped  PassOutcome = "skipped"
)

// Recorder defines observability hooks for render pass metrics.
type Recorder interface {
	ObservePassDuration(d time.Duration)
	IncPassOutcome(outcome PassOutcome)
	IncPagesWritten(n int)
	SetURLMappings(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(time.Duration) {}
func (NoopRecorder) IncPassOutcome(PassOutcome)        {}
func (NoopRecorder) IncPagesWritten(int)               {}
func (NoopRecorder) SetURLMappings(int)                {}

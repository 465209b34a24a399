package build

import (
	"time"
)

// Request contains the inputs of one render pass.
type Request struct {
	// ConfigPath is the settings file. Relative entryPoint and out values are
	// resolved against its directory.
	ConfigPath string

	// OutputDir overrides the out option when non-empty.
	OutputDir string

	// SkipIfUnchanged skips the pass when the options and sources match the
	// last successful pass of this runner and the output still exists.
	SkipIfUnchanged bool
}

// Result contains the outcome of a render pass.
type Result struct {
	// Status indicates the overall outcome.
	Status Status

	// PassID identifies the render pass; empty when the pass was skipped.
	PassID string

	// EntryPoint is the resolved source directory.
	EntryPoint string

	// OutputPath is the directory the site was written to.
	OutputPath string

	// Pages lists the written pages in render order.
	Pages []string

	// Signature fingerprints the options and sources of this pass.
	Signature Signature

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Skipped indicates the pass was skipped due to no changes.
	Skipped bool

	// SkipReason explains why the pass was skipped (if Skipped is true).
	SkipReason string
}

// Status represents the outcome of a render pass.
type Status string

const (
	// StatusSuccess indicates the pass completed successfully.
	StatusSuccess Status = "success"

	// StatusFailed indicates the pass encountered an error.
	StatusFailed Status = "failed"

	// StatusSkipped indicates the pass was skipped (no changes).
	StatusSkipped Status = "skipped"

	// StatusCancelled indicates the pass was cancelled.
	StatusCancelled Status = "cancelled"
)

func (r *Result) finish(status Status) *Result {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	return r
}

// Package doctor runs read-only health checks against an nmlk installation.
//
// Each [Check] inspects one thing (the OS, a host's installed assets, a
// settings registration, the shell guard) and returns a [CheckResult].
// [Runner.Run] collects the results into a [Report]; the CLI renders it as
// text or JSON and exits non-zero when any check reports an error.
package doctor

import (
	"context"
	"time"

	"github.com/thoreinstein/nmlk/internal/logging"
)

// Check is a single diagnostic.
type Check interface {
	// Name is a short identifier, unique within a run.
	Name() string

	// Category groups related checks in the text output.
	Category() string

	// Run performs the check. It must not modify anything.
	Run(ctx context.Context) *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
}

// NewRunner returns an empty Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// AddCheck appends c to the run.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check and tallies the results.
func (r *Runner) Run(ctx context.Context) *Report {
	logger := logging.FromContext(ctx)

	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run(ctx)
		if result.Name == "" {
			result.Name = check.Name()
		}
		if result.Category == "" {
			result.Category = check.Category()
		}
		logger.Debug("doctor check", "check", result.Name, "status", result.Status.String())

		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}

	return report
}

// Report is the outcome of a doctor run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check warned.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

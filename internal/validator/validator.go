// Package validator collects lint findings about an asset bundle and
// reports them.
package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// ErrInvalid is wrapped by Result.Err when any finding is an error.
var ErrInvalid = errors.New("invalid asset bundle")

// Severity represents the impact of a finding.
type Severity int

const (
	// SeverityError blocks installation.
	SeverityError Severity = iota
	// SeverityWarning is reported but does not block.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is a single finding in one bundle file.
type Issue struct {
	Severity Severity
	// File is the bundle-relative path, empty for bundle-wide findings.
	File string
	// Field names the frontmatter key, if any.
	Field   string
	Message string
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	if i.File != "" {
		sb.WriteString(i.File)
		sb.WriteString(": ")
	}
	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// Result aggregates findings in the order they were found.
type Result struct {
	Issues []Issue
}

// Errorf records an error finding.
func (r *Result) Errorf(file, field, format string, args ...any) {
	r.add(SeverityError, file, field, fmt.Sprintf(format, args...))
}

// Warnf records a warning finding.
func (r *Result) Warnf(file, field, format string, args ...any) {
	r.add(SeverityWarning, file, field, fmt.Sprintf(format, args...))
}

func (r *Result) add(s Severity, file, field, msg string) {
	r.Issues = append(r.Issues, Issue{Severity: s, File: file, Field: field, Message: msg})
}

// Filter returns the findings with severity s.
func (r *Result) Filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// HasErrors reports whether any finding is an error.
func (r *Result) HasErrors() bool {
	return len(r.Filter(SeverityError)) > 0
}

// Err returns nil when there are no errors, otherwise an error wrapping
// ErrInvalid that names the first one.
func (r *Result) Err() error {
	errs := r.Filter(SeverityError)
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errors.Wrap(ErrInvalid, errs[0].Error())
	}
	return errors.Wrapf(ErrInvalid, "%s (and %d more)", errs[0].Error(), len(errs)-1)
}

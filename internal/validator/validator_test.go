package validator

import (
	"strings"
	"testing"

	"github.com/thoreinstein/nmlk/internal/errors"
)

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "file and field",
			issue: Issue{File: "keychain-secrets/SKILL.md", Field: "name", Message: "is required"},
			want:  "keychain-secrets/SKILL.md: name: is required",
		},
		{
			name:  "file only",
			issue: Issue{File: "hooks/x.sh", Message: "missing shebang"},
			want:  "hooks/x.sh: missing shebang",
		},
		{
			name:  "bundle wide",
			issue: Issue{Message: "no commands"},
			want:  "no commands",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.issue.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_Severities(t *testing.T) {
	var r Result
	if r.HasErrors() {
		t.Error("empty result should have no errors")
	}
	if r.Err() != nil {
		t.Error("empty result should have nil Err")
	}

	r.Warnf("commands/a.md", "description", "is empty")
	if r.HasErrors() {
		t.Error("warnings alone are not errors")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil for warnings only", r.Err())
	}

	r.Errorf("SKILL.md", "name", "must be %s", "lowercase")
	r.Errorf("hooks/h.sh", "", "missing")

	if !r.HasErrors() {
		t.Error("expected errors")
	}
	if n := len(r.Filter(SeverityError)); n != 2 {
		t.Errorf("Filter(error) = %d, want 2", n)
	}
	if n := len(r.Filter(SeverityWarning)); n != 1 {
		t.Errorf("Filter(warning) = %d, want 1", n)
	}

	err := r.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Err() should wrap ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "must be lowercase") || !strings.Contains(err.Error(), "and 1 more") {
		t.Errorf("Err() = %q", err.Error())
	}
}

func TestResult_NilFilter(t *testing.T) {
	var r *Result
	if r.Filter(SeverityError) != nil {
		t.Error("nil result should filter to nil")
	}
	if r.HasErrors() {
		t.Error("nil result has no errors")
	}
}

func TestSeverity_String(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
	if Severity(42).String() != "unknown" {
		t.Error("out of range severity should be unknown")
	}
}

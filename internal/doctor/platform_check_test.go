package doctor

import (
	"context"
	"testing"
)

func TestPlatformCheck(t *testing.T) {
	tests := []struct {
		goos string
		want Severity
	}{
		{"darwin", SeverityPass},
		{"linux", SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got := (&PlatformCheck{GOOS: tt.goos}).Run(context.Background())
			if got.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", got.Status, tt.want, got.Message)
			}
		})
	}
}

func TestGuardSelfTest(t *testing.T) {
	if got := (GuardSelfTest{}).Run(context.Background()); got.Status != SeverityInfo {
		t.Errorf("Status = %v, want info: %s", got.Status, got.Message)
	}
}

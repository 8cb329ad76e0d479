package preflight

import (
	"testing"

	"github.com/thoreinstein/nmlk/internal/errors"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		goos    string
		wantErr bool
	}{
		{"darwin", false},
		{"linux", true},
		{"windows", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			err := Check(tt.goos)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Check(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedPlatform) {
				t.Errorf("Check(%q) error = %v, want ErrUnsupportedPlatform", tt.goos, err)
			}
		})
	}
}

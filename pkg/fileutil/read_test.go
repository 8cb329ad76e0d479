package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/nmlk/internal/errors"
)

func TestReadLimited(t *testing.T) {
	dir := t.TempDir()
	const limit = 64

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"under limit", limit - 1, false},
		{"at limit", limit, false},
		{"over limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_"))
			if err := os.WriteFile(path, []byte(strings.Repeat("x", tt.size)), 0o600); err != nil {
				t.Fatal(err)
			}

			data, err := ReadLimited(path, limit)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ReadLimited() error = %v", err)
				}
				if len(data) != tt.size {
					t.Errorf("ReadLimited() returned %d bytes, want %d", len(data), tt.size)
				}
				return
			}
			if !errors.Is(err, ErrFileTooLarge) {
				t.Fatalf("ReadLimited() error = %v, want ErrFileTooLarge", err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q should name the file", err)
			}
		})
	}
}

func TestReadLimited_Missing(t *testing.T) {
	_, err := ReadLimited(filepath.Join(t.TempDir(), "settings.json"), MaxSettingsSize)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadLimited() error = %v, want fs.ErrNotExist", err)
	}
}

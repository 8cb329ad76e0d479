package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/nmlk/internal/errors"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestBackupDir(t *testing.T) {
	got := BackupDir()
	wantSuffix := filepath.Join(AppName, "backups")
	if !strings.HasSuffix(got, wantSuffix) {
		t.Errorf("BackupDir() = %q, want path ending with %q", got, wantSuffix)
	}
	if !strings.HasPrefix(got, ConfigHome()) {
		t.Errorf("BackupDir() = %q, want path under ConfigHome %q", got, ConfigHome())
	}
}

func TestValidHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{HostClaude, true},
		{HostOpenCode, true},
		{"gemini", false},
		{"", false},
		{"Claude", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := ValidHost(tt.host); got != tt.want {
				t.Errorf("ValidHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestHosts(t *testing.T) {
	hosts := Hosts()
	if len(hosts) != 2 || hosts[0] != HostClaude || hosts[1] != HostOpenCode {
		t.Errorf("Hosts() = %v, want [claude opencode]", hosts)
	}
	for _, h := range hosts {
		if !ValidHost(h) {
			t.Errorf("Hosts() returned invalid host %q", h)
		}
	}
}

func TestHostConfigDir(t *testing.T) {
	home := "/Users/alice"
	tests := []struct {
		name string
		home string
		host string
		want string
	}{
		{"claude", home, HostClaude, filepath.Join(home, ".claude")},
		{"opencode", home, HostOpenCode, filepath.Join(home, ".config", "opencode")},
		{"unknown host", home, "codex", ""},
		{"empty home", "", HostClaude, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HostConfigDir(tt.home, tt.host); got != tt.want {
				t.Errorf("HostConfigDir(%q, %q) = %q, want %q", tt.home, tt.host, got, tt.want)
			}
		})
	}
}

func TestExpandAndAbbreviate(t *testing.T) {
	home := "/Users/alice"

	tests := []struct {
		name       string
		path       string
		expanded   string
		abbreviate string
	}{
		{"tilde only", "~", home, "~"},
		{"under home", "~/.claude/hooks/x.sh", "/Users/alice/.claude/hooks/x.sh", "~/.claude/hooks/x.sh"},
		{"absolute outside home", "/opt/claude/hooks/x.sh", "/opt/claude/hooks/x.sh", "/opt/claude/hooks/x.sh"},
		{"sibling with shared prefix", "/Users/alice2/x", "/Users/alice2/x", "/Users/alice2/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(home, tt.path)
			if got != tt.expanded {
				t.Errorf("Expand(%q) = %q, want %q", tt.path, got, tt.expanded)
			}
			if abbr := Abbreviate(home, got); abbr != tt.abbreviate {
				t.Errorf("Abbreviate(%q) = %q, want %q", got, abbr, tt.abbreviate)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		filepath.Join(root, "a", "b", "c"),
		filepath.Join(root, "a", "d"),
	}

	// Second call must be a no-op on existing directories.
	for range 2 {
		if err := EnsureDirs(dirs, 0); err != nil {
			t.Fatalf("EnsureDirs() error = %v", err)
		}
	}

	for _, d := range dirs {
		info, err := os.Stat(d)
		if err != nil {
			t.Fatalf("stat %s: %v", d, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", d)
		}
	}
}

func TestEnsureDir_Empty(t *testing.T) {
	if err := EnsureDir("", 0); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("EnsureDir(\"\") error = %v, want ErrInvalidPath", err)
	}
}

package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDetectEditor_EnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	if got := detectEditor(); got != "nvim" {
		t.Errorf("detectEditor() = %q, want %q", got, "nvim")
	}
}

func TestDetectEditor_EnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")

	if got := detectEditor(); got != "code" {
		t.Errorf("detectEditor() = %q, want %q", got, "code")
	}
}

func TestDetectEditor_WhitespaceTreatedAsUnset(t *testing.T) {
	t.Setenv("EDITOR", "   ")
	t.Setenv("VISUAL", "vscode")

	if got := detectEditor(); got != "vscode" {
		t.Errorf("detectEditor() = %q, want %q", got, "vscode")
	}
}

func TestDetectEditor_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	if got := detectEditor(); got != want {
		t.Errorf("detectEditor() = %q, want %q", got, want)
	}
}

func TestCommand_SplitsArguments(t *testing.T) {
	t.Setenv("EDITOR", "code --wait")

	got := Command()
	if len(got) != 2 || got[0] != "code" || got[1] != "--wait" {
		t.Errorf("Command() = %q, want [code --wait]", got)
	}
}

func TestOpen_RunsEditorWithPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on touch(1)")
	}
	if _, err := exec.LookPath("touch"); err != nil {
		t.Skip("touch not available")
	}

	// "touch" stands in for an editor: it creates the file it is given.
	t.Setenv("EDITOR", "touch")
	target := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	if err := Open(t.Context(), &out, target); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !strings.Contains(out.String(), "Location: "+target) {
		t.Errorf("output = %q, want location line", out.String())
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("editor did not run on %s", target)
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "nmlk-no-such-editor")

	var out bytes.Buffer
	if err := Open(t.Context(), &out, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("Open() should fail when the editor binary is missing")
	}
}

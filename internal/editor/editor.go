// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// ErrNoEditor is returned when no editor command can be determined.
var ErrNoEditor = errors.New("no editor found")

// Open runs the user's editor on path, attached to the terminal, and waits
// for it to exit. The location is printed to w first.
func Open(ctx context.Context, w io.Writer, path string) error {
	argv := Command()
	if len(argv) == 0 {
		return ErrNoEditor
	}

	if _, err := io.WriteString(w, "Location: "+path+"\n"); err != nil {
		return errors.Wrap(err, "writing location")
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...) //nolint:gosec // the editor is chosen by the user
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor command line split into words.
// $EDITOR wins over $VISUAL; without either, nano then vi.
func Command() []string {
	return strings.Fields(detectEditor())
}

func detectEditor() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}

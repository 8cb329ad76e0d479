// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
)

// Sentinel errors for backup selection.
var (
	ErrNoBackups          = errors.New("no backups to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

const timeLayout = "2006-01-02 15:04:05"

// Selector handles interactive backup selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
	fuzzy  bool
}

// NewSelector creates a Selector using stdin and stdout. The fuzzy finder
// is used when both are terminals.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
		fuzzy:  logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout),
	}
}

// NewSelectorWithIO creates a numbered-prompt Selector with custom reader and
// writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Label is the one-line description of a backup used in prompts.
func Label(m backup.Manifest) string {
	return fmt.Sprintf("%s/%s  %s  (%d files)", m.Scope, m.ID, m.CreatedAt.Local().Format(timeLayout), len(m.Files))
}

// SelectBackup prompts the user to choose from manifests, newest first.
//
// Returns:
//   - ErrNoBackups if the list is empty
//   - The backup if only one exists (auto-selects without prompting)
//   - The selected backup based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D) or the finder is aborted
func (s *Selector) SelectBackup(manifests []backup.Manifest) (*backup.Manifest, error) {
	if len(manifests) == 0 {
		return nil, ErrNoBackups
	}

	if len(manifests) == 1 {
		return &manifests[0], nil
	}

	if s.fuzzy {
		return s.find(manifests)
	}

	fmt.Fprintln(s.writer, "Multiple backups found:")
	for i, m := range manifests {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, Label(m))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && strings.TrimSpace(input) != "":
		// A last line without a newline is still an answer.
	case errors.Is(err, io.EOF):
		return nil, ErrSelectionCancelled
	default:
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to the newest backup
	if input == "" {
		return &manifests[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(manifests) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(manifests))
	}

	return &manifests[selection-1], nil
}

func (s *Selector) find(manifests []backup.Manifest) (*backup.Manifest, error) {
	idx, err := fuzzyfinder.Find(
		manifests,
		func(i int) string {
			return Label(manifests[i])
		},
		fuzzyfinder.WithPromptString("restore> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			m := manifests[i]
			var b strings.Builder
			fmt.Fprintf(&b, "Scope:   %s\nID:      %s\nCreated: %s\nVersion: %s\n\nFiles:\n",
				m.Scope, m.ID, m.CreatedAt.Local().Format(timeLayout), m.ToolVersion)
			for _, f := range m.Files {
				fmt.Fprintf(&b, "  %s\n", f.OriginalPath)
			}
			return b.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &manifests[idx], nil
}

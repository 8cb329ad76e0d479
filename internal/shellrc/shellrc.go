// Package shellrc installs the claude guard function into the user's
// interactive shell startup file.
package shellrc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/pkg/fileutil"
)

// Startup file names, in detection order.
const (
	Zshrc  = ".zshrc"
	Bashrc = ".bashrc"
)

// Action is the outcome of Ensure, worded for the progress report.
type Action string

const (
	ActionAdded   Action = "added"
	ActionPresent Action = "already configured"
)

// Detect returns the startup file to modify: override when set (with "~"
// expanded), else ~/.zshrc if it exists, else ~/.bashrc. Whether the
// running shell actually reads the file is not checked.
func Detect(home, override string) string {
	if override != "" {
		return filepath.Clean(paths.Expand(home, override))
	}
	zsh := filepath.Join(home, Zshrc)
	if _, err := os.Stat(zsh); err == nil {
		return zsh
	}
	return filepath.Join(home, Bashrc)
}

// Installed reports whether the file at path already contains the marker.
// A missing file reports false with no error.
func Installed(path string) (bool, error) {
	data, err := fileutil.ReadLimited(path, fileutil.MaxShellRCSize)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}
	return strings.Contains(string(data), Marker), nil
}

// Ensure appends Block to the file at path unless the marker is present.
// before, when non-nil, runs ahead of modifying an existing file.
func Ensure(ctx context.Context, path string, before func(string) error) (Action, error) {
	logger := logging.FromContext(ctx)

	present, err := Installed(path)
	if err != nil {
		return "", err
	}
	if present {
		logger.Debug("shell guard already present", "path", path)
		return ActionPresent, nil
	}

	if before != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := before(path); err != nil {
				return "", err
			}
		}
	}

	if err := appendBlock(path); err != nil {
		return "", err
	}

	logger.Info("appended shell guard", "path", path)
	return ActionAdded, nil
}

func appendBlock(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileutil.DefaultFilePerm)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	if _, err := f.WriteString(Block); err != nil {
		f.Close()
		return errors.Wrapf(err, "appending to %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

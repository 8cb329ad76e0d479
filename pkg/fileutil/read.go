package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// Size limits for files that are read whole before being rewritten.
const (
	MaxSettingsSize int64 = 1 << 20
	MaxShellRCSize  int64 = 4 << 20
)

// ErrFileTooLarge indicates a file exceeded the caller's size limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadLimited reads path, failing with ErrFileTooLarge when it holds more
// than limit bytes. A missing file yields an error satisfying
// errors.Is(err, fs.ErrNotExist).
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	tooLarge := func() error {
		return errors.Wrapf(ErrFileTooLarge, "%s exceeds %d bytes", path, limit)
	}

	// Stat is a fast path; the bounded read still guards files that grow.
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > limit {
		return nil, tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, tooLarge()
	}
	return data, nil
}

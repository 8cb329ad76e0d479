// Package fileutil provides file system helpers for writing configuration
// files safely: atomic replace, mode preservation and bounded reads.
package fileutil

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// DefaultFilePerm is the mode for newly created config files.
const DefaultFilePerm fs.FileMode = 0o644

// AtomicWriteFile writes data to path via a temp file in the same directory
// followed by a rename, so an interrupted write leaves the original intact.
//
// If path is a symlink the link target is replaced, not the link itself.
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	target := ResolveSymlink(path)

	tmp, err := os.CreateTemp(filepath.Dir(target), ".nmlk-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, target); err != nil {
		return errors.Wrapf(err, "replacing %s", target)
	}
	renamed = true

	return nil
}

// ResolveSymlink returns the final target of path when path is an existing
// symlink, and path unchanged otherwise.
func ResolveSymlink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// ModeOf returns the permission bits of an existing file, or fallback when
// the file cannot be stat'ed.
func ModeOf(path string, fallback fs.FileMode) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}

// MarshalJSON encodes v with 2-space indentation and a trailing newline.
// HTML characters are written as-is, so values like "a && b" or "<url>"
// survive a round trip unchanged.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return buf.Bytes(), nil
}

// AtomicWriteJSON writes v as indented JSON to path atomically, keeping the
// mode of an existing file and using DefaultFilePerm otherwise.
func AtomicWriteJSON(path string, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, ModeOf(path, DefaultFilePerm))
}

// AtomicWriteYAML writes v as YAML to path atomically with a trailing newline.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on unmarshalable types.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, ModeOf(path, DefaultFilePerm))
}

// Package deploy copies bundle assets into a host's configuration root.
//
// Copies overwrite existing files in place and never remove anything, so
// files a user added next to the installed ones survive a reinstall.
package deploy

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/internal/platform"
)

// File modes for installed files.
const (
	FilePerm fs.FileMode = 0o644
	ExecPerm fs.FileMode = 0o755
)

// Skill copies the skill bundle into h's skills directory.
func Skill(ctx context.Context, src fs.FS, h platform.Host) error {
	dst := h.SkillPath(assets.SkillName)
	if err := CopyTree(ctx, src, assets.SkillName, dst); err != nil {
		return errors.Wrapf(err, "installing skill for %s", h.DisplayName)
	}
	return nil
}

// Commands copies every commands/*.md file into h's commands directory and
// returns the installed file names.
func Commands(ctx context.Context, src fs.FS, h platform.Host) ([]string, error) {
	names, err := assets.CommandFiles(src)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := CopyFile(ctx, src, path.Join(assets.CommandsDir, name), filepath.Join(h.CommandsDir(), name)); err != nil {
			return nil, errors.Wrapf(err, "installing command %s for %s", name, h.DisplayName)
		}
	}
	return names, nil
}

// Hook copies the guard script into h's hooks directory, marks it
// executable and returns its installed path.
func Hook(ctx context.Context, src fs.FS, h platform.Host) (string, error) {
	dst := h.HookPath(assets.HookScript)
	if err := CopyFile(ctx, src, assets.HookPath(), dst); err != nil {
		return "", errors.Wrapf(err, "installing hook for %s", h.DisplayName)
	}
	if err := os.Chmod(dst, ExecPerm); err != nil {
		return "", errors.Wrapf(err, "making %s executable", dst)
	}
	return dst, nil
}

// CopyTree recursively copies the directory root of src to dst.
// Existing files are overwritten and extra files in dst are kept.
func CopyTree(ctx context.Context, src fs.FS, root, dst string) error {
	return fs.WalkDir(src, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "reading %s", p)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		target := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			return paths.EnsureDir(target, paths.DefaultDirPerm)
		}
		return CopyFile(ctx, src, p, target)
	})
}

// CopyFile copies the file name from src to dst.
// dst is written 0755 when the source is executable or a shell script,
// 0644 otherwise.
func CopyFile(ctx context.Context, src fs.FS, name, dst string) error {
	in, err := src.Open(name)
	if err != nil {
		return errors.Wrapf(err, "opening %s", name)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "stating %s", name)
	}
	if info.IsDir() {
		return errors.Newf("%s is a directory", name)
	}

	perm := modeFor(name, info.Mode())

	out, err := openForWrite(dst, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying %s to %s", name, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}

	// OpenFile only applies perm to new files.
	if err := os.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, "setting mode on %s", dst)
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "copied file", "src", name, "dst", dst)
	return nil
}

// openForWrite truncates or creates dst, making a read-only file writable first.
func openForWrite(dst string, perm fs.FileMode) (*os.File, error) {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if errors.Is(err, fs.ErrPermission) {
		if chErr := os.Chmod(dst, perm|0o200); chErr == nil {
			out, err = os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", dst)
	}
	return out, nil
}

func modeFor(name string, mode fs.FileMode) fs.FileMode {
	if mode&0o111 != 0 || strings.HasSuffix(name, ".sh") {
		return ExecPerm
	}
	return FilePerm
}

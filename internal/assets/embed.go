// Package assets provides the skill, slash commands and hook script that
// nmlk installs, compiled into the binary.
//
// The bundle layout is the same whether it comes from the embedded copy or
// from a directory passed with --source:
//
//	keychain-secrets/SKILL.md   skill bundle, copied recursively
//	commands/*.md               slash command definitions
//	hooks/block-unsafe-mcp-add.sh
package assets

import (
	"embed"
	"io/fs"
	"os"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// Fixed names inside the bundle and on the install side.
const (
	SkillName   = "keychain-secrets"
	CommandsDir = "commands"
	HooksDir    = "hooks"
	HookScript  = "block-unsafe-mcp-add.sh"
	HookMatcher = "Bash"
)

// ErrInvalidBundle indicates a bundle is missing a required part.
var ErrInvalidBundle = errors.New("invalid asset bundle")

//go:embed all:bundle
var bundleFS embed.FS

// Embedded returns the bundle compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(bundleFS, "bundle")
	if err != nil {
		// The directory is fixed at compile time.
		panic(err)
	}
	return sub
}

// FromDir returns a bundle rooted at dir after checking its layout.
func FromDir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "asset source %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrInvalidBundle, "%s is not a directory", dir)
	}

	fsys := os.DirFS(dir)
	if err := Validate(fsys); err != nil {
		return nil, errors.Wrapf(err, "asset source %s", dir)
	}
	return fsys, nil
}

// Validate checks that fsys has a skill directory, at least one command
// file and the hook script.
func Validate(fsys fs.FS) error {
	info, err := fs.Stat(fsys, SkillName)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(ErrInvalidBundle, "missing %s/ directory", SkillName)
	}

	cmds, err := CommandFiles(fsys)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		return errors.Wrapf(ErrInvalidBundle, "no *.md files in %s/", CommandsDir)
	}

	info, err = fs.Stat(fsys, HookPath())
	if err != nil || !info.Mode().IsRegular() {
		return errors.Wrapf(ErrInvalidBundle, "missing %s", HookPath())
	}
	return nil
}

// HookPath returns the hook script's path inside the bundle.
func HookPath() string {
	return HooksDir + "/" + HookScript
}

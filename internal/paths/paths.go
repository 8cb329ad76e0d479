package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Host identifiers for supported AI coding assistants.
const (
	HostClaude   = "claude"
	HostOpenCode = "opencode"
)

// AppName names nmlk's own config directory.
const AppName = "nmlk"

// hostConfigDirs maps host names to their config roots relative to home.
var hostConfigDirs = map[string]string{
	HostClaude:   ".claude",
	HostOpenCode: filepath.Join(".config", "opencode"),
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the permission for directories created by the installer.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return ErrInvalidPath
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// EnsureDirs calls EnsureDir for every path in order and stops at the first failure.
func EnsureDirs(dirs []string, perm os.FileMode) error {
	for _, dir := range dirs {
		if err := EnsureDir(dir, perm); err != nil {
			return err
		}
	}
	return nil
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns <ConfigHome>/nmlk.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns the root directory for configuration backups.
func BackupDir() string {
	return filepath.Join(AppConfigDir(), "backups")
}

// ValidHost returns true if the host name is recognized.
func ValidHost(host string) bool {
	_, ok := hostConfigDirs[host]
	return ok
}

// Hosts returns all supported host identifiers in installation order.
func Hosts() []string {
	return []string{HostClaude, HostOpenCode}
}

// HostConfigDir returns the config root for host under home.
// Returns an empty string for unknown hosts or an empty home.
func HostConfigDir(home, host string) string {
	rel, ok := hostConfigDirs[host]
	if !ok || home == "" {
		return ""
	}
	return filepath.Join(home, rel)
}

// Expand replaces a leading "~" or "~/" with home.
func Expand(home, path string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}

// Abbreviate rewrites path as "~/..." when it lies under home.
// Paths outside home are returned cleaned but otherwise unchanged.
func Abbreviate(home, path string) string {
	clean := filepath.Clean(path)
	if home == "" {
		return clean
	}
	rel, err := filepath.Rel(filepath.Clean(home), clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return clean
	}
	if rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}

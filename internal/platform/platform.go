package platform

import (
	"path/filepath"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/paths"
)

// Fixed names inside a host root.
const (
	SkillsDirName   = "skills"
	CommandsDirName = "commands"
	HooksDirName    = "hooks"
	SettingsFile    = "settings.json"
)

// ErrUnknownHost is returned when a host name is not recognized.
var ErrUnknownHost = errors.New("unknown host")

// displayNames maps host identifiers to human-readable product names.
var displayNames = map[string]string{
	paths.HostClaude:   "Claude Code",
	paths.HostOpenCode: "OpenCode",
}

// Host is a target assistant application and its configuration root.
type Host struct {
	// Name is the host identifier (claude, opencode).
	Name string

	// DisplayName is the product name shown in progress output.
	DisplayName string

	// Root is the absolute configuration directory.
	Root string
}

// SkillsDir returns <root>/skills.
func (h Host) SkillsDir() string {
	return filepath.Join(h.Root, SkillsDirName)
}

// CommandsDir returns <root>/commands.
func (h Host) CommandsDir() string {
	return filepath.Join(h.Root, CommandsDirName)
}

// HooksDir returns <root>/hooks.
func (h Host) HooksDir() string {
	return filepath.Join(h.Root, HooksDirName)
}

// SettingsPath returns <root>/settings.json.
func (h Host) SettingsPath() string {
	return filepath.Join(h.Root, SettingsFile)
}

// SkillPath returns the installed location of the named skill bundle.
func (h Host) SkillPath(name string) string {
	return filepath.Join(h.SkillsDir(), name)
}

// HookPath returns the installed location of the named hook script.
func (h Host) HookPath(script string) string {
	return filepath.Join(h.HooksDir(), script)
}

// Dirs returns the directories the provisioner must create for this host.
func (h Host) Dirs() []string {
	return []string{h.SkillsDir(), h.CommandsDir(), h.HooksDir()}
}

// New returns the host named name rooted at root.
// If root is empty the default root under home is used.
func New(home, name, root string) (Host, error) {
	if !paths.ValidHost(name) {
		return Host{}, errors.Wrapf(ErrUnknownHost, "%q (valid: claude, opencode)", name)
	}
	if root == "" {
		root = paths.HostConfigDir(home, name)
	} else {
		root = paths.Expand(home, root)
	}
	if root == "" {
		return Host{}, errors.Wrapf(paths.ErrInvalidPath, "no config root for %s", name)
	}
	return Host{
		Name:        name,
		DisplayName: displayNames[name],
		Root:        filepath.Clean(root),
	}, nil
}

// Resolve builds hosts for names in order, dropping duplicates.
// overrides maps a host name to a custom root and may be nil.
func Resolve(home string, names []string, overrides map[string]string) ([]Host, error) {
	if len(names) == 0 {
		names = paths.Hosts()
	}

	seen := make(map[string]bool, len(names))
	hosts := make([]Host, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		h, err := New(home, name, overrides[name])
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

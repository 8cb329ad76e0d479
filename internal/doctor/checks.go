package doctor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/leakcheck"
	"github.com/thoreinstein/nmlk/internal/platform"
	"github.com/thoreinstein/nmlk/internal/settings"
	"github.com/thoreinstein/nmlk/internal/shellrc"
	"github.com/thoreinstein/nmlk/pkg/fileutil"
)

func installHint(host string) string {
	if host == "" {
		return "Run: nmlk install"
	}
	return "Run: nmlk install --host " + host
}

// AssetCheck verifies a host has the skill, every bundled command and an
// executable hook script.
type AssetCheck struct {
	Host   platform.Host
	Bundle fs.FS
}

var _ Check = (*AssetCheck)(nil)

func (c *AssetCheck) Name() string     { return c.Host.Name + "-assets" }
func (c *AssetCheck) Category() string { return c.Host.DisplayName }

func (c *AssetCheck) Run(context.Context) *CheckResult {
	if platform.Detect(c.Host) == platform.StatusNotInstalled {
		r := fail(c.Host.Root+" does not exist", installHint(c.Host.Name))
		r.Details = map[string]any{"root": c.Host.Root}
		return r
	}

	var missing []string

	skillDir := c.Host.SkillPath(assets.SkillName)
	entries, err := os.ReadDir(skillDir)
	if err != nil || len(entries) == 0 {
		missing = append(missing, skillDir)
	}

	cmds, err := assets.CommandFiles(c.Bundle)
	if err != nil {
		return fail("reading bundled commands: "+err.Error(), "")
	}
	for _, name := range cmds {
		p := filepath.Join(c.Host.CommandsDir(), name)
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}

	hook := c.Host.HookPath(assets.HookScript)
	info, err := os.Stat(hook)
	switch {
	case err != nil:
		missing = append(missing, hook)
	case info.Mode().Perm()&0o111 == 0:
		r := warn("hook script is not executable", "Run: chmod 755 "+hook)
		r.Details = map[string]any{"path": hook, "mode": fmt.Sprintf("%o", info.Mode().Perm())}
		return r
	}

	if len(missing) > 0 {
		r := fail(fmt.Sprintf("%d installed file(s) missing", len(missing)), installHint(c.Host.Name))
		r.Details = map[string]any{"missing": missing}
		return r
	}

	if len(entries) > 0 {
		skill, err := assets.ReadSkill(os.DirFS(c.Host.SkillsDir()), assets.SkillName)
		if err != nil || skill.Name != assets.SkillName {
			return warn("SKILL.md header does not name "+assets.SkillName, installHint(c.Host.Name))
		}
	}

	return pass(fmt.Sprintf("skill, %d command(s) and hook installed", len(cmds)))
}

// SettingsCheck verifies the host's settings.json registers the hook
// exactly once.
type SettingsCheck struct {
	Host platform.Host
}

var _ Check = (*SettingsCheck)(nil)

func (c *SettingsCheck) Name() string     { return c.Host.Name + "-settings" }
func (c *SettingsCheck) Category() string { return c.Host.DisplayName }

func (c *SettingsCheck) Run(context.Context) *CheckResult {
	path := c.Host.SettingsPath()

	data, err := fileutil.ReadLimited(path, fileutil.MaxSettingsSize)
	if errors.Is(err, fs.ErrNotExist) {
		return fail(path+" does not exist", installHint(c.Host.Name))
	}
	if err != nil {
		return fail("reading "+path+": "+err.Error(), "")
	}

	doc, err := settings.Parse(data)
	if err != nil {
		r := fail(path+" is not a JSON object", "Fix the file by hand or restore it with: nmlk backup restore")
		r.Details = map[string]any{"error": err.Error()}
		return r
	}

	n := doc.CountReferences(assets.HookScript)
	details := map[string]any{"path": path, "registrations": n}

	var r *CheckResult
	switch {
	case n == 0:
		r = fail("PreToolUse hook not registered", installHint(c.Host.Name))
	case n == 1:
		r = pass("PreToolUse hook registered")
	default:
		r = warn(fmt.Sprintf("PreToolUse hook registered %d times", n), "Remove the duplicate entries from "+path)
	}
	r.Details = details
	return r
}

// ShellCheck verifies the startup file contains the guard function.
type ShellCheck struct {
	Path string
}

var _ Check = (*ShellCheck)(nil)

func (c *ShellCheck) Name() string     { return "shell-guard" }
func (c *ShellCheck) Category() string { return "shell" }

func (c *ShellCheck) Run(context.Context) *CheckResult {
	data, err := fileutil.ReadLimited(c.Path, fileutil.MaxShellRCSize)
	if errors.Is(err, fs.ErrNotExist) {
		return fail(c.Path+" does not exist", installHint(""))
	}
	if err != nil {
		return fail("reading "+c.Path+": "+err.Error(), "")
	}

	content := string(data)
	details := map[string]any{"path": c.Path}

	var r *CheckResult
	switch n := strings.Count(content, shellrc.Marker); {
	case n == 0:
		r = fail("guard function not installed", installHint(""))
	case !leakcheck.ShellGuardBlocks(content):
		r = warn("marker present but the guard function looks edited", "Remove the block and run: nmlk install")
	case n > 1:
		r = warn(fmt.Sprintf("guard block appears %d times", n), "Remove the extra blocks from "+c.Path)
	default:
		r = pass("guard function installed")
	}
	r.Details = details
	return r
}

// GuardSelfTest confirms the credential detectors block a known-unsafe
// command and allow a safe one, both as a command line (as "nmlk hook"
// sees it) and as an argument vector (as the shell guard sees it).
type GuardSelfTest struct{}

var _ Check = GuardSelfTest{}

func (GuardSelfTest) Name() string     { return "guard-self-test" }
func (GuardSelfTest) Category() string { return "system" }

func (GuardSelfTest) Run(context.Context) *CheckResult {
	unsafe := `claude mcp add api https://example.com --header "Authorization: Bearer test"`
	safe := `claude mcp add filesystem npx server-filesystem`

	if !leakcheck.UnsafeMCPAdd(unsafe) || leakcheck.UnsafeMCPAdd(safe) {
		return fail("credential detector misclassified a sample command", "")
	}
	unsafeArgs := []string{"mcp", "add", "api", "https://example.com", "--header", "Authorization: Bearer test"}
	safeArgs := []string{"mcp", "add", "filesystem", "npx", "server-filesystem"}
	if !leakcheck.UnsafeArgs(unsafeArgs) || leakcheck.UnsafeArgs(safeArgs) {
		return fail("argument detector misclassified a sample command", "")
	}
	return info("native hook detector working")
}

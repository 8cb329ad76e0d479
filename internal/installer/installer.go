// Package installer runs the nmlk install pipeline.
//
// The pipeline is linear and single-pass: platform check, directory
// provisioning, asset deployment, one settings merge per host, then the
// shell guard. Every step is idempotent, so running the installer again on
// an installed machine changes nothing. A failure stops the run where it
// happened; earlier steps are not rolled back.
package installer

import (
	"context"
	"io/fs"
	"strings"

	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/deploy"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/internal/platform"
	"github.com/thoreinstein/nmlk/internal/preflight"
	"github.com/thoreinstein/nmlk/internal/report"
	"github.com/thoreinstein/nmlk/internal/settings"
	"github.com/thoreinstein/nmlk/internal/shellrc"
)

// ShellScope is the backup scope for the shell startup file.
const ShellScope = "shell"

// Options is everything a run needs, resolved once at startup.
type Options struct {
	// Home is the user's home directory; used to abbreviate paths.
	Home string
	// GOOS is the operating system identifier checked by the platform guard.
	GOOS string
	// Hosts are the targets, in installation order.
	Hosts []platform.Host
	// Assets is the bundle to install.
	Assets fs.FS
	// ShellRC is the startup file to modify.
	ShellRC string
	// Backups, when non-nil, copies files before they are modified.
	Backups *backup.Session
	// Reporter receives progress output. Nil means no output.
	Reporter *report.Reporter
}

// HostResult is what happened for one host.
type HostResult struct {
	Host     platform.Host
	HookPath string
	Settings settings.Action
}

// Result summarizes a completed run.
type Result struct {
	Hosts    []HostResult
	Commands []assets.Command
	ShellRC  string
	Shell    shellrc.Action
	Backups  []string
}

// TotalSteps returns the number of progress steps for n hosts.
func TotalSteps(n int) int {
	// directories, skill, commands, hook, one settings step per host, shell
	return 4 + n + 1
}

// Guard prints the unsupported-platform banner and returns an already
// reported user error unless goos can run the installer.
func Guard(goos string, rep *report.Reporter) error {
	if err := preflight.Check(goos); err != nil {
		rep.Unsupported(preflight.Banner)
		exitErr := errors.NewExitError(err, errors.ExitUser)
		exitErr.Reported = true
		return exitErr
	}
	return nil
}

// Run installs the bundle into every host and the shell startup file.
func Run(ctx context.Context, opts Options) (*Result, error) {
	rep := opts.Reporter
	if rep == nil {
		rep = report.Discard()
	}
	logger := logging.FromContext(ctx)

	if err := Guard(opts.GOOS, rep); err != nil {
		return nil, err
	}
	if len(opts.Hosts) == 0 {
		return nil, errors.NewUserError(errors.New("no hosts selected"), "Pass --host claude or --host opencode")
	}
	if opts.Assets == nil {
		opts.Assets = assets.Embedded()
	}

	commands, err := assets.Commands(opts.Assets)
	if err != nil {
		return nil, errors.NewUserError(err, "Check the --source directory layout")
	}

	logger.Info("starting install", "hosts", len(opts.Hosts), "shell_rc", opts.ShellRC)

	rep.Banner()
	rep.SetTotal(TotalSteps(len(opts.Hosts)))

	res := &Result{Commands: commands, ShellRC: opts.ShellRC}
	names := displayNames(opts.Hosts)

	fail := func(err error) (*Result, error) {
		rep.Error("%v", err)
		exitErr := errors.NewSystemError(err, "")
		exitErr.Reported = true
		return nil, exitErr
	}

	rep.Step("Creating directories...")
	for _, h := range opts.Hosts {
		if err := paths.EnsureDirs(h.Dirs(), paths.DefaultDirPerm); err != nil {
			return fail(err)
		}
	}
	rep.Success("Directories ready (%s)", strings.Join(names, " + "))

	rep.Step("Installing " + assets.SkillName + " skill...")
	for _, h := range opts.Hosts {
		if err := deploy.Skill(ctx, opts.Assets, h); err != nil {
			return fail(err)
		}
	}
	rep.Success("Skill installed to %s", joinAnd(names))

	rep.Step("Installing slash commands...")
	for _, h := range opts.Hosts {
		if _, err := deploy.Commands(ctx, opts.Assets, h); err != nil {
			return fail(err)
		}
	}
	rep.Success("Commands installed: %s", assets.Invocations(commands))

	rep.Step("Installing security hook...")
	for _, h := range opts.Hosts {
		dst, err := deploy.Hook(ctx, opts.Assets, h)
		if err != nil {
			return fail(err)
		}
		res.Hosts = append(res.Hosts, HostResult{Host: h, HookPath: dst})
	}
	if len(opts.Hosts) == 2 {
		rep.Success("Security hook installed to both")
	} else {
		rep.Success("Security hook installed to %s", joinAnd(names))
	}

	for i := range res.Hosts {
		hr := &res.Hosts[i]
		rep.Step("Configuring " + hr.Host.DisplayName + "...")

		reg := settings.NewRegistration(assets.HookMatcher, paths.Abbreviate(opts.Home, hr.HookPath))
		action, err := settings.EnsureHook(ctx, hr.Host.SettingsPath(), assets.HookScript, reg, opts.Backups.Before(hr.Host.Name))
		if err != nil {
			return fail(err)
		}
		hr.Settings = action
		if action == settings.ActionReplaced {
			rep.Warning("%s was not valid JSON and was rewritten", paths.Abbreviate(opts.Home, hr.Host.SettingsPath()))
			rep.Success("%s hook %s", hr.Host.DisplayName, settings.ActionConfigured)
			continue
		}
		rep.Success("%s hook %s", hr.Host.DisplayName, action)
	}

	rep.Step("Adding shell-level protection...")
	action, err := shellrc.Ensure(ctx, opts.ShellRC, opts.Backups.Before(ShellScope))
	if err != nil {
		return fail(err)
	}
	res.Shell = action
	if action == shellrc.ActionAdded {
		rep.Success("Shell protection added to %s", opts.ShellRC)
	} else {
		rep.Success("Shell protection already configured")
	}

	res.Backups = opts.Backups.Created()
	if len(res.Backups) > 0 {
		rep.Success("Backed up modified files (%s)", strings.Join(res.Backups, ", "))
	}

	rep.Summary(summarize(opts.Home, res))
	logger.Info("install complete", "backups", len(res.Backups))
	return res, nil
}

func summarize(home string, res *Result) report.Summary {
	s := report.Summary{ShellRC: res.ShellRC}
	for _, hr := range res.Hosts {
		s.Hosts = append(s.Hosts, report.HostSummary{
			DisplayName: hr.Host.DisplayName,
			Root:        paths.Abbreviate(home, hr.Host.Root),
		})
	}
	for _, c := range res.Commands {
		s.Commands = append(s.Commands, report.CommandSummary{
			Invocation:  c.Invocation(),
			Description: c.Description,
		})
	}
	return s
}

func displayNames(hosts []platform.Host) []string {
	names := make([]string, len(hosts))
	for i, h := range hosts {
		names[i] = h.DisplayName
	}
	return names
}

func joinAnd(names []string) string {
	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

package commands

import (
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/flags"
	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/installer"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/internal/platform"
	"github.com/thoreinstein/nmlk/internal/report"
	"github.com/thoreinstein/nmlk/internal/shellrc"
	"github.com/thoreinstein/nmlk/internal/validator"
)

var (
	sourceDir  string
	shellRCArg string
	noBackup   bool
)

func init() {
	addInstallFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}

// addInstallFlags registers the install flags on c. Root and install share
// the same variables.
func addInstallFlags(c *cobra.Command) {
	c.Flags().StringVar(&sourceDir, "source", "",
		"install assets from this directory instead of the built-in bundle")
	c.Flags().StringVar(&shellRCArg, "shell-rc", "",
		"shell startup file to modify (default: ~/.zshrc if present, else ~/.bashrc)")
	c.Flags().BoolVar(&noBackup, "no-backup", false,
		"do not back up files before modifying them")
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the skill, commands, hook and shell guard",
	Long: `Install keychain-backed secret handling into each selected host.

Steps:
  1. Create the skills, commands and hooks directories
  2. Copy the keychain-secrets skill
  3. Copy the /secrets and /add-mcp slash commands
  4. Copy the block-unsafe-mcp-add hook script
  5. Register the hook in each host's settings.json
  6. Append the claude guard function to your shell startup file

Existing settings are preserved, and settings.json and the shell startup
file are backed up before they are changed. Only macOS is supported.`,
	Example: `  # Install into both hosts
  nmlk install

  # Use a local checkout of the assets
  nmlk install --source ./assets

  # Modify a specific startup file
  nmlk install --shell-rc ~/.zprofile

  See Also: nmlk doctor, nmlk backup restore`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := flags.Config()

	home, err := paths.ResolveHome()
	if err != nil {
		return errors.NewSystemError(err, "Set the HOME environment variable")
	}

	hosts, err := platform.Resolve(home, flags.Hosts(), cfg.RootOverrides())
	if err != nil {
		return errors.NewUserError(err, "Run 'nmlk --help' to see valid hosts")
	}

	src, err := resolveAssets(cmd.ErrOrStderr(), home)
	if err != nil {
		return err
	}

	override := shellRCArg
	if override == "" {
		override = cfg.ShellRC
	}

	var session *backup.Session
	if !noBackup && cfg.Backup.Enabled {
		mgr := backup.NewManager(backup.WithRetentionCount(cfg.Backup.Retention))
		session = backup.NewSession(ctx, mgr)
	}

	_, err = installer.Run(ctx, installer.Options{
		Home:     home,
		GOOS:     hostOS,
		Hosts:    hosts,
		Assets:   src,
		ShellRC:  shellrc.Detect(home, override),
		Backups:  session,
		Reporter: report.New(cmd.OutOrStdout(), quiet),
	})
	return err
}

// resolveAssets returns the bundle named by --source, or the embedded one.
// A custom bundle is linted and any findings are written to w.
func resolveAssets(w io.Writer, home string) (fs.FS, error) {
	if sourceDir == "" {
		return assets.Embedded(), nil
	}
	src, err := assets.FromDir(paths.Expand(home, sourceDir))
	if err != nil {
		return nil, errors.NewUserError(err,
			"--source must contain keychain-secrets/, commands/*.md and hooks/"+assets.HookScript)
	}

	result := assets.Lint(src)
	if len(result.Issues) > 0 {
		validator.NewReporter(w).Report(result)
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewUserError(err, "Fix the reported problems in the --source bundle")
	}
	return src, nil
}

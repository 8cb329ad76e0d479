// Package backup provides CLI commands for listing and restoring the
// backups nmlk takes before it modifies a file.
package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/flags"
	"github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/installer"
)

// newManager builds the backup manager; tests point it at a temp dir.
var newManager = func() *backup.Manager {
	return backup.NewManager(backup.WithRetentionCount(flags.Config().Backup.Retention))
}

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "List and restore configuration backups",
	Long: `List and restore the backups nmlk takes before modifying a file.

Before the installer rewrites a host's settings.json or appends to your
shell startup file, it copies the file into ~/.config/nmlk/backups/<scope>/
where the scope is the host name (claude, opencode) or "shell". Only the
newest backups of each scope are kept (backup.retention, default 5).`,
	Example: `  # List all backups
  nmlk backup list

  # Restore the files changed by one install run
  nmlk backup restore 20260123T100712

  # Restore one scope only
  nmlk backup restore claude/20260123T100712

  See Also:
    nmlk backup list    - List available backups
    nmlk backup restore - Restore from a backup`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// scopes returns the backup scopes for the selected hosts plus the shell.
func scopes() []string {
	return append(append([]string(nil), flags.Hosts()...), installer.ShellScope)
}

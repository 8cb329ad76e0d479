package backup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/cli/prompt"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
)

func init() {
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [[scope/]backup-id]",
	Short: "Restore files from a backup",
	Long: `Restore files to the state saved in a backup.

With "scope/id" only that backup is restored. With a bare id, every scope
that has a backup with that id is restored; one install run uses the same
id for all the files it changed. Without an argument you pick a backup
interactively; when stdin is not a terminal the most recent run is restored.

Every stored file is verified against its checksum before anything is
written. Existing files are overwritten.`,
	Example: `  # Pick a backup interactively
  nmlk backup restore

  # Undo one install run
  nmlk backup restore 20260123T100712

  # Restore only the shell startup file
  nmlk backup restore shell/20260123T100712`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		return runRestore(cmd.OutOrStdout(), newManager(), arg, logging.IsTTY(os.Stdin))
	},
}

func runRestore(w io.Writer, mgr *backup.Manager, arg string, interactive bool) error {
	targets, err := selectTargets(w, mgr, arg, interactive)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return errors.NewUserError(err, "")
		}
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewUserError(err, "Run 'nmlk backup list' to see available backups")
		}
		return err
	}

	for _, t := range targets {
		fmt.Fprintf(w, "Restoring %d file(s) from %s/%s...\n", len(t.Files), t.Scope, t.ID)
		restored, err := mgr.Restore(t.Scope, t.ID)
		if err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "restoring %s/%s", t.Scope, t.ID), "")
		}
		for _, f := range restored.Files {
			fmt.Fprintf(w, "  ✓ %s\n", f.OriginalPath)
		}
	}
	return nil
}

// selectTargets resolves the argument to the backups to restore.
func selectTargets(w io.Writer, mgr *backup.Manager, arg string, interactive bool) ([]backup.Manifest, error) {
	if scope, id, ok := strings.Cut(arg, "/"); ok {
		m, err := mgr.Get(scope, id)
		if err != nil {
			return nil, err
		}
		return []backup.Manifest{*m}, nil
	}

	all, err := mgr.ListAll()
	if err != nil {
		return nil, err
	}

	if arg != "" {
		matches := withID(all, arg)
		if len(matches) == 0 {
			return nil, errors.Wrapf(backup.ErrNoBackupsFound, "id %s", arg)
		}
		return matches, nil
	}

	if !interactive {
		fmt.Fprintf(w, "Using most recent backup: %s\n", all[0].ID)
		return withID(all, all[0].ID), nil
	}

	choice, err := prompt.NewSelector().SelectBackup(all)
	if err != nil {
		return nil, err
	}
	return []backup.Manifest{*choice}, nil
}

func withID(manifests []backup.Manifest, id string) []backup.Manifest {
	var out []backup.Manifest
	for _, m := range manifests {
		if m.ID == id {
			out = append(out, m)
		}
	}
	return out
}

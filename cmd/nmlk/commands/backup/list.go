package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List backups grouped by scope, most recent first.

The scopes are the selected hosts (see --host) and "shell".`,
	Example: `  # List all backups
  nmlk backup list

  # Only Claude Code backups (plus shell)
  nmlk backup list --host claude

  # Output as JSON
  nmlk backup list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd.OutOrStdout(), newManager(), scopes())
	},
}

// listOutput represents the JSON output for backup list.
type listOutput struct {
	Scope   string       `json:"scope"`
	Backups []infoOutput `json:"backups"`
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Files       []string  `json:"files"`
	ToolVersion string    `json:"tool_version"`
}

func runList(w io.Writer, mgr *backup.Manager, scopes []string) error {
	groups := make([]listOutput, 0, len(scopes))
	for _, scope := range scopes {
		manifests, err := mgr.List(scope)
		if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.Wrapf(err, "listing backups for %s", scope)
		}

		group := listOutput{Scope: scope, Backups: make([]infoOutput, len(manifests))}
		for i, m := range manifests {
			files := make([]string, len(m.Files))
			for j, f := range m.Files {
				files[j] = f.OriginalPath
			}
			group.Backups[i] = infoOutput{
				ID:          m.ID,
				CreatedAt:   m.CreatedAt,
				Files:       files,
				ToolVersion: m.ToolVersion,
			}
		}
		groups = append(groups, group)
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(groups), "encoding output")
	}
	outputListTabular(w, groups)
	return nil
}

func outputListTabular(w io.Writer, groups []listOutput) {
	header := color.New(color.FgCyan, color.Bold)
	id := color.New(color.FgGreen)
	dim := color.New(color.FgHiBlack)
	for _, c := range []*color.Color{header, id, dim} {
		if logging.SupportsColor(w) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	hasBackups := false
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header.Fprintf(w, "Scope: %s\n", g.Scope)

		if len(g.Backups) == 0 {
			dim.Fprintln(w, "  (no backups available)")
			continue
		}
		hasBackups = true

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tCREATED\tFILE")
		for _, b := range g.Backups {
			file := ""
			if len(b.Files) > 0 {
				file = b.Files[0]
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n",
				id.Sprint(b.ID),
				b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				file)
		}
		tw.Flush()
	}

	if !hasBackups {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before nmlk modifies settings.json or your shell startup file.")
	}
}

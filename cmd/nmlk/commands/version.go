package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/cmd"
	"github.com/thoreinstein/nmlk/internal/errors"
)

var versionJSON bool

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go runtime of nmlk.`,
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		info := cmd.Info()
		w := c.OutOrStdout()

		if versionJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(info), "encoding JSON")
		}

		fmt.Fprintf(w, "nmlk version %s\n", info.Version)
		fmt.Fprintf(w, "  commit:    %s\n", info.Commit)
		fmt.Fprintf(w, "  built:     %s\n", info.Date)
		fmt.Fprintf(w, "  go:        %s\n", info.Go)
		fmt.Fprintf(w, "  platform:  %s\n", info.Platform())
		return nil
	},
}

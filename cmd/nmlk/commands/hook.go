package commands

import (
	"context"
	"log/slog"

	"github.com/brads3290/cchooks"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/leakcheck"
	"github.com/thoreinstein/nmlk/internal/logging"
)

func init() {
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run the PreToolUse guard natively",
	Long: `Read a PreToolUse event from stdin and block "claude mcp add" commands that
carry an Authorization or Bearer credential.

This is a drop-in replacement for the installed ` + assets.HookScript + `
script. Register it in settings.json as:

  {"matcher": "Bash", "hooks": [{"type": "command", "command": "nmlk hook"}]}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := logging.FromContext(cmd.Context())
		runner := &cchooks.Runner{
			PreToolUse: func(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
				if event.ToolName != assets.HookMatcher {
					return cchooks.Approve()
				}
				bash, err := event.AsBash()
				if err != nil {
					logger.Warn("unreadable bash event", "error", err)
					return cchooks.Approve()
				}
				if blocked, reason := evaluate(logger, event.ToolName, bash.Command); blocked {
					return cchooks.Block(reason)
				}
				return cchooks.Approve()
			},
		}
		runner.Run()
		return nil
	},
}

// evaluate decides whether a tool call must be blocked.
func evaluate(logger *slog.Logger, tool, command string) (bool, string) {
	if tool != assets.HookMatcher || !leakcheck.UnsafeMCPAdd(command) {
		return false, ""
	}
	logger.Info("blocked mcp add with inline credential", "tool", tool)
	return true, leakcheck.BlockReason
}

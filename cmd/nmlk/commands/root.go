// Package commands implements the CLI commands for nmlk.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/cmd"
	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/backup"
	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/flags"
	internalbackup "github.com/thoreinstein/nmlk/internal/backup"
	"github.com/thoreinstein/nmlk/internal/config"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/installer"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/internal/report"
)

// DebugEnv raises verbosity when -v is not given: "1" or "true" for debug,
// "2" for trace.
const DebugEnv = "NMLK_DEBUG"

var (
	hostFlag  []string
	verbosity int
	quiet     bool
	logFormat string
	logFile   string
)

// configPath is an explicit config file, empty to search the defaults.
var configPath string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// logCloser releases the --log-file writer when Execute returns.
var logCloser io.Closer

// hostOS is the operating system the platform guard checks.
var hostOS = runtime.GOOS

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVar(&hostFlag, "host", nil,
		`target host(s): claude, opencode (default: from config, both)`)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/nmlk/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")

	// Installing is the default action, so the root takes install's flags.
	addInstallFlags(rootCmd)

	rootCmd.AddCommand(backup.Cmd)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("nmlk version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	internalbackup.Version = cmd.Version
}

func initConfig() {
	config.Init()
	var cfg *config.Config
	cfg, configLoadErr = config.Load(configPath)
	if configLoadErr == nil {
		flags.SetConfig(cfg)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nmlk",
	Short: "Keep API keys out of AI assistant configs",
	Long: `nmlk ("No More Leaked Keys") installs keychain-backed secret handling into
Claude Code and OpenCode.

It copies the keychain-secrets skill, the /secrets and /add-mcp slash
commands and a PreToolUse hook that blocks "claude mcp add" commands with
inline credentials, registers the hook in each host's settings.json, and
adds a guard function to your shell startup file.

Running nmlk with no subcommand installs everything. Running it again is
safe: anything already in place is left untouched.`,
	Example: `  # Install into both hosts
  nmlk

  # Install only into OpenCode
  nmlk install --host opencode

  # Check an existing installation
  nmlk doctor

  See Also: nmlk doctor, nmlk backup, nmlk config`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateFlags(cmd, args)
	},
	RunE: runInstall,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	v := verbosity
	// CLI flags take precedence, but if not set, check env var
	if v == 0 {
		if val, ok := os.LookupEnv(DebugEnv); ok {
			switch val {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
	}

	logger, closer, err := logging.Setup(logging.Options{
		Verbosity: v,
		Quiet:     quiet,
		Format:    logging.Format(logFormat),
		Output:    cmd.ErrOrStderr(),
		File:      logFile,
	})
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	logCloser = closer
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateFlags checks the loaded config and the --host values.
func validateFlags(cmd *cobra.Command, _ []string) error {
	// The hook must not fail on configuration problems; the host would treat
	// that as a non-blocking error anyway.
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == hookCmd.Name() {
		return nil
	}
	// The config commands must work with a broken config so it can be fixed.
	if cmd == configCmd || cmd.Parent() == configCmd {
		return nil
	}
	// Installing on an unsupported OS ends at the banner, whatever the config says.
	if !cmd.HasParent() || cmd == installCmd {
		if err := installer.Guard(hostOS, report.New(cmd.OutOrStdout(), quiet)); err != nil {
			return err
		}
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if errs := config.Validate(flags.Config()); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return errors.NewConfigError(errors.Wrap(errors.ErrInvalidConfig, strings.Join(msgs, "; ")))
	}

	var invalid []string
	for _, h := range hostFlag {
		if !paths.ValidHost(h) {
			invalid = append(invalid, h)
		}
	}
	if len(invalid) > 0 {
		err := errors.Newf("invalid host(s): %s (valid: %s)",
			strings.Join(invalid, ", "),
			strings.Join(paths.Hosts(), ", "))
		return errors.NewUserError(err, "Run 'nmlk --help' to see valid hosts")
	}
	flags.SetHostFlag(hostFlag)

	return nil
}

// SetHostOS overrides the operating system the platform guard checks.
func SetHostOS(goos string) {
	hostOS = goos
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return err
}

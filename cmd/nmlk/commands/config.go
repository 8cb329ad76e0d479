package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/flags"
	"github.com/thoreinstein/nmlk/internal/config"
	"github.com/thoreinstein/nmlk/internal/editor"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage nmlk configuration",
	Long: `Show the effective nmlk configuration as YAML.

Configuration is read from ./config.yaml or ~/.config/nmlk/config.yaml, and
every key can be overridden with an NMLK_ environment variable (for example
NMLK_SHELL_RC=~/.zprofile).`,
	Example: `  # Show the effective configuration
  nmlk config

  # Write a config file with the defaults
  nmlk config init

  # Get a single value
  nmlk config get backup.retention

See Also: nmlk config path, nmlk config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Long: `Open the config file in your editor.

Uses $EDITOR, then $VISUAL, then nano or vi. Run 'nmlk config init' first if
no config file exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return errors.NewUserError(errors.Newf("config file not found at %s", path),
				"Run: nmlk config init")
		}
		return editor.Open(cmd.Context(), cmd.OutOrStdout(), path)
	},
}

// configFilePath is the file in use, or where a new one would be written.
func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.AppConfigDir(), "config.yaml")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	data, err := yaml.Marshal(flags.Config())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))

	for _, e := range config.Validate(flags.Config()) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	w := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = filepath.Join(paths.AppConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", path), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

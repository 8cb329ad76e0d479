package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/flags"
	"github.com/thoreinstein/nmlk/internal/doctor"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/internal/platform"
	"github.com/thoreinstein/nmlk/internal/shellrc"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	// Shared with install so both look at the same bundle and startup file.
	doctorCmd.Flags().StringVar(&sourceDir, "source", "",
		"compare against assets in this directory instead of the built-in bundle")
	doctorCmd.Flags().StringVar(&shellRCArg, "shell-rc", "",
		"shell startup file to check")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check an existing installation",
	Long: `Run read-only checks on an nmlk installation.

Checks that the OS is supported, that each host has the skill, every slash
command and an executable hook script, that settings.json registers the
hook exactly once, and that the shell startup file has the guard function.

Exit codes:
  0 - No errors (warnings are reported but do not fail)
  1 - At least one check failed`,
	Example: `  # Check both hosts
  nmlk doctor

  # Machine-readable output
  nmlk doctor --json

  See Also: nmlk install`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
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

	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.PlatformCheck{GOOS: hostOS})
	runner.AddCheck(doctor.GuardSelfTest{})
	for _, h := range hosts {
		runner.AddCheck(&doctor.AssetCheck{Host: h, Bundle: src})
		runner.AddCheck(&doctor.SettingsCheck{Host: h})
	}
	runner.AddCheck(&doctor.ShellCheck{Path: shellrc.Detect(home, override)})

	report := runner.Run(cmd.Context())

	out := cmd.OutOrStdout()
	if doctorJSON {
		if err := outputDoctorJSON(out, report); err != nil {
			return err
		}
	} else {
		outputDoctorText(out, report)
	}

	if report.HasErrors() {
		exitErr := errors.NewExitError(errors.Newf("%d check(s) failed", report.Summary.Errors), errors.ExitUser)
		exitErr.Reported = true
		return exitErr
	}
	return nil
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encoding JSON")
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	useColor := logging.SupportsColor(w)
	paint := func(c *color.Color) *color.Color {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	styles := map[doctor.Severity]*color.Color{
		doctor.SeverityPass:    paint(color.New(color.FgGreen)),
		doctor.SeverityInfo:    paint(color.New(color.FgCyan)),
		doctor.SeverityWarning: paint(color.New(color.FgYellow)),
		doctor.SeverityError:   paint(color.New(color.FgRed)),
	}

	category := ""
	for _, result := range report.Results {
		if result.Category != category {
			category = result.Category
			fmt.Fprintf(w, "\n%s\n", category)
		}

		styles[result.Status].Fprintf(w, "  %s ", statusIcon(result.Status))
		fmt.Fprintf(w, "%s\n", result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "    hint: %s\n", result.FixHint)
		}
	}

	fmt.Fprintf(w, "\nSummary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

package commands

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/thoreinstein/nmlk/cmd/nmlk/commands/flags"
	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/config"
	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/leakcheck"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/preflight"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnv, "")
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"NMLK_DEBUG=1", "1", slog.LevelDebug},
		{"NMLK_DEBUG=true", "true", slog.LevelDebug},
		{"NMLK_DEBUG=2", "2", logging.LevelTrace},
		{"NMLK_DEBUG=0", "0", slog.LevelWarn},
		{"NMLK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(DebugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Errorf("expected trace to be disabled when %s=%s", DebugEnv, tt.envVal)
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity, quiet = 1, true
	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	if errors.CodeOf(err) != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", errors.CodeOf(err), errors.ExitUser)
	}
}

func TestSetupLogging_UnknownFormat(t *testing.T) {
	origFormat := logFormat
	defer func() { logFormat = origFormat }()

	logFormat = "xml"
	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestValidateFlags_InvalidHost(t *testing.T) {
	origHosts, origErr, origOS := hostFlag, configLoadErr, hostOS
	defer func() { hostFlag, configLoadErr, hostOS = origHosts, origErr, origOS }()

	hostOS = "darwin"
	configLoadErr = nil
	flags.SetConfig(config.Default())
	hostFlag = []string{"claude", "gemini"}

	err := validateFlags(installCmd, nil)
	if err == nil {
		t.Fatal("expected error for unknown host")
	}
	if !strings.Contains(err.Error(), "gemini") {
		t.Errorf("error should name the bad host: %v", err)
	}
}

func TestValidateFlags_PlatformBeforeConfig(t *testing.T) {
	origErr, origOS := configLoadErr, hostOS
	defer func() { configLoadErr, hostOS = origErr, origOS }()

	var out bytes.Buffer
	installCmd.SetOut(&out)
	defer installCmd.SetOut(nil)

	hostOS = "linux"
	configLoadErr = errors.New("broken config")

	err := validateFlags(installCmd, nil)
	if err == nil {
		t.Fatal("expected unsupported platform error")
	}
	if !errors.Is(err, preflight.ErrUnsupportedPlatform) {
		t.Errorf("error = %v, want the platform error ahead of the config error", err)
	}
	if got := errors.CodeOf(err); got != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", got, errors.ExitUser)
	}
	if !strings.Contains(out.String(), "This tool only works on macOS") {
		t.Errorf("banner not printed, got %q", out.String())
	}
}

func TestValidateFlags_SkipsHook(t *testing.T) {
	origErr := configLoadErr
	defer func() { configLoadErr = origErr }()

	configLoadErr = errors.New("broken config")
	if err := validateFlags(hookCmd, nil); err != nil {
		t.Errorf("hook should ignore config errors, got %v", err)
	}
	if err := validateFlags(configPathCmd, nil); err != nil {
		t.Errorf("config path should ignore config errors, got %v", err)
	}
	if err := validateFlags(doctorCmd, nil); err == nil {
		t.Error("doctor should report config errors")
	}
}

func TestEvaluate(t *testing.T) {
	logger := logging.NewDiscard()

	tests := []struct {
		name    string
		tool    string
		command string
		blocked bool
	}{
		{
			name:    "mcp add with bearer header",
			tool:    assets.HookMatcher,
			command: `claude mcp add api https://api.example.com --header "Authorization: Bearer sk-123"`,
			blocked: true,
		},
		{
			name:    "header assigned before mcp add",
			tool:    assets.HookMatcher,
			command: `export H="Authorization: Bearer sk-123"; claude mcp add srv --header "$H"`,
			blocked: true,
		},
		{
			name:    "mcp add without credentials",
			tool:    assets.HookMatcher,
			command: `claude mcp add filesystem npx @modelcontextprotocol/server-filesystem`,
		},
		{
			name:    "bearer outside mcp add",
			tool:    assets.HookMatcher,
			command: `curl -H "Authorization: Bearer x" https://example.com`,
		},
		{
			name:    "other tool",
			tool:    "Write",
			command: `claude mcp add api --header "Authorization: Bearer sk-123"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked, reason := evaluate(logger, tt.tool, tt.command)
			if blocked != tt.blocked {
				t.Errorf("evaluate() blocked = %v, want %v", blocked, tt.blocked)
			}
			if blocked && reason != leakcheck.BlockReason {
				t.Errorf("evaluate() reason = %q", reason)
			}
		})
	}
}

func TestStatusIcon(t *testing.T) {
	if got := statusIcon(99); got != "?" {
		t.Errorf("statusIcon(99) = %q, want ?", got)
	}
}

func TestVersionCommand_Output(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"nmlk version", "commit:", "built:", "go:", "platform:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("version output missing %q\nGot:\n%s", want, buf.String())
		}
	}
}

func TestVersionCommand_CommandMetadata(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" || versionCmd.Long == "" {
		t.Error("versionCmd descriptions should not be empty")
	}
}

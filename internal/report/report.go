// Package report prints the installer's progress and summary to stdout.
//
// Output is line oriented: a numbered step header followed by one or more
// result lines marked with ✓, ⚠ or ✗. Colors follow the terminal, NO_COLOR
// and TERM=dumb.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/nmlk/internal/logging"
)

const rule = "======================================"

// Reporter writes progress lines. It is not safe for concurrent use.
type Reporter struct {
	out   io.Writer
	quiet bool
	step  int
	total int

	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	bold   *color.Color
}

// New returns a Reporter writing to out. In quiet mode only errors and the
// platform banner are printed.
func New(out io.Writer, quiet bool) *Reporter {
	r := &Reporter{
		out:    out,
		quiet:  quiet,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		bold:   color.New(color.Bold),
	}

	useColor := logging.SupportsColor(out)
	for _, c := range []*color.Color{r.cyan, r.green, r.yellow, r.red, r.bold} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Discard returns a Reporter that prints nothing.
func Discard() *Reporter {
	return New(io.Discard, true)
}

// SetTotal sets the denominator of step headers.
func (r *Reporter) SetTotal(n int) {
	r.total = n
}

// Banner prints the installer title.
func (r *Reporter) Banner() {
	if r.quiet {
		return
	}
	r.bold.Fprintln(r.out)
	r.bold.Fprintln(r.out, rule)
	r.bold.Fprintln(r.out, "  No More Leaked Keys - Installer")
	r.bold.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)
}

// Step starts the next numbered step.
func (r *Reporter) Step(msg string) {
	r.step++
	if r.quiet {
		return
	}
	r.cyan.Fprintf(r.out, "[%d/%d] %s\n", r.step, r.total, msg)
}

// Success prints a ✓ line.
func (r *Reporter) Success(format string, args ...any) {
	if r.quiet {
		return
	}
	r.green.Fprintf(r.out, "  ✓ %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a ⚠ line.
func (r *Reporter) Warning(format string, args ...any) {
	if r.quiet {
		return
	}
	r.yellow.Fprintf(r.out, "  ⚠ %s\n", fmt.Sprintf(format, args...))
}

// Error prints a ✗ line. Errors are printed even in quiet mode.
func (r *Reporter) Error(format string, args ...any) {
	r.red.Fprintf(r.out, "  ✗ %s\n", fmt.Sprintf(format, args...))
}

// Unsupported prints the banner shown when the OS cannot run the installer.
func (r *Reporter) Unsupported(lines []string) {
	fmt.Fprintln(r.out)
	for i, line := range lines {
		if i < 3 {
			r.red.Fprintln(r.out, line)
			continue
		}
		fmt.Fprintln(r.out, line)
	}
	fmt.Fprintln(r.out)
}

// HostSummary is one installed host in the final summary.
type HostSummary struct {
	DisplayName string
	// Root is the host root as shown to the user, e.g. "~/.claude".
	Root string
}

// CommandSummary is one slash command in the final summary.
type CommandSummary struct {
	Invocation  string
	Description string
}

// Summary is the content of the closing report.
type Summary struct {
	Hosts    []HostSummary
	Commands []CommandSummary
	// ShellRC is the startup file that holds the guard function.
	ShellRC string
}

// Summary prints the closing report.
func (r *Reporter) Summary(s Summary) {
	if r.quiet {
		return
	}

	r.green.Fprintln(r.out)
	r.green.Fprintln(r.out, rule)
	r.green.Fprintln(r.out, "  Installation Complete!")
	r.green.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)

	width := len("Commands:")
	for _, h := range s.Hosts {
		width = max(width, len(h.DisplayName)+1)
	}
	item := func(label, value string) {
		fmt.Fprintf(r.out, "  • %-*s %s\n", width, label, value)
	}

	r.bold.Fprintln(r.out, "What's installed:")
	for _, h := range s.Hosts {
		item(h.DisplayName+":", h.Root+"/skills/, commands/, hooks/")
	}
	invocations := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		invocations[i] = c.Invocation
	}
	item("Commands:", strings.Join(invocations, ", "))
	item("Shell:", "Protection function in "+s.ShellRC)

	fmt.Fprintln(r.out)
	r.bold.Fprintln(r.out, "Usage:")
	for _, c := range s.Commands {
		if c.Description != "" {
			fmt.Fprintf(r.out, "  • Type %s - %s\n", c.Invocation, c.Description)
		} else {
			fmt.Fprintf(r.out, "  • Type %s\n", c.Invocation)
		}
	}
	fmt.Fprintf(r.out, "  • Works in %s\n", hostList(s.Hosts))

	fmt.Fprintln(r.out)
	r.bold.Fprintf(r.out, "Protection is active at %s levels:\n", countWord(len(s.Hosts)+1))
	for i, h := range s.Hosts {
		fmt.Fprintf(r.out, "  %d. %s hook - blocks unsafe commands\n", i+1, h.DisplayName)
	}
	fmt.Fprintf(r.out, "  %d. Shell function - blocks manual terminal commands\n", len(s.Hosts)+1)

	fmt.Fprintln(r.out)
	r.yellow.Fprintln(r.out, "To activate shell protection now, run:")
	fmt.Fprintf(r.out, "  source %s\n\n", s.ShellRC)
	fmt.Fprintln(r.out, "Or restart your terminal.")
	fmt.Fprintln(r.out)
}

func hostList(hosts []HostSummary) string {
	names := make([]string, len(hosts))
	for i, h := range hosts {
		names[i] = h.DisplayName
	}
	switch len(names) {
	case 0:
		return "your shell"
	case 1:
		return names[0]
	case 2:
		return "BOTH " + names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

var countWords = []string{"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE"}

func countWord(n int) string {
	if n >= 0 && n < len(countWords) {
		return countWords[n]
	}
	return fmt.Sprint(n)
}

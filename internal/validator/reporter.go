package validator

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/nmlk/internal/logging"
)

// Reporter writes a Result as text.
type Reporter struct {
	out    io.Writer
	red    *color.Color
	yellow *color.Color
	green  *color.Color
}

// NewReporter creates a Reporter; colors follow the terminal.
func NewReporter(out io.Writer) *Reporter {
	r := &Reporter{
		out:    out,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
	}
	useColor := logging.SupportsColor(out)
	for _, c := range []*color.Color{r.red, r.yellow, r.green} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Report writes the findings in result, errors first.
func (r *Reporter) Report(result *Result) {
	errs := result.Filter(SeverityError)
	warns := result.Filter(SeverityWarning)

	if len(errs) == 0 && len(warns) == 0 {
		r.green.Fprintln(r.out, "✓ Asset bundle is valid")
		return
	}

	var summary []string
	if len(errs) > 0 {
		summary = append(summary, r.red.Sprintf("%d error(s)", len(errs)))
	}
	if len(warns) > 0 {
		summary = append(summary, r.yellow.Sprintf("%d warning(s)", len(warns)))
	}
	fmt.Fprintf(r.out, "Asset bundle: %s\n", strings.Join(summary, ", "))

	for _, i := range errs {
		r.red.Fprint(r.out, "  ✗ ")
		fmt.Fprintln(r.out, i.Error())
	}
	for _, i := range warns {
		r.yellow.Fprint(r.out, "  ⚠ ")
		fmt.Fprintln(r.out, i.Error())
	}
}

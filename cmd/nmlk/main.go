// Package main is the entry point for the nmlk CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/thoreinstein/nmlk/cmd/nmlk/commands"
	"github.com/thoreinstein/nmlk/internal/errors"
)

func main() {
	os.Exit(run(os.Stderr))
}

// run executes the CLI and returns the process exit code. Failures the
// installer already printed are not repeated.
func run(stderr io.Writer) int {
	err := commands.Execute()
	if err == nil {
		return errors.ExitSuccess
	}

	var exitErr *errors.ExitError
	hasExit := errors.As(err, &exitErr)
	if hasExit && exitErr.Reported {
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if hasExit && exitErr.Suggestion != "" {
		fmt.Fprintf(stderr, "  %s\n", exitErr.Suggestion)
	}
	return errors.CodeOf(err)
}

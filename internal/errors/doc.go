// Package errors provides error handling conventions for the nmlk installer.
//
// It re-exports the constructors and inspection helpers of
// github.com/cockroachdb/errors so callers only import one errors package,
// and adds [ExitError], which carries the process exit code and an optional
// suggestion printed by main.
//
// # Exit Codes
//
//   - ExitSuccess (0): the run completed, including runs where every step was
//     already satisfied
//   - ExitUser (1): unsupported platform, invalid flags or configuration,
//     failed doctor checks
//   - ExitSystem (2): a filesystem operation failed during installation
//
// # ExitError
//
//	err := errors.NewSystemError(errors.Wrap(cause, "copying hook"), "Check permissions on ~/.claude")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors

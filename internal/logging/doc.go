// Package logging provides structured logging for the nmlk CLI using slog.
//
// Log output goes to stderr so it never interleaves with the installer's
// progress report on stdout. Text output is colorized on a terminal, and
// attribute values that look like credentials are masked before they are
// written.
//
//	logger, closer, err := logging.Setup(logging.Options{
//		Verbosity: 1,
//		Format:    logging.FormatText,
//		Output:    os.Stderr,
//		File:      "/tmp/nmlk.log",
//	})
//
// Loggers travel through the pipeline in the context; use [NewContext] and
// [FromContext]. [FromContext] never returns nil.
//
// For tests, use [ForTest] to capture log output via the testing framework.
package logging

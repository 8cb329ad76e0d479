// Package leakcheck recognizes commands and values that would put an API
// credential on screen or in a log.
//
// Two groups of helpers live here. [UnsafeMCPAdd] and [UnsafeArgs] detect a
// "claude mcp add" invocation that carries an Authorization or Bearer header.
// UnsafeMCPAdd applies the bundled hook script's rule to a whole command line;
// UnsafeArgs applies the shell guard's rule to an argument vector.
// [ShouldMask], [ContainsTokenPrefix] and [MaskValue] redact secrets from log
// attributes.
package leakcheck

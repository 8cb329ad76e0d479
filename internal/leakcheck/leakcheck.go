package leakcheck

import (
	"regexp"
	"strings"
)

var (
	// credentialPattern matches the shell guard's test:
	// [Aa]uthorization.*[Bb]earer || [Bb]earer
	credentialPattern = regexp.MustCompile(`[Aa]uthorization.*[Bb]earer|[Bb]earer`)

	// mcpAddPattern matches the hook script's test, which also catches
	// "claude mcp add-json".
	mcpAddPattern = regexp.MustCompile(`claude\s+mcp\s+add`)
)

// BlockReason is the message shown when an unsafe command is refused.
const BlockReason = `BLOCKED: Unsafe MCP Command Detected

The "claude mcp add" command with auth headers exposes your API key in terminal output!

Use these safe alternatives instead:
  - /secrets  (in Claude Code)
  - /add-mcp  (in Claude Code)

These pull keys from Keychain securely.`

// HasCredential reports whether s contains an Authorization/Bearer header fragment.
func HasCredential(s string) bool {
	return credentialPattern.MatchString(s)
}

// UnsafeMCPAdd reports whether command line runs "claude mcp add" and
// carries a credential anywhere on the line. A header built in an earlier
// statement and expanded later still counts.
func UnsafeMCPAdd(command string) bool {
	return mcpAddPattern.MatchString(command) && HasCredential(command)
}

// UnsafeArgs applies the shell guard's rule to the argument vector of a
// "claude" invocation (program name excluded).
func UnsafeArgs(args []string) bool {
	if len(args) < 2 || args[0] != "mcp" || args[1] != "add" {
		return false
	}
	for _, arg := range args {
		if HasCredential(arg) {
			return true
		}
	}
	return false
}

// ShellGuardBlocks reports whether a shell script contains the guard's
// credential pattern, used to confirm the installed block is the one nmlk ships.
func ShellGuardBlocks(script string) bool {
	return strings.Contains(script, `[Aa]uthorization.*[Bb]earer`) &&
		strings.Contains(script, "command claude")
}

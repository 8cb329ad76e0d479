package leakcheck

import "testing"

func TestUnsafeMCPAdd(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{
			name:    "authorization header",
			command: `claude mcp add --transport http stripe https://mcp.stripe.com --header "Authorization: Bearer sk_live_123"`,
			want:    true,
		},
		{
			name:    "lowercase bearer",
			command: `claude mcp add api https://x.dev -H "authorization: bearer abc"`,
			want:    true,
		},
		{
			name:    "plain add without credentials",
			command: `claude mcp add filesystem npx @modelcontextprotocol/server-filesystem`,
		},
		{
			name:    "bearer outside mcp add",
			command: `curl -H "Authorization: Bearer abc" https://x.dev`,
		},
		{
			name:    "mcp list",
			command: `claude mcp list Bearer`,
		},
		{
			name:    "chained command",
			command: `cd /tmp && claude  mcp   add x -H 'Bearer t'`,
			want:    true,
		},
		{
			name:    "credential before subcommand",
			command: `echo Bearer; claude mcp add x`,
			want:    true,
		},
		{
			name:    "header held in a variable",
			command: `export H="Authorization: Bearer sk-123"; claude mcp add srv --header "$H"`,
			want:    true,
		},
		{
			name:    "add-json with headers",
			command: `claude mcp add-json api '{"type":"http","headers":{"Authorization":"Bearer t"}}'`,
			want:    true,
		},
		{
			name:    "variable without credential",
			command: `export URL=https://x.dev; claude mcp add srv "$URL"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnsafeMCPAdd(tt.command); got != tt.want {
				t.Errorf("UnsafeMCPAdd(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestUnsafeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"bearer header", []string{"mcp", "add", "x", "--header", "Authorization: Bearer t"}, true},
		{"no header", []string{"mcp", "add", "x", "npx", "server"}, false},
		{"other subcommand", []string{"mcp", "list", "Bearer"}, false},
		{"too short", []string{"mcp"}, false},
		{"uppercase token not matched", []string{"mcp", "add", "BEARER"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnsafeArgs(tt.args); got != tt.want {
				t.Errorf("UnsafeArgs(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestShellGuardBlocks(t *testing.T) {
	script := `if [[ "$arg" =~ [Aa]uthorization.*[Bb]earer || "$arg" =~ [Bb]earer ]]; then
    return 1
fi
command claude "$@"`
	if !ShellGuardBlocks(script) {
		t.Error("ShellGuardBlocks() = false for guard script")
	}
	if ShellGuardBlocks(`claude() { command claude "$@"; }`) {
		t.Error("ShellGuardBlocks() = true for passthrough wrapper")
	}
}

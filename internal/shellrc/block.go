package shellrc

// Marker identifies an installed guard block. Its presence anywhere in the
// startup file means the block is already installed.
const Marker = "No More Leaked Keys - Security Protection"

// Block is appended verbatim to the startup file. It shadows the claude
// command with a function that refuses "claude mcp add" when any argument
// carries an Authorization/Bearer header.
const Block = `
# ============================================
# No More Leaked Keys - Security Protection
# Blocks unsafe "claude mcp add" with auth headers
# ============================================
claude() {
    if [[ "$1" == "mcp" && "$2" == "add" ]]; then
        for arg in "$@"; do
            if [[ "$arg" =~ [Aa]uthorization.*[Bb]earer || "$arg" =~ [Bb]earer ]]; then
                echo ""
                echo "============================================"
                echo "  BLOCKED: Unsafe MCP Command Detected"
                echo "============================================"
                echo ""
                echo 'The "claude mcp add" command with auth headers'
                echo "exposes your API key in terminal output!"
                echo ""
                echo "Use these safe alternatives instead:"
                echo "  - /secrets  (in Claude Code)"
                echo "  - /add-mcp  (in Claude Code)"
                echo ""
                echo "These pull keys from Keychain securely."
                echo "See: https://github.com/Vibe-Marketer/no-more-leaked-keys"
                echo ""
                return 1
            fi
        done
    fi
    command claude "$@"
}
`

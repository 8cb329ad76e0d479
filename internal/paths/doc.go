// Package paths resolves the on-disk locations nmlk reads and writes.
//
// Host configuration roots are derived from an explicit home directory so
// callers compute them once at startup and pass them down:
//
//	| Host      | Root                | Settings                     |
//	|-----------|---------------------|------------------------------|
//	| claude    | ~/.claude/          | ~/.claude/settings.json      |
//	| opencode  | ~/.config/opencode/ | ~/.config/opencode/settings.json |
//
// nmlk's own configuration and backups live under the XDG config home
// (github.com/adrg/xdg), e.g. ~/.config/nmlk/config.yaml.
package paths

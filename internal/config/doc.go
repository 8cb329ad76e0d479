// Package config provides configuration management for the nmlk CLI.
//
// The configuration file is optional. When present it is read from
// ./config.yaml or $XDG_CONFIG_HOME/nmlk/config.yaml, and every key can be
// overridden with an NMLK_-prefixed environment variable.
//
//	version: 1
//	default_hosts:
//	  - claude
//	  - opencode
//	hosts:
//	  claude:
//	    config_dir: ~/work/.claude   # optional root override
//	shell_rc: ~/.zshrc             # optional, skips detection
//	backup:
//	  enabled: true
//	  retention: 5
//
// Call [Init] once at startup, then [Load]. [Validate] reports every problem
// in the loaded configuration rather than stopping at the first one.
package config

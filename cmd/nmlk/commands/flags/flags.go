// Package flags provides shared flag and configuration accessors for CLI
// commands. It exists to avoid import cycles between the root command and
// noun subpackages (backup).
package flags

import "github.com/thoreinstein/nmlk/internal/config"

var (
	hostFlag []string
	cfg      *config.Config
)

// GetHostFlag returns the current value of the --host flag.
func GetHostFlag() []string {
	return hostFlag
}

// SetHostFlag sets the --host flag value. The root command calls this after
// parsing.
func SetHostFlag(hosts []string) {
	hostFlag = hosts
}

// Config returns the loaded configuration, or the defaults when none was
// loaded.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// SetConfig stores the loaded configuration.
func SetConfig(c *config.Config) {
	cfg = c
}

// Hosts returns the hosts selected by --host, falling back to the
// configured defaults.
func Hosts() []string {
	if len(hostFlag) > 0 {
		return hostFlag
	}
	return Config().DefaultHosts
}

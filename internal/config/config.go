package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "NMLK"

// DefaultRetention is the number of backups kept per scope.
const DefaultRetention = 5

// Config represents the top-level configuration structure.
type Config struct {
	Version      int                     `mapstructure:"version" yaml:"version"`
	DefaultHosts []string                `mapstructure:"default_hosts" yaml:"default_hosts"`
	Hosts        map[string]HostOverride `mapstructure:"hosts" yaml:"hosts,omitempty"`
	ShellRC      string                  `mapstructure:"shell_rc" yaml:"shell_rc,omitempty"`
	Backup       BackupConfig            `mapstructure:"backup" yaml:"backup"`
}

// HostOverride contains configuration overrides for a specific host.
type HostOverride struct {
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir"`
}

// BackupConfig controls the pre-modification backups taken by the installer.
type BackupConfig struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled"`
	Retention int  `mapstructure:"retention" yaml:"retention"`
}

// RootOverrides returns the non-empty config_dir overrides keyed by host.
func (c *Config) RootOverrides() map[string]string {
	out := make(map[string]string, len(c.Hosts))
	for name, o := range c.Hosts {
		if o.ConfigDir != "" {
			out[name] = o.ConfigDir
		}
	}
	return out
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("default_hosts", paths.Hosts())
	viper.SetDefault("shell_rc", "")
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", DefaultRetention)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default locations are searched and a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:      1,
		DefaultHosts: paths.Hosts(),
		Backup: BackupConfig{
			Enabled:   true,
			Retention: DefaultRetention,
		},
	}
}

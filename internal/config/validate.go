package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidHost indicates an unrecognized host name.
	ErrInvalidHost = errors.New("invalid host")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidRetention indicates a non-positive backup retention.
	ErrInvalidRetention = errors.New("backup.retention must be >= 1")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, host := range cfg.DefaultHosts {
		if !paths.ValidHost(host) {
			errs = append(errs, &HostError{Host: host, Err: ErrInvalidHost})
		}
	}

	// Sorted so the error list is stable.
	names := make([]string, 0, len(cfg.Hosts))
	for name := range cfg.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !paths.ValidHost(name) {
			errs = append(errs, &HostError{Host: name, Err: ErrInvalidHost})
			continue
		}
		dir := cfg.Hosts[name].ConfigDir
		if err := validatePath(dir); err != nil {
			errs = append(errs, &PathError{
				Field: "hosts." + name + ".config_dir",
				Path:  dir,
				Err:   err,
			})
		}
	}

	if err := validatePath(cfg.ShellRC); err != nil {
		errs = append(errs, &PathError{Field: "shell_rc", Path: cfg.ShellRC, Err: err})
	}

	if cfg.Backup.Enabled && cfg.Backup.Retention < 1 {
		errs = append(errs, ErrInvalidRetention)
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths mean "use default".
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// HostError represents an error for a specific host name.
type HostError struct {
	Host string
	Err  error
}

func (e *HostError) Error() string {
	return e.Err.Error() + ": " + e.Host
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

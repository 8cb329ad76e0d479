// Package preflight checks that the installer can run on this machine.
package preflight

import (
	"github.com/thoreinstein/nmlk/internal/errors"
)

// SupportedOS is the only GOOS the installer runs on; the installed
// scripts depend on the macOS Keychain.
const SupportedOS = "darwin"

// ErrUnsupportedPlatform is returned by Check on any other OS.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Banner is printed when Check fails.
var Banner = []string{
	"============================================",
	"  This tool only works on macOS",
	"============================================",
	"",
	"It uses macOS Keychain for secure key storage.",
	"For other platforms, see the README for alternatives.",
}

// Check returns ErrUnsupportedPlatform unless goos is SupportedOS.
func Check(goos string) error {
	if goos != SupportedOS {
		return errors.Wrapf(ErrUnsupportedPlatform, "%s (requires macOS)", goos)
	}
	return nil
}

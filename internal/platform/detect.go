package platform

import "os"

// InstallStatus indicates whether a host's configuration root exists.
type InstallStatus string

const (
	// StatusInstalled indicates the host's config root exists.
	StatusInstalled InstallStatus = "installed"

	// StatusNotInstalled indicates the host's config root does not exist.
	StatusNotInstalled InstallStatus = "not_installed"
)

// Detect reports the install status of h.
func Detect(h Host) InstallStatus {
	if dirExists(h.Root) {
		return StatusInstalled
	}
	return StatusNotInstalled
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

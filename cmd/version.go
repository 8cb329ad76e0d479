// Package cmd holds build metadata stamped in by the release build.
package cmd

import (
	"fmt"
	"runtime"
)

// Set via -ldflags "-X github.com/thoreinstein/nmlk/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// BuildInfo is the build metadata printed by "nmlk version".
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// Info returns the metadata of the running binary.
func Info() BuildInfo {
	return BuildInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// Platform is "os/arch".
func (b BuildInfo) Platform() string {
	return fmt.Sprintf("%s/%s", b.OS, b.Arch)
}

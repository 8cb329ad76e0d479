package doctor

import (
	"context"

	"github.com/thoreinstein/nmlk/internal/preflight"
)

// PlatformCheck verifies the OS can run the installed scripts.
type PlatformCheck struct {
	GOOS string
}

var _ Check = (*PlatformCheck)(nil)

func (c *PlatformCheck) Name() string     { return "platform" }
func (c *PlatformCheck) Category() string { return "system" }

func (c *PlatformCheck) Run(context.Context) *CheckResult {
	if err := preflight.Check(c.GOOS); err != nil {
		return fail("running on "+c.GOOS+"; the Keychain scripts require macOS", "")
	}
	return pass("running on macOS")
}

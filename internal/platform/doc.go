// Package platform models the AI coding assistant hosts nmlk installs into.
//
// A [Host] is a named configuration root. Every host derives the same
// layout under its root:
//
//	<root>/skills/<skill>/
//	<root>/commands/*.md
//	<root>/hooks/<script>.sh
//	<root>/settings.json
//
// Use [Resolve] to turn a list of host names (from flags or configuration)
// plus optional per-host root overrides into concrete hosts. The installer
// treats the resulting slice as a parameterized target list; there is no
// per-host special casing beyond the root directory.
//
// [Detect] reports whether a host's root already exists, which the doctor
// command uses to distinguish "not installed" from "broken".
package platform

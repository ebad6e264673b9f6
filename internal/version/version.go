// Package version provides centralized version information for the Rollcall
// binaries. rollcalld and rollcallctl are versioned independently.
// All versions follow semantic versioning (semver) conventions.
package version

// RollcalldVersion holds the current rollcalld daemon version.
// Format: major.minor.patch[-prerelease][+build]
const RollcalldVersion = "0.1.0-dev"

// RollcallctlVersion holds the current rollcallctl CLI version.
const RollcallctlVersion = "0.1.0-dev"

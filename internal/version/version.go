// Package version holds the current apptriage release version.
package version

// Version is the current release of apptriage, set here rather than via
// ldflags so that library consumers see the same value as the CLI.
const Version = "0.4.1"

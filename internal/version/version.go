// Package version holds build metadata injected via ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for `sny --version`.
func String() string {
	return fmt.Sprintf("sny version %s (commit: %s, built: %s)", Version, Commit, Date)
}

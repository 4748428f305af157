// Package version holds build information stamped in at release time.
package version

import "fmt"

// Set with -ldflags "-X github.com/arthur-debert/dotstrap/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String is the one-line form printed by "dotstrap version"
func String() string {
	return fmt.Sprintf("dotstrap %s (commit %s, built %s)", Version, Commit, Date)
}

// Package version holds build metadata printed by `kts --version`.
package version

import "fmt"

// These variables are set at build time using ldflags.
// Example: go build -ldflags "-X github.com/pablasso/kts/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// String renders the version line, omitting build details for dev builds.
func String() string {
	if CommitSHA == "unknown" && BuildDate == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}

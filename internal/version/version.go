package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/viur/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/viur/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/viur/internal/version.Date={{.Date}}
)

// String returns the one-line build description
func String() string {
	return fmt.Sprintf("viur %s (commit %s, built %s)", Version, Commit, Date)
}

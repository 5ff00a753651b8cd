package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/semtparser/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/semtparser/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/semtparser/internal/version.Date={{.Date}}
)

// Info returns the multi-line version banner.
func Info() string {
	return fmt.Sprintf("semtparser version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}

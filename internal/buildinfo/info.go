// Package buildinfo holds the release identifiers printed by
// `clientbook --version`. Release builds set them with
//
//	go build -ldflags "-X github.com/clientbook/clientbook/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/clientbook/clientbook/internal/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/clientbook/clientbook/internal/buildinfo.Date=$(date -u +%F)" ./cmd/clientbook
package buildinfo

import "fmt"

var (
	// Version is the release tag; "dev" for local builds.
	Version = "dev"
	// Commit is the short git hash the binary was built from.
	Commit = "none"
	// Date is the UTC build date, YYYY-MM-DD.
	Date = "unknown"
)

// String formats the build information for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

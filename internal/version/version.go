// Package version holds build metadata injected with ldflags:
//
//	-X github.com/noisebox/artforge/internal/version.Version=x.y.z
//	-X github.com/noisebox/artforge/internal/version.Commit=<sha>
//	-X github.com/noisebox/artforge/internal/version.Date=<rfc3339>
package version

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the line printed by "artforge version".
func String() string {
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if len(Commit) >= 8 && Date != "unknown" {
		return fmt.Sprintf("artforge version %s (commit: %s, built: %s, %s, %s)",
			Version, Commit[:8], Date, runtime.Version(), platform)
	}
	return fmt.Sprintf("artforge version %s (%s, %s)", Version, runtime.Version(), platform)
}

// Short returns the bare version.
func Short() string {
	return Version
}

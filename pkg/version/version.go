// Package version exposes build metadata set with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/rshade/albedo/pkg/version.version=v1.2.0"
package version

import "fmt"

//nolint:gochecknoglobals // Set at link time.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetCommit returns the source commit of the build.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate)
}

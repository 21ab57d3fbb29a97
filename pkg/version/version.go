// Package version exposes build metadata injected with -ldflags.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/vtable/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // ldflags targets must be package variables.
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}

// String formats the full build information for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

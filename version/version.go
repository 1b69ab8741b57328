// Package version exposes build metadata injected at link time.
package version

import "runtime"

// These are set via -ldflags at build time, e.g.:
//
//	-X github.com/ujwalkandi/docweb/version.GitRelease=v0.2.0
var (
	// GitRelease is the release tag the binary was built from.
	GitRelease = "dev"
	// GitCommit is the git commit hash.
	GitCommit = "unknown"
	// GitCommitDate is the commit timestamp.
	GitCommitDate = "unknown"
	// GoInfo is the Go toolchain version used for the build.
	GoInfo = runtime.Version()
)

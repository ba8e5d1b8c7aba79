// Package version exposes build information stamped at link time.
package version

// Set via -ldflags at build time; defaults identify a local dev build.
var (
	// Version is the semantic version, e.g. v1.2.0.
	Version = "dev"

	// BuildTime is when the binary was built.
	BuildTime = "unknown"

	// GitCommit is the short git commit hash.
	GitCommit = "unknown"
)

// Info returns the build information for the version endpoint.
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}
}

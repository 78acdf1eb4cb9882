// Package version holds build metadata injected with -ldflags.
package version

//nolint:gochecknoglobals // Set at build time via -ldflags "-X".
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns the version line printed by --version.
func String() string {
	return version + " (commit " + gitCommit + ", built " + buildDate + ")"
}

// Package version records the release identity of this library. It is the
// single place tooling and instrumentation read the version from.
package version

import "runtime/debug"

// Version is the semantic version of the library.
const Version = "0.4.0"

// UserAgent returns the identification string tools built on this library
// present to external services.
func UserAgent() string {
	return "issueql/" + Version
}

// Revision returns the VCS revision the binary was built from, or an empty
// string when build info is unavailable (e.g. in tests).
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}

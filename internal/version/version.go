package version

import "runtime/debug"

// Build-time parameters set via -ldflags
var Version = "unknown"

// A user may install infdir using `go install github.com/inference-directory/infdir@latest`
// without -ldflags, in which case the version above is unset. As a fallback
// we use the module version contained in the binary.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		// < go v1.18
		return
	}
	mainVersion := info.Main.Version
	if mainVersion == "" || mainVersion == "(devel)" {
		// bin not built using `go install`
		return
	}
	// bin built using `go install`
	Version = mainVersion
}

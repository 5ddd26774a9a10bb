// Package version reports which build of clean-deps is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags, e.g.
// go build -ldflags="-X github.com/davidMuir/clean-deps/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// resolve fills values left at their defaults from the module build info,
// which is present for `go install` builds.
func resolve() (version, commit, built string) {
	version, commit, built = Version, Commit, BuildDate

	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" {
				commit = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return
}

// Short returns the version string (e.g., "v1.2.3" or "dev").
func Short() string {
	v, _, _ := resolve()
	return v
}

// Info returns a single-line version string, e.g.
// "clean-deps v1.2.3 (commit: abc1234, built: 2024-01-15T10:30:00Z, go: go1.24.1)"
func Info() string {
	v, commit, built := resolve()
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("clean-deps %s (commit: %s, built: %s, go: %s)",
		v, commit, built, runtime.Version())
}

// Full returns a multi-line verbose version output.
func Full() string {
	v, commit, built := resolve()
	return fmt.Sprintf(`clean-deps %s
  Commit:     %s
  Built:      %s
  Go version: %s
  OS/Arch:    %s/%s`,
		v, commit, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Package version reports what build of lexi is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	-X github.com/rnwolfe/lexi/internal/version.Version=v0.3.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full returns version, commit, build date and Go toolchain.
func Full() string {
	return fmt.Sprintf("%s (%s) %s %s", Version, Commit, Date, runtime.Version())
}

// Short returns only the version.
func Short() string {
	return Version
}

// init fills in whatever ldflags left at its default from the module build
// info, so `go install` builds still report something useful.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	backfill(info)
}

func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	// Untagged builds report "(devel)".
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Value == "" {
			continue
		}
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value[:min(7, len(s.Value))]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

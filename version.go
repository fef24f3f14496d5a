package dawmark

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the dawmark library.
const Version = "0.4.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string
	GitCommit string // from -ldflags, else the module's vcs.revision
	BuildTime string
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime can be set at build time:
//
//	go build -ldflags="-X github.com/simonhull/dawmark.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/dawmark.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Without ldflags the commit is read from the embedded build info when the
// binary was built inside a VCS checkout.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
	if info.GitCommit != "unknown" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.GitCommit = s.Value
			case "vcs.time":
				if info.BuildTime == "unknown" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	return info
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)

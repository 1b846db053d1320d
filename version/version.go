// Package version provides build version information.
//
// Version and git commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/medbotlabs/medscribe/version.Version=1.0.0"
package version

import "runtime/debug"

var (
	// Version is the release version, set at build time.
	Version = "dev"
	// GitCommit is the short VCS revision, set at build time or read from
	// build info.
	GitCommit = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// Get returns the build's version information, filling gaps from the
// embedded build info when ldflags were not set.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.GitCommit == "" {
			for _, setting := range bi.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
					if len(info.GitCommit) > 7 {
						info.GitCommit = info.GitCommit[:7]
					}
					break
				}
			}
		}
	}
	return info
}

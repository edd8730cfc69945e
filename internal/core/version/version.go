// Package version exposes build identity for the meta endpoint and logs
package version

import "runtime/debug"

// Set at build time via -ldflags "-X scrutiny/internal/core/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

// Info is the wire shape served by meta/version
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build identity
func Get() Info {
	info := Info{Version: Version, Commit: Commit}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if Commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.Commit = s.Value
					break
				}
			}
		}
	}
	return info
}

// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the build information. version, commit and date are set at build time:
// -ldflags "-X 'scanweb/internal/core/version.version=v0.1.0' -X 'scanweb/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	bi := BuildInfo{
		Service: "scanweb",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := readBuildInfo(); ok && info != nil {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					bi.Commit = s.Value
				}
			}
		}
	}
	return bi
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	readBuildInfo = debug.ReadBuildInfo
)

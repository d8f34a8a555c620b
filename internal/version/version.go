// Package version provides version information for the legacyui CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// cueModule is the CUE SDK module path used for metadata validation.
const cueModule = "cuelang.org/go"

// fallbackCUESDKVersion is reported when build info is unavailable, as in tests.
const fallbackCUESDKVersion = "v0.15.4"

// Info contains version information.
type Info struct {
	Version       string `json:"version" yaml:"version"`
	GitCommit     string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate     string `json:"buildDate" yaml:"buildDate"`
	GoVersion     string `json:"goVersion" yaml:"goVersion"`
	CUESDKVersion string `json:"cueSDKVersion" yaml:"cueSDKVersion"`
	Platform      string `json:"platform" yaml:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: cueSDKVersion(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("legacyui:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s (%s)\n\nCUE:\n  SDK Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.Platform, i.CUESDKVersion)
}

func cueSDKVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return fallbackCUESDKVersion
	}
	for _, dep := range bi.Deps {
		if dep.Path == cueModule {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return fallbackCUESDKVersion
}

package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X".
var (
	GitVersion = "v0.0.0"
	GitCommit  = "unknown"
	BuildTime  = "unknown"
	GoVersion  = runtime.Version()
)

func Version() string {
	return fmt.Sprintf("GitVersion: %s\nGitCommit: %s\nBuildTime: %s\nGoVersion: %s\nPlatform: %s/%s",
		GitVersion, GitCommit, BuildTime, GoVersion, runtime.GOOS, runtime.GOARCH)
}

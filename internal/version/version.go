// Package version holds build metadata injected through ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/sitegen/internal/version.Version=v1.0.0"
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the release of the binary.
var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version. When ldflags were not
// used the module version from the embedded build info is used instead.
func String() string {
	v := Version
	if v == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("sitegen %s (commit %s, built %s)", v, GitCommit, BuildTime)
}

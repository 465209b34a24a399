package version

import "fmt"

// Version is the docsite release, set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/docsite/internal/version.Version=v0.3.0".
var Version = "dev"

// GitCommit is the source revision the binary was built from.
var GitCommit = "unknown"

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("docsite %s (%s)", Version, GitCommit)
}

// Package version holds build metadata injected at link time.
package version

// These are set via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/mj1618/screenpilot/internal/version.Version=v0.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/repolens/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/repolens/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/repolens/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the --version template for cobra.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// UserAgent identifies repolens to upstream APIs.
func UserAgent() string {
	return "repolens/" + Version
}

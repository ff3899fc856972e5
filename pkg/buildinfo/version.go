// Package buildinfo carries version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/wordsphere/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/wordsphere/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/wordsphere/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent is sent with outgoing article fetches and analysis requests.
func UserAgent() string {
	return "wordsphere/" + Version
}

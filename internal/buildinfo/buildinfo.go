// Package buildinfo carries the version stamped by the linker:
//
//	go build -ldflags "-X geoglobe/internal/buildinfo.Version=v1.2.0 -X geoglobe/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, falling back to the commit and then "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Title decorates a window title with the short build id.
func Title(base string) string {
	return fmt.Sprintf("%s (%s)", base, Short())
}

// Attrs returns the build id as slog key/value pairs.
func Attrs() []any {
	return []any{"version", Version, "commit", Commit, "built", Date}
}

// Package version carries the build metadata reported by the version
// endpoint.
package version

// Release builds inject these through -ldflags; a plain `go build` keeps
// the dev placeholders.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

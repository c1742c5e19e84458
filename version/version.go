// version.go

// Package version identifies the explorer to Graph in the User-Agent header.
package version

// AppName is the product token sent in the User-Agent header.
const AppName = "go-graph-explorer"

// Version is overridden at build time with -ldflags "-X github.com/deploymenttheory/go-graph-explorer/version.Version=...".
var Version = "0.1.0"

// UserAgent returns the User-Agent value sent with every Graph request.
func UserAgent() string {
	return AppName + "/" + Version
}

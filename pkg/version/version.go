package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var Version string

// Get returns the current version of the application
func Get() string {
	return strings.TrimSpace(Version)
}

// Full returns the version together with the Go runtime it was built with,
// as printed by the `version` command.
func Full(app string) string {
	return fmt.Sprintf("%s %s (%s %s/%s)", app, Get(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

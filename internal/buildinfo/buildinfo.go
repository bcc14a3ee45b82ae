// Package buildinfo contains build-time metadata separate from user
// configuration.
package buildinfo

import "fmt"

// Version holds the Git version tag, injected at build time via ldflags.
var Version = "dev"

// BuildDate is the time the binary was built, injected via ldflags.
var BuildDate = "unknown"

// String returns a human-readable version line.
func String() string {
	return fmt.Sprintf("%s (built %s)", Version, BuildDate)
}

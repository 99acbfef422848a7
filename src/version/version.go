/*
Package version provides version information and utilities.
*/
package version

import (
	"fmt"
	"io"
	"runtime"
)

// Version stores the current version of following. It is set during building.
var Version = "dev-unreleased"

// Print writes a plain text version information in out.
func Print(out io.Writer) {
	fmt.Fprintf(out, "following %s\n", Version)
	fmt.Fprintf(out, "Build with %s\n", runtime.Version())
}

// UserAgent returns the user agent used when contacting remote services.
func UserAgent() string {
	return fmt.Sprintf(
		"following/%s ( https://github.com/ironsmile/following )",
		Version,
	)
}

//go:build tools

// This file imports packages that are used when running go generate, or used
// during the development process but not otherwise depended on by built code.
package tools

import (
	// Packages are imported anonymously so that they could be considered "used"
	// by `go mod`.
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)

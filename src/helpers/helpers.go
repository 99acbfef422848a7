// Package helpers contains few helper functions which are used throughout the
// project.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProjectUserPath returns the directory in which the user's configuration and
// library database are stored. It is not guaranteed that it exists.
func ProjectUserPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding the home directory: %w", err)
	}

	return filepath.Join(home, UserDir), nil
}

// AbsolutePath returns path as an absolute path. Relative paths are considered
// relative to root. Paths starting with "~/" are relative to the user's home
// directory.
func AbsolutePath(path, root string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

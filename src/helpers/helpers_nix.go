//go:build !windows

/*
   Helpers for all non-windows machines
*/

package helpers

// UserDir is the name of the directory in the user's home directory where the
// configuration is stored.
const UserDir = ".following"

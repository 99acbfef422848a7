package library

import "errors"

// ErrUnknownField is returned for queries which use a field the library does not
// know about.
var ErrUnknownField = errors.New("unknown query field")

// ErrBadQuery is returned for queries which could not be parsed.
var ErrBadQuery = errors.New("malformed query")

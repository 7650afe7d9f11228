package repl

import "errors"

// ErrOutOfBounds is returned for a history index outside the entries.
var ErrOutOfBounds = errors.New("index out of range")

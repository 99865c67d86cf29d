package resolve

import "errors"

// ErrInvalidPattern is returned by New when a glob pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid glob pattern")

package registry

import "errors"

// ErrRegistry marks a missing or structurally invalid athlete feed. It is
// fatal: nothing can be scored without the roster.
var ErrRegistry = errors.New("athlete registry unavailable")

package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrMalformedResults marks persisted or imported result data that is
	// structurally broken. Loading fails rather than returning a partial result.
	ErrMalformedResults = errors.New("malformed results")

	// ErrMalformedPicks marks an import payload that is not a pick document.
	// Loads never return it; they fall back to an empty structure.
	ErrMalformedPicks = errors.New("malformed picks")
)

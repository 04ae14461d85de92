package service

import "errors"

// Sentinel errors returned by Service operations.
var (
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrUnknownPlayer marks a player outside the configured roster.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrUnknownAthlete marks an athlete id outside the registry.
	ErrUnknownAthlete = errors.New("unknown athlete")

	// ErrForbidden is returned when the admin secret does not match.
	ErrForbidden = errors.New("forbidden")
)

// Package scoring computes points for predictions and aggregates them into a
// ranked scoreboard.
package scoring

import "github.com/okian/medaltips/internal/domain/medal"

// Points awarded per athlete.
const (
	ExactPoints   = 5 // pick equals the awarded medal
	PartialPoints = 2 // a medal was predicted and awarded, but a different one
)

// Score returns the points a pick earns against the actual outcome.
//
// The order of checks matters: an athlete without an outcome scores nothing
// regardless of the pick.
func Score(pick, actual medal.Medal) int {
	switch {
	case actual == medal.None:
		return 0
	case pick == actual:
		return ExactPoints
	case pick != medal.None:
		return PartialPoints
	default:
		return 0
	}
}

// Outcome classifies a (pick, actual) pair.
type Outcome int

// Pair classifications.
const (
	Unscored Outcome = iota // no outcome yet, or no pick for an awarded medal
	Exact
	Partial
)

// Classify reports how a pick relates to the actual outcome.
func Classify(pick, actual medal.Medal) Outcome {
	switch {
	case actual == medal.None:
		return Unscored
	case pick == actual:
		return Exact
	case pick != medal.None:
		return Partial
	default:
		return Unscored
	}
}

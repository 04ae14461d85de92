// Package types contains the read shapes exposed to the presentation layer.
package types

import (
	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/scoring"
)

// ScoreboardEntry is one ranked scoreboard row.
type ScoreboardEntry struct {
	Rank         int    `json:"rank"`
	Player       string `json:"player"`
	TotalPoints  int    `json:"total_points"`
	ExactCount   int    `json:"exact_count"`
	PartialCount int    `json:"partial_count"`
}

// AthleteRow describes a roster athlete.
type AthleteRow struct {
	AthleteID string `json:"athlete_id"`
	Name      string `json:"name"`
	Sport     string `json:"sport"`
}

// MedalRow joins an athlete with a medal, either an official result or a
// player's pick.
type MedalRow struct {
	AthleteRow
	Medal medal.Medal `json:"medal"`
}

// FromScoreboard converts scoring rows to their read shape.
func FromScoreboard(entries []scoring.Entry) []ScoreboardEntry {
	out := make([]ScoreboardEntry, len(entries))
	for i, e := range entries {
		out[i] = ScoreboardEntry{
			Rank:         e.Rank,
			Player:       e.Player,
			TotalPoints:  e.TotalPoints,
			ExactCount:   e.ExactCount,
			PartialCount: e.PartialCount,
		}
	}
	return out
}

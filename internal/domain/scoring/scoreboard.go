package scoring

import (
	"sort"

	"github.com/okian/medaltips/internal/domain/model"
)

// AthleteIDs supplies the closed set of athletes to score. *model.Registry
// satisfies it.
type AthleteIDs interface {
	IDs() []string
}

// Entry is one scoreboard row. It is derived and never persisted.
type Entry struct {
	Rank         int
	Player       string
	TotalPoints  int
	ExactCount   int
	PartialCount int
}

// BuildScoreboard scores every player against every registry athlete and
// returns the rows ranked best first.
//
// Ordering: total points desc, exact count desc, then roster position. Equal
// totals with equal exact counts imply equal partial counts, so those rows
// are fully tied and share a rank.
func BuildScoreboard(players []string, athletes AthleteIDs, result model.Result, picks model.Picks) []Entry {
	ids := athletes.IDs()
	entries := make([]Entry, 0, len(players))
	for _, player := range players {
		e := Entry{Player: player}
		for _, id := range ids {
			pick := picks.Pick(player, id)
			actual := result.Medal(id)
			e.TotalPoints += Score(pick, actual)
			switch Classify(pick, actual) {
			case Exact:
				e.ExactCount++
			case Partial:
				e.PartialCount++
			}
		}
		entries = append(entries, e)
	}

	sortEntries(entries)
	assignRanksWithTies(entries)
	return entries
}

// sortEntries orders rows best first. The sort is stable so players that tie
// on every count keep their roster order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		return a.ExactCount > b.ExactCount
	})
}

func sameLine(a, b Entry) bool {
	return a.TotalPoints == b.TotalPoints && a.ExactCount == b.ExactCount
}

// assignRanksWithTies gives tied rows the same rank; the next distinct row
// takes the following rank (1, 1, 2).
func assignRanksWithTies(entries []Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || !sameLine(entries[i-1], entries[i]) {
			rank++
		}
		entries[i].Rank = rank
	}
}

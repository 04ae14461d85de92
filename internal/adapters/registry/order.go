package registry

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/medaltips/internal/domain/model"
)

// SortAthletes orders athletes by sport, then name, then id, comparing text
// with the collation rules of tag (so "Ö" sorts after "Z" in Swedish). The
// input slice is sorted in place and returned.
func SortAthletes(athletes []model.Athlete, tag language.Tag) []model.Athlete {
	c := collate.New(tag)
	sort.SliceStable(athletes, func(i, j int) bool {
		a, b := athletes[i], athletes[j]
		if r := c.CompareString(a.Sport, b.Sport); r != 0 {
			return r < 0
		}
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r < 0
		}
		return a.ID < b.ID
	})
	return athletes
}

// Sports returns the distinct sports of reg in collation order.
func Sports(reg *model.Registry, tag language.Tag) []string {
	seen := make(map[string]struct{})
	sports := []string{}
	for _, a := range reg.Athletes() {
		if _, ok := seen[a.Sport]; ok {
			continue
		}
		seen[a.Sport] = struct{}{}
		sports = append(sports, a.Sport)
	}
	c := collate.New(tag)
	c.SortStrings(sports)
	return sports
}

// BySport returns the athletes of one sport in collation order.
func BySport(reg *model.Registry, sport string, tag language.Tag) []model.Athlete {
	var out []model.Athlete
	for _, a := range reg.Athletes() {
		if a.Sport == sport {
			out = append(out, a)
		}
	}
	return SortAthletes(out, tag)
}

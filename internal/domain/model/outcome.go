package model

import "github.com/okian/medaltips/internal/domain/medal"

// Result maps athlete id to the official medal outcome. After a store load it
// holds exactly one entry per registry athlete.
type Result map[string]medal.Medal

// NewResult returns an all-None result covering every athlete in reg.
func NewResult(reg *Registry) Result {
	r := make(Result, reg.Len())
	for _, id := range reg.IDs() {
		r[id] = medal.None
	}
	return r
}

// Medal returns the outcome for id, None when absent.
func (r Result) Medal(id string) medal.Medal {
	return r[id]
}

// Awarded counts entries holding a medal.
func (r Result) Awarded() int {
	n := 0
	for _, m := range r {
		if !m.IsNone() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for id, m := range r {
		out[id] = m
	}
	return out
}

// Picks maps player -> athlete id -> predicted medal. It is sparse: a missing
// entry scores like None.
type Picks map[string]map[string]medal.Medal

// Pick returns the player's prediction for id, None when absent.
func (p Picks) Pick(player, id string) medal.Medal {
	return p[player][id]
}

// Set records a prediction, creating the player's map on demand.
func (p Picks) Set(player, id string, m medal.Medal) {
	byAthlete, ok := p[player]
	if !ok {
		byAthlete = make(map[string]medal.Medal)
		p[player] = byAthlete
	}
	byAthlete[id] = m
}

// Delete removes a prediction and reports whether one existed.
func (p Picks) Delete(player, id string) bool {
	byAthlete, ok := p[player]
	if !ok {
		return false
	}
	if _, ok := byAthlete[id]; !ok {
		return false
	}
	delete(byAthlete, id)
	return true
}

// Count returns the total number of stored predictions.
func (p Picks) Count() int {
	n := 0
	for _, byAthlete := range p {
		n += len(byAthlete)
	}
	return n
}

// Clone returns a deep copy.
func (p Picks) Clone() Picks {
	out := make(Picks, len(p))
	for player, byAthlete := range p {
		cp := make(map[string]medal.Medal, len(byAthlete))
		for id, m := range byAthlete {
			cp[id] = m
		}
		out[player] = cp
	}
	return out
}

// Package model contains domain models passed between layers.
package model

// Athlete is one entry of the read-only athlete roster.
type Athlete struct {
	ID    string // unique roster key
	Name  string
	Sport string
}

// Registry is the closed, ordered set of athletes the pool scores against.
// It is immutable once built.
type Registry struct {
	athletes []Athlete
	index    map[string]int
}

// NewRegistry builds a registry preserving the given order. Later athletes
// whose id was already seen are skipped and their ids returned.
func NewRegistry(athletes []Athlete) (*Registry, []string) {
	r := &Registry{
		athletes: make([]Athlete, 0, len(athletes)),
		index:    make(map[string]int, len(athletes)),
	}
	var dups []string
	for _, a := range athletes {
		if _, ok := r.index[a.ID]; ok {
			dups = append(dups, a.ID)
			continue
		}
		r.index[a.ID] = len(r.athletes)
		r.athletes = append(r.athletes, a)
	}
	return r, dups
}

// Len returns the number of athletes.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.athletes)
}

// Athletes returns a copy of the roster in feed order.
func (r *Registry) Athletes() []Athlete {
	if r == nil {
		return nil
	}
	out := make([]Athlete, len(r.athletes))
	copy(out, r.athletes)
	return out
}

// IDs returns athlete ids in feed order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, len(r.athletes))
	for i, a := range r.athletes {
		ids[i] = a.ID
	}
	return ids
}

// Get looks up an athlete by id.
func (r *Registry) Get(id string) (Athlete, bool) {
	if r == nil {
		return Athlete{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return Athlete{}, false
	}
	return r.athletes[i], true
}

// Contains reports whether id belongs to the roster.
func (r *Registry) Contains(id string) bool {
	_, ok := r.Get(id)
	return ok
}

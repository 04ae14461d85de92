// Package medal defines the closed set of medal outcomes a pick or a result
// can hold.
package medal

import (
	"encoding/json"
)

// Medal is a medal outcome. The zero value is None.
//
// Values are ordered for display only; scoring compares them for equality.
type Medal uint8

// Known medals, lowest first.
const (
	None Medal = iota
	Bronze
	Silver
	Gold
)

var names = [...]string{
	None:   "None",
	Bronze: "Bronze",
	Silver: "Silver",
	Gold:   "Gold",
}

// All returns every medal in display order, None first.
func All() []Medal {
	return []Medal{None, Bronze, Silver, Gold}
}

// Parse converts the persisted textual form to a Medal. Unknown text yields
// None and ok=false; it never fails.
func Parse(s string) (m Medal, ok bool) {
	for i, n := range names {
		if n == s {
			return Medal(i), true
		}
	}
	return None, false
}

// Valid reports whether s is one of the known textual forms.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// String returns the persisted textual form.
func (m Medal) String() string {
	if int(m) < len(names) {
		return names[m]
	}
	return names[None]
}

// IsNone reports whether m carries no outcome.
func (m Medal) IsNone() bool { return m == None }

// MarshalText implements encoding.TextMarshaler.
func (m Medal) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown text becomes None.
func (m *Medal) UnmarshalText(b []byte) error {
	*m, _ = Parse(string(b))
	return nil
}

// UnmarshalJSON accepts any JSON value. Strings are parsed with Parse, every
// other value (numbers, null, objects) becomes None.
func (m *Medal) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*m = None
		return nil
	}
	*m, _ = Parse(s)
	return nil
}

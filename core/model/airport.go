package model

// Airport holds the curfews declared for it.
type Airport struct {
	ID      string   `json:"id"`
	Curfews []Window `json:"curfews"`
}

// Closed reports whether t falls inside any curfew.
func (a Airport) Closed(t Minute) bool {
	for _, c := range a.Curfews {
		if c.Contains(t) {
			return true
		}
	}
	return false
}

package report

import "sort"

// Selection is the set of class row ids included in an aggregation. A nil
// Selection is empty.
type Selection map[string]struct{}

// NewSelection builds a selection from ids.
func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add selects id.
func (s Selection) Add(id string) { s[id] = struct{}{} }

// Remove deselects id.
func (s Selection) Remove(id string) { delete(s, id) }

// Toggle flips id and reports whether it is now selected.
func (s Selection) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Len returns the number of selected ids.
func (s Selection) Len() int { return len(s) }

// IDs returns the selected ids sorted.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

package extract

import "github.com/htran/syllabuscal/internal/model"

// dedupSet suppresses duplicate candidates within a single extraction call.
// Identity is the (date, lower-cased title) pair; nothing is tracked across
// calls, so repeating the same input later legitimately stores a second
// copy.
type dedupSet map[string]struct{}

// add records the deadline's identity and reports whether it was new.
func (s dedupSet) add(d model.Deadline) bool {
	key := d.Key()
	if _, seen := s[key]; seen {
		return false
	}
	s[key] = struct{}{}
	return true
}

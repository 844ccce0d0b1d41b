package domain

import "strings"

// MatchTerm returns the records where term is a case-insensitive substring of
// the name, city, venue, or country field. Unset fields never match. The term
// must be non-empty after trimming; a blank term is a caller error and returns
// ErrEmptyQuery rather than matching everything.
func MatchTerm(events []Event, term string) ([]Event, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, ErrEmptyQuery
	}

	var matched []Event
	for _, ev := range events {
		if containsFold(ev.Name, term) ||
			containsFold(ev.City, term) ||
			containsFold(ev.Venue, term) ||
			containsFold(ev.Country, term) {
			matched = append(matched, ev)
		}
	}
	return matched, nil
}

// containsFold reports whether s contains the already-lowercased term.
func containsFold(s, lowerTerm string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

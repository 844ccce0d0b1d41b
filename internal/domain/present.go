package domain

import "time"

// Group is the presentation unit handed to rendering: one event name, every
// upcoming occurrence under it, and the soonest of them. Next is always a
// real entry; groups that would have none are dropped before they are built.
type Group struct {
	Event   Event
	Entries []Occurrence
	Next    Occurrence
}

// GroupUpcoming collapses occurrences into groups keyed by event name.
// Groups appear in first-seen order of their name, and entries keep the
// order they arrived in. A group's Next is its earliest occurrence dated on
// or after now; a group with no such occurrence is omitted entirely.
func GroupUpcoming(occs []Occurrence, now time.Time) []Group {
	byName := make(map[string][]Occurrence)
	var order []string
	for _, occ := range occs {
		name := occ.Event.Name
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], occ)
	}

	groups := make([]Group, 0, len(order))
	for _, name := range order {
		entries := byName[name]
		next, ok := earliestUpcoming(entries, now)
		if !ok {
			continue
		}
		groups = append(groups, Group{
			Event:   entries[0].Event,
			Entries: entries,
			Next:    next,
		})
	}
	return groups
}

// earliestUpcoming finds the entry with the minimum date on or after now.
// Ties keep the first-seen entry.
func earliestUpcoming(entries []Occurrence, now time.Time) (Occurrence, bool) {
	var best Occurrence
	found := false
	for _, e := range entries {
		if !onOrAfter(e.Date, now) {
			continue
		}
		if !found || e.Date.Before(best.Date) {
			best = e
			found = true
		}
	}
	return best, found
}

// Package domain models UK folk-dance event listings and nearby search.
//
// # Event records
//
// Events are curated by hand in YAML files (one file per organiser, under
// events/uk/). Every record carries a venue coordinate pair and exactly one
// of three schedule shapes:
//
//	single:    date + startTime + endTime        one dance evening
//	range:     start_date + end_date             festival / residential week,
//	                                             no per-day clock times
//	recurring: recurringEvents: [{date, startTime, endTime, bands?, callers?}]
//	           a series, each entry optionally naming its own band and caller
//
// Dates are ISO "2006-01-02" strings in the files and date-only values here:
// midnight UTC, compared by calendar day. Clock times ("19:30") are kept as
// opaque strings for display; nothing sorts or compares them.
//
// # Occurrences
//
// [UpcomingOccurrences] flattens records into concrete future occurrences
// against an injected reference time. A recurring record contributes one
// occurrence per future entry, inheriting the parent's bands/callers unless
// the entry names its own. A range record contributes a single "ongoing"
// occurrence while its end date has not passed, even if it already started.
// Occurrences are derived fresh per search and never stored.
//
// # Search
//
// [MatchTerm] is the fast path: case-insensitive substring match over
// name/city/venue/country. When it finds nothing the caller geocodes the
// query (see [Geocoder]) and falls back to [Nearby]: great-circle distance
// from the geocoded point, a 100 km primary radius, and the three closest
// occurrences when the radius is empty. [GroupUpcoming] then collapses
// repeated event names into ordered groups, each surfacing its next
// upcoming entry.
package domain

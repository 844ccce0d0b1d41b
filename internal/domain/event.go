package domain

import "time"

// DateFormat is the ISO date layout used throughout the event files.
const DateFormat = "2006-01-02"

// ScheduleKind discriminates the three schedule shapes an event record may
// carry. It is assigned once when a record is loaded and validated, never
// re-inferred from which fields happen to be set.
type ScheduleKind int

const (
	// ScheduleNone marks a record whose schedule could not be classified.
	// Such records produce no occurrences but are not an error.
	ScheduleNone ScheduleKind = iota
	ScheduleSingle
	ScheduleRange
	ScheduleRecurring
)

func (k ScheduleKind) String() string {
	switch k {
	case ScheduleSingle:
		return "single"
	case ScheduleRange:
		return "range"
	case ScheduleRecurring:
		return "recurring"
	default:
		return "none"
	}
}

// ScheduleEntry is one dated instance inside a recurring schedule.
// Bands and Callers, when set, override the parent record's for that date.
type ScheduleEntry struct {
	Date      time.Time
	StartTime string
	EndTime   string
	Bands     []string
	Callers   []string
}

// Schedule is the discriminated schedule of an event record. Exactly the
// fields implied by Kind are meaningful.
type Schedule struct {
	Kind ScheduleKind

	// Single.
	Date      time.Time
	StartTime string
	EndTime   string

	// Range.
	StartDate time.Time
	EndDate   time.Time

	// Recurring, in file order.
	Entries []ScheduleEntry
}

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is one immutable record from the event files. Name doubles as the
// grouping key for presentation: series list the same name with many dates,
// and the listing shows each name once.
type Event struct {
	Name string `json:"name"`

	City    string     `json:"city,omitempty"`
	Country string     `json:"country,omitempty"`
	Venue   string     `json:"venue,omitempty"`
	Address string     `json:"address,omitempty"`
	Coord   Coordinate `json:"coord"`

	Schedule Schedule `json:"-"`

	Bands           []string `json:"bands,omitempty"`
	Callers         []string `json:"callers,omitempty"`
	Styles          []string `json:"styles,omitempty"`
	Links           []string `json:"links,omitempty"`
	Price           string   `json:"price,omitempty"`
	Organisation    string   `json:"organisation,omitempty"`
	Workshop        bool     `json:"workshop,omitempty"`
	Social          bool     `json:"social,omitempty"`
	AccessibleVenue bool     `json:"accessible_venue,omitempty"`
	Calling         string   `json:"calling,omitempty"`
	Details         string   `json:"details,omitempty"`
	Contact         string   `json:"contact,omitempty"`
	Source          string   `json:"-"`
}

// Occurrence is one concrete future instance of an event, derived from its
// schedule by [UpcomingOccurrences]. It copies the parent record and flattens
// the schedule to a single date. Occurrences live for one search cycle.
type Occurrence struct {
	Event Event

	// Date is the occurrence's effective calendar day: the entry date for
	// single and recurring shapes. For an ongoing range event it is the
	// start date, clamped forward to the reference day once the event has
	// started, so an in-progress festival still counts as upcoming.
	Date      time.Time
	StartTime string
	EndTime   string

	// Ongoing is set for range-shaped events, which have no per-day clock
	// times; StartDate/EndDate carry the span and StartTime/EndTime are empty.
	Ongoing   bool
	StartDate time.Time
	EndDate   time.Time

	// Bands and Callers are the effective line-up for this date: the
	// recurring entry's own, or the parent record's when the entry has none.
	Bands   []string
	Callers []string
}

// dateOnly truncates t to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// onOrAfter reports whether day a falls on or after day b (date-only compare).
func onOrAfter(a, b time.Time) bool {
	return !dateOnly(a).Before(dateOnly(b))
}

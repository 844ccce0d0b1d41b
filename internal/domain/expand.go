package domain

import "time"

// UpcomingOccurrences flattens event records into concrete occurrences whose
// effective date falls on or after now's calendar day. Time of day never
// decides "future": an event later today is upcoming until midnight.
//
// Output order follows input record order; within a recurring record, entries
// keep their file order (they are not re-sorted). Records with ScheduleNone
// contribute nothing. The function is pure: it reads the records and now, and
// mutates neither.
func UpcomingOccurrences(events []Event, now time.Time) []Occurrence {
	occs := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		occs = append(occs, expandEvent(ev, now)...)
	}
	return occs
}

func expandEvent(ev Event, now time.Time) []Occurrence {
	switch ev.Schedule.Kind {
	case ScheduleSingle:
		if !onOrAfter(ev.Schedule.Date, now) {
			return nil
		}
		return []Occurrence{{
			Event:     ev,
			Date:      dateOnly(ev.Schedule.Date),
			StartTime: ev.Schedule.StartTime,
			EndTime:   ev.Schedule.EndTime,
			Bands:     ev.Bands,
			Callers:   ev.Callers,
		}}

	case ScheduleRange:
		if !onOrAfter(ev.Schedule.EndDate, now) {
			return nil
		}
		// Ongoing events have already started; report them as happening
		// "today" rather than on a past start date.
		date := dateOnly(ev.Schedule.StartDate)
		if date.Before(dateOnly(now)) {
			date = dateOnly(now)
		}
		return []Occurrence{{
			Event:     ev,
			Date:      date,
			Ongoing:   true,
			StartDate: dateOnly(ev.Schedule.StartDate),
			EndDate:   dateOnly(ev.Schedule.EndDate),
			Bands:     ev.Bands,
			Callers:   ev.Callers,
		}}

	case ScheduleRecurring:
		var out []Occurrence
		for _, entry := range ev.Schedule.Entries {
			if !onOrAfter(entry.Date, now) {
				continue
			}
			occ := Occurrence{
				Event:     ev,
				Date:      dateOnly(entry.Date),
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
				Bands:     ev.Bands,
				Callers:   ev.Callers,
			}
			if len(entry.Bands) > 0 {
				occ.Bands = entry.Bands
			}
			if len(entry.Callers) > 0 {
				occ.Callers = entry.Callers
			}
			out = append(out, occ)
		}
		return out

	default:
		return nil
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 9, 15, 18, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func singleEvent(name string, date time.Time) Event {
	return Event{
		Name:  name,
		City:  "Sheffield",
		Coord: Coordinate{Lat: 53.40129, Lon: -1.49974},
		Schedule: Schedule{
			Kind:      ScheduleSingle,
			Date:      date,
			StartTime: "19:30",
			EndTime:   "22:30",
		},
	}
}

func TestUpcomingOccurrences_Single(t *testing.T) {
	t.Run("future date emits one occurrence", func(t *testing.T) {
		occs := UpcomingOccurrences([]Event{singleEvent("Sheffield Scratch Contra", day(2024, 10, 5))}, testNow)

		require.Len(t, occs, 1)
		assert.Equal(t, day(2024, 10, 5), occs[0].Date)
		assert.Equal(t, "19:30", occs[0].StartTime)
		assert.Equal(t, "22:30", occs[0].EndTime)
		assert.False(t, occs[0].Ongoing)
	})

	t.Run("past date emits nothing", func(t *testing.T) {
		occs := UpcomingOccurrences([]Event{singleEvent("Old Dance", day(2024, 9, 14))}, testNow)
		assert.Empty(t, occs)
	})

	t.Run("same day counts as upcoming regardless of clock time", func(t *testing.T) {
		// Reference instant is 18:30; the event date matches the same calendar day.
		occs := UpcomingOccurrences([]Event{singleEvent("Tonight", day(2024, 9, 15))}, testNow)
		require.Len(t, occs, 1)
	})
}

func TestUpcomingOccurrences_Range(t *testing.T) {
	rangeEvent := func(start, end time.Time) Event {
		return Event{
			Name:  "Bromyard Folk Festival",
			Coord: Coordinate{Lat: 52.19192, Lon: -2.50618},
			Schedule: Schedule{
				Kind:      ScheduleRange,
				StartDate: start,
				EndDate:   end,
			},
		}
	}

	t.Run("future range emits one ongoing occurrence", func(t *testing.T) {
		occs := UpcomingOccurrences([]Event{rangeEvent(day(2024, 10, 1), day(2024, 10, 4))}, testNow)

		require.Len(t, occs, 1)
		assert.True(t, occs[0].Ongoing)
		assert.Empty(t, occs[0].StartTime)
		assert.Equal(t, day(2024, 10, 1), occs[0].Date)
		assert.Equal(t, day(2024, 10, 1), occs[0].StartDate)
		assert.Equal(t, day(2024, 10, 4), occs[0].EndDate)
	})

	t.Run("started but not finished clamps date to today", func(t *testing.T) {
		occs := UpcomingOccurrences([]Event{rangeEvent(day(2024, 9, 12), day(2024, 9, 18))}, testNow)

		require.Len(t, occs, 1)
		assert.Equal(t, day(2024, 9, 15), occs[0].Date)
		assert.Equal(t, day(2024, 9, 12), occs[0].StartDate)
	})

	t.Run("finished range emits nothing", func(t *testing.T) {
		occs := UpcomingOccurrences([]Event{rangeEvent(day(2024, 9, 5), day(2024, 9, 8))}, testNow)
		assert.Empty(t, occs)
	})
}

func TestUpcomingOccurrences_Recurring(t *testing.T) {
	ev := Event{
		Name:    "Contrabridge",
		City:    "Cambridge",
		Coord:   Coordinate{Lat: 52.20221, Lon: 0.12463},
		Bands:   []string{"House Band"},
		Callers: []string{"House Caller"},
		Schedule: Schedule{
			Kind: ScheduleRecurring,
			Entries: []ScheduleEntry{
				{Date: day(2024, 8, 31), StartTime: "19:30", EndTime: "23:00", Bands: []string{"Nozzy"}},
				{Date: day(2024, 9, 28), StartTime: "19:30", EndTime: "23:00", Bands: []string{"King Kontra"}, Callers: []string{"Rob Humphrey"}},
				{Date: day(2024, 11, 30), StartTime: "19:30", EndTime: "23:00"},
			},
		},
	}

	occs := UpcomingOccurrences([]Event{ev}, testNow)
	require.Len(t, occs, 2, "only future entries survive")

	t.Run("entry line-up overrides the parent's", func(t *testing.T) {
		assert.Equal(t, []string{"King Kontra"}, occs[0].Bands)
		assert.Equal(t, []string{"Rob Humphrey"}, occs[0].Callers)
	})

	t.Run("entry without a line-up inherits the parent's", func(t *testing.T) {
		assert.Equal(t, []string{"House Band"}, occs[1].Bands)
		assert.Equal(t, []string{"House Caller"}, occs[1].Callers)
	})

	t.Run("entries keep file order", func(t *testing.T) {
		assert.True(t, occs[0].Date.Before(occs[1].Date))
	})
}

func TestUpcomingOccurrences_SkipsUnclassified(t *testing.T) {
	events := []Event{
		{Name: "Broken Record", Schedule: Schedule{Kind: ScheduleNone}},
		singleEvent("Good Record", day(2024, 12, 1)),
	}

	occs := UpcomingOccurrences(events, testNow)
	require.Len(t, occs, 1)
	assert.Equal(t, "Good Record", occs[0].Event.Name)
}

func TestUpcomingOccurrences_PreservesRecordOrder(t *testing.T) {
	events := []Event{
		singleEvent("B", day(2024, 12, 1)),
		singleEvent("A", day(2024, 10, 1)),
	}

	occs := UpcomingOccurrences(events, testNow)
	require.Len(t, occs, 2)
	assert.Equal(t, "B", occs[0].Event.Name)
	assert.Equal(t, "A", occs[1].Event.Name)
}

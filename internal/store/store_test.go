package store

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravya/contradance.uk/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	s, err := Load("testdata/events", testLogger())
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())

	events := s.Events()

	t.Run("files load in sorted path order", func(t *testing.T) {
		assert.Equal(t, "Contrabridge", events[0].Name)
		assert.Equal(t, "Sheffield Scratch Contra", events[1].Name)
	})

	t.Run("recurring record", func(t *testing.T) {
		ev := events[0]
		assert.Equal(t, domain.ScheduleRecurring, ev.Schedule.Kind)
		require.Len(t, ev.Schedule.Entries, 2)
		assert.Equal(t, time.Date(2024, 9, 28, 0, 0, 0, 0, time.UTC), ev.Schedule.Entries[0].Date)
		assert.Equal(t, []string{"Nozzy"}, ev.Schedule.Entries[0].Bands)
		assert.Equal(t, "Gender-Free", ev.Calling)
		assert.True(t, ev.AccessibleVenue)
		assert.Equal(t, "cambridge.yaml", ev.Source)
	})

	t.Run("single-date record", func(t *testing.T) {
		ev := events[1]
		assert.Equal(t, domain.ScheduleSingle, ev.Schedule.Kind)
		assert.Equal(t, "19:30", ev.Schedule.StartTime)
		assert.Equal(t, 53.40129, ev.Coord.Lat)
	})

	t.Run("range record", func(t *testing.T) {
		ev := events[2]
		assert.Equal(t, domain.ScheduleRange, ev.Schedule.Kind)
		assert.Equal(t, time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC), ev.Schedule.EndDate)
	})

	t.Run("unparseable date keeps record without schedule", func(t *testing.T) {
		ev := events[3]
		assert.Equal(t, "Typo Dance", ev.Name)
		assert.Equal(t, domain.ScheduleNone, ev.Schedule.Kind)
	})
}

func TestLoad_MissingCoordinatesFailsLoad(t *testing.T) {
	_, err := Load("testdata/bad", testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing coordinates")
}

func TestLoad_EmptyDir(t *testing.T) {
	s, err := Load(t.TempDir(), testLogger())
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

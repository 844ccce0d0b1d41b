package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occAt(name string, coord Coordinate) Occurrence {
	return Occurrence{
		Event: Event{Name: name, Coord: coord},
		Date:  time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNearby_PrimaryRadius(t *testing.T) {
	occs := []Occurrence{
		occAt("Camden", cecilSharp),     // ~3.7 km from central London
		occAt("Manchester", manchester), // ~260 km
		occAt("Cambridge", Coordinate{Lat: 52.20221, Lon: 0.12463}), // ~80 km
	}

	got := Nearby(london, occs, PrimaryRadiusKM)

	require.Len(t, got, 2)
	assert.Equal(t, "Camden", got[0].Event.Name)
	assert.Equal(t, "Cambridge", got[1].Event.Name, "survivors keep input order, not distance order")
}

func TestNearby_FallbackToClosestThree(t *testing.T) {
	// Everything is far from the Shetland origin; the fallback returns the
	// three closest sorted ascending by distance.
	origin := Coordinate{Lat: 60.15, Lon: -1.15}
	occs := []Occurrence{
		occAt("London", london),
		occAt("Edinburgh", Coordinate{Lat: 55.93076, Lon: -3.20934}),
		occAt("Manchester", manchester),
		occAt("Bristol", Coordinate{Lat: 51.4482, Lon: -2.59171}),
		occAt("Exeter", Coordinate{Lat: 50.668809, Lon: -3.537793}),
	}

	got := Nearby(origin, occs, PrimaryRadiusKM)

	require.Len(t, got, 3)
	assert.Equal(t, "Edinburgh", got[0].Event.Name)
	assert.Equal(t, "Manchester", got[1].Event.Name)
	assert.Equal(t, "London", got[2].Event.Name)
}

func TestNearby_FallbackWithFewerThanThree(t *testing.T) {
	origin := Coordinate{Lat: 60.15, Lon: -1.15}
	occs := []Occurrence{
		occAt("Manchester", manchester),
		occAt("London", london),
	}

	got := Nearby(origin, occs, PrimaryRadiusKM)

	require.Len(t, got, 2)
	assert.Equal(t, "Manchester", got[0].Event.Name)
}

func TestNearby_EmptyInput(t *testing.T) {
	assert.Empty(t, Nearby(london, nil, PrimaryRadiusKM))
}

func TestNearby_Idempotent(t *testing.T) {
	occs := []Occurrence{
		occAt("Camden", cecilSharp),
		occAt("Manchester", manchester),
	}
	input := make([]Occurrence, len(occs))
	copy(input, occs)

	first := Nearby(london, occs, PrimaryRadiusKM)
	second := Nearby(london, occs, PrimaryRadiusKM)

	assert.Equal(t, first, second)
	assert.Equal(t, input, occs, "input slice must not be mutated")
}

func TestNearby_FallbackTiesKeepInputOrder(t *testing.T) {
	// Two occurrences at the identical venue tie on distance exactly.
	origin := Coordinate{Lat: 60.15, Lon: -1.15}
	occs := []Occurrence{
		occAt("First at Venue", manchester),
		occAt("Second at Venue", manchester),
	}

	got := Nearby(origin, occs, 1)

	require.Len(t, got, 2)
	assert.Equal(t, "First at Venue", got[0].Event.Name)
	assert.Equal(t, "Second at Venue", got[1].Event.Name)
}

package httpapi

import (
	"fmt"

	"github.com/gauravya/contradance.uk/internal/domain"
)

// resultResponse is the body for both the listing and search endpoints. Every
// response carries a complete replacement of the previous page state: the
// full group list and the full marker set, so the client clears and redraws.
type resultResponse struct {
	Query        string         `json:"query,omitempty"`
	Mode         string         `json:"mode,omitempty"`
	LocationName string         `json:"location_name,omitempty"`
	Groups       []groupPayload `json:"groups"`
	NoResults    bool           `json:"no_results"`
	Map          mapPayload     `json:"map"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// groupPayload is one deduplicated event with its upcoming dates.
type groupPayload struct {
	Event   domain.Event   `json:"event"`
	Next    entryPayload   `json:"next"`
	Entries []entryPayload `json:"entries"`
}

// entryPayload is one concrete date, with both the machine date and the
// en-GB display string the page shows.
type entryPayload struct {
	Date        string   `json:"date"`
	DateDisplay string   `json:"date_display"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	Ongoing     bool     `json:"ongoing,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	TimeDisplay string   `json:"time_display"`
	Bands       []string `json:"bands,omitempty"`
	Callers     []string `json:"callers,omitempty"`
}

// mapPayload tells the map widget where to look and what to draw.
type mapPayload struct {
	Center  domain.Coordinate `json:"center"`
	Zoom    int               `json:"zoom"`
	Markers []markerPayload   `json:"markers"`
}

// markerPayload is one pin: a coordinate plus the popup fields.
type markerPayload struct {
	Coord domain.Coordinate `json:"coord"`
	Name  string            `json:"name"`
	Venue string            `json:"venue,omitempty"`
	Next  string            `json:"next"`
}

func toGroupPayloads(groups []domain.Group) []groupPayload {
	out := make([]groupPayload, 0, len(groups))
	for _, g := range groups {
		gp := groupPayload{
			Event:   g.Event,
			Next:    toEntryPayload(g.Next),
			Entries: make([]entryPayload, 0, len(g.Entries)),
		}
		for _, e := range g.Entries {
			gp.Entries = append(gp.Entries, toEntryPayload(e))
		}
		out = append(out, gp)
	}
	return out
}

func toEntryPayload(occ domain.Occurrence) entryPayload {
	p := entryPayload{
		Date:        occ.Date.Format(domain.DateFormat),
		DateDisplay: occ.Date.Format(displayDateFormat),
		StartTime:   occ.StartTime,
		EndTime:     occ.EndTime,
		Bands:       occ.Bands,
		Callers:     occ.Callers,
	}
	if occ.Ongoing {
		p.Ongoing = true
		p.StartDate = occ.StartDate.Format(domain.DateFormat)
		p.EndDate = occ.EndDate.Format(domain.DateFormat)
		p.DateDisplay = fmt.Sprintf("%s - %s",
			occ.StartDate.Format(displayDateFormat),
			occ.EndDate.Format(displayDateFormat))
		p.TimeDisplay = "Ongoing event"
	} else {
		p.TimeDisplay = fmt.Sprintf("%s - %s", occ.StartTime, occ.EndTime)
	}
	return p
}

// mapView centers on the geocoded point when there is one, and falls back to
// the UK-wide default frame. One marker per group, at the group's venue.
func mapView(groups []domain.Group, center *domain.Coordinate) mapPayload {
	view := mapPayload{
		Center:  defaultCenter,
		Zoom:    defaultZoom,
		Markers: make([]markerPayload, 0, len(groups)),
	}
	if center != nil {
		view.Center = *center
		view.Zoom = searchZoom
	}
	for _, g := range groups {
		view.Markers = append(view.Markers, markerPayload{
			Coord: g.Event.Coord,
			Name:  g.Event.Name,
			Venue: g.Event.Venue,
			Next:  toEntryPayload(g.Next).DateDisplay,
		})
	}
	return view
}

// Package store loads the curated event files into memory. The collection is
// read once at startup and never mutated afterwards.
package store

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gauravya/contradance.uk/internal/domain"
)

// record mirrors one event entry in a YAML file, using the same keys the
// hand-curated files have always used.
type record struct {
	Name            string           `yaml:"name"`
	City            string           `yaml:"city"`
	Country         string           `yaml:"country"`
	Venue           string           `yaml:"venue"`
	Address         string           `yaml:"address"`
	Latitude        *float64         `yaml:"latitude"`
	Longitude       *float64         `yaml:"longitude"`
	Styles          []string         `yaml:"styles"`
	Date            string           `yaml:"date"`
	StartTime       string           `yaml:"startTime"`
	EndTime         string           `yaml:"endTime"`
	StartDate       string           `yaml:"start_date"`
	EndDate         string           `yaml:"end_date"`
	Recurring       []recurringEntry `yaml:"recurringEvents"`
	Bands           []string         `yaml:"bands"`
	Callers         []string         `yaml:"callers"`
	Price           string           `yaml:"price"`
	Links           []string         `yaml:"links"`
	Organisation    string           `yaml:"organisation"`
	Workshop        bool             `yaml:"workshop"`
	Social          bool             `yaml:"social"`
	AccessibleVenue bool             `yaml:"accessibleVenue"`
	Calling         string           `yaml:"calling"`
	Details         string           `yaml:"details"`
	Contact         string           `yaml:"contact"`
}

type recurringEntry struct {
	Date      string   `yaml:"date"`
	StartTime string   `yaml:"startTime"`
	EndTime   string   `yaml:"endTime"`
	Bands     []string `yaml:"bands"`
	Callers   []string `yaml:"callers"`
}

// Store holds the loaded event collection. It is read-only for the process
// lifetime and safe for concurrent readers without locking.
type Store struct {
	events []domain.Event
}

// Load reads every *.yaml file under dir (recursively, sorted by path so the
// listing order is stable across runs) and validates each record. A file that
// fails to parse or a record without finite coordinates fails the whole load;
// a record whose dates do not parse is kept with no schedule and logged, so
// one typo in a date does not take the site down.
func Load(dir string, logger *slog.Logger) (*Store, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".yaml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan event dir %s: %w", dir, err)
	}
	sort.Strings(paths)

	s := &Store{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read event file: %w", err)
		}

		var recs []record
		if err := yaml.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("parse event file %s: %w", path, err)
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		for i, rec := range recs {
			ev, err := toEvent(rec, rel)
			if err != nil {
				return nil, fmt.Errorf("%s record %d (%q): %w", path, i, rec.Name, err)
			}
			if ev.Schedule.Kind == domain.ScheduleNone {
				logger.Warn("event has no usable schedule, it will never be listed",
					"file", rel, "event", ev.Name)
			}
			s.events = append(s.events, ev)
		}
	}

	logger.Info("event store loaded", "files", len(paths), "events", len(s.events))
	return s, nil
}

// Events returns the loaded records in file order. Callers must treat the
// slice as read-only.
func (s *Store) Events() []domain.Event {
	return s.events
}

// Len reports how many records were loaded.
func (s *Store) Len() int {
	return len(s.events)
}

func toEvent(rec record, source string) (domain.Event, error) {
	if rec.Name == "" {
		return domain.Event{}, fmt.Errorf("missing name")
	}
	if rec.Latitude == nil || rec.Longitude == nil {
		return domain.Event{}, fmt.Errorf("missing coordinates")
	}
	lat, lon := *rec.Latitude, *rec.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return domain.Event{}, fmt.Errorf("non-finite coordinates")
	}

	ev := domain.Event{
		Name:            rec.Name,
		City:            rec.City,
		Country:         rec.Country,
		Venue:           rec.Venue,
		Address:         rec.Address,
		Coord:           domain.Coordinate{Lat: lat, Lon: lon},
		Bands:           rec.Bands,
		Callers:         rec.Callers,
		Styles:          rec.Styles,
		Links:           rec.Links,
		Price:           rec.Price,
		Organisation:    rec.Organisation,
		Workshop:        rec.Workshop,
		Social:          rec.Social,
		AccessibleVenue: rec.AccessibleVenue,
		Calling:         rec.Calling,
		Details:         rec.Details,
		Contact:         rec.Contact,
		Source:          source,
	}
	ev.Schedule = classifySchedule(rec)
	return ev, nil
}

// classifySchedule assigns the discriminated schedule shape once at load
// time. Shape precedence when a record is over-populated follows the site's
// historical behaviour: recurring wins over range, range over single. Any
// unparseable date demotes the record to ScheduleNone rather than failing
// the load.
func classifySchedule(rec record) domain.Schedule {
	switch {
	case len(rec.Recurring) > 0:
		entries := make([]domain.ScheduleEntry, 0, len(rec.Recurring))
		for _, re := range rec.Recurring {
			d, err := time.Parse(domain.DateFormat, re.Date)
			if err != nil {
				return domain.Schedule{Kind: domain.ScheduleNone}
			}
			entries = append(entries, domain.ScheduleEntry{
				Date:      d,
				StartTime: re.StartTime,
				EndTime:   re.EndTime,
				Bands:     re.Bands,
				Callers:   re.Callers,
			})
		}
		return domain.Schedule{Kind: domain.ScheduleRecurring, Entries: entries}

	case rec.StartDate != "":
		start, err1 := time.Parse(domain.DateFormat, rec.StartDate)
		end, err2 := time.Parse(domain.DateFormat, rec.EndDate)
		if err1 != nil || err2 != nil {
			return domain.Schedule{Kind: domain.ScheduleNone}
		}
		return domain.Schedule{Kind: domain.ScheduleRange, StartDate: start, EndDate: end}

	case rec.Date != "":
		d, err := time.Parse(domain.DateFormat, rec.Date)
		if err != nil {
			return domain.Schedule{Kind: domain.ScheduleNone}
		}
		return domain.Schedule{
			Kind:      domain.ScheduleSingle,
			Date:      d,
			StartTime: rec.StartTime,
			EndTime:   rec.EndTime,
		}

	default:
		return domain.Schedule{Kind: domain.ScheduleNone}
	}
}

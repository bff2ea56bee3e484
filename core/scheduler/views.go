package scheduler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kilianp07/tower/core/model"
)

// FlightView is a read-only projection of a flight.
type FlightView struct {
	ID              string       `json:"id"`
	Origin          string       `json:"origin"`
	Destination     string       `json:"destination"`
	Departure       model.Minute `json:"departure"`
	Arrival         model.Minute `json:"arrival"`
	Delay           model.Minute `json:"delay"`
	ActualDeparture model.Minute `json:"actual_departure"`
	ActualArrival   model.Minute `json:"actual_arrival"`
	Aircraft        string       `json:"aircraft,omitempty"`
	Status          string       `json:"status"`
	Reason          string       `json:"reason,omitempty"`

	status model.Status
}

// State returns the typed status of the flight.
func (v FlightView) State() model.Status { return v.status }

func newFlightView(f model.Flight) FlightView {
	v := FlightView{
		ID:              f.ID,
		Origin:          f.Origin,
		Destination:     f.Destination,
		Departure:       f.Departure,
		Arrival:         f.Arrival,
		Delay:           f.Delay,
		ActualDeparture: f.ActualDeparture(),
		ActualArrival:   f.ActualArrival(),
		Aircraft:        f.Aircraft,
		status:          f.Status,
	}
	switch st := f.Status.(type) {
	case model.Scheduled:
		v.Status = "scheduled"
	case model.Delayed:
		v.Status = "delayed"
	case model.Unscheduled:
		v.Status = "unscheduled"
		v.Reason = st.Reason.String()
	}
	return v
}

// AircraftView is a read-only projection of an aircraft and its rotation.
type AircraftView struct {
	ID            string              `json:"id"`
	Location      string              `json:"location"`
	AvailableFrom model.Minute        `json:"available_from"`
	Rotation      []string            `json:"rotation"`
	Tail          model.Tail          `json:"tail"`
	Maintenance   []model.Maintenance `json:"maintenance,omitempty"`
}

// Filter selects flights in ListFlights. The zero value matches everything.
type Filter struct {
	// Status is one of "", "scheduled", "delayed", "unscheduled".
	Status string
	// Reason narrows unscheduled flights; nil matches any reason.
	Reason *model.Reason
	// Day keeps flights whose scheduled departure falls on that 1-based day.
	Day int
}

// ParseFilter reads shell style tokens: an optional day number followed by
// s, d, u or an unscheduled reason name.
func ParseFilter(tokens ...string) (Filter, error) {
	var f Filter
	for _, tok := range tokens {
		if d, err := strconv.Atoi(tok); err == nil {
			if d < 1 {
				return Filter{}, fmt.Errorf("day must be at least 1, got %d", d)
			}
			f.Day = d
			continue
		}
		switch strings.ToLower(tok) {
		case "s", "scheduled":
			f.Status = "scheduled"
		case "d", "delayed":
			f.Status = "delayed"
		case "u", "unscheduled":
			f.Status = "unscheduled"
		default:
			r, err := model.ParseReason(tok)
			if err != nil {
				return Filter{}, fmt.Errorf("unknown filter %q", tok)
			}
			f.Status = "unscheduled"
			f.Reason = &r
		}
	}
	return f, nil
}

// Match reports whether f selects the flight.
func (flt Filter) Match(f model.Flight) bool {
	if flt.Day > 0 && f.Departure.Day() != flt.Day {
		return false
	}
	switch flt.Status {
	case "":
		return true
	case "scheduled":
		return f.Status == model.Status(model.Scheduled{})
	case "delayed":
		return f.Status == model.Status(model.Delayed{})
	case "unscheduled":
		r, ok := model.ReasonOf(f.Status)
		return ok && (flt.Reason == nil || *flt.Reason == r)
	default:
		return false
	}
}

// ListFlights returns the flights matching filter, ordered by scheduled
// departure then id.
func (s *Schedule) ListFlights(filter Filter) []FlightView {
	out := make([]FlightView, 0, len(s.flights))
	for _, f := range s.flights {
		if filter.Match(f) {
			out = append(out, newFlightView(f))
		}
	}
	return out
}

// Flight returns a single flight view.
func (s *Schedule) Flight(id string) (FlightView, error) {
	fi, err := s.lookupFlight(id)
	if err != nil {
		return FlightView{}, err
	}
	return newFlightView(s.flights[fi]), nil
}

// Aircraft returns every aircraft with its rotation, ordered by id.
func (s *Schedule) Aircraft() []AircraftView {
	out := make([]AircraftView, len(s.aircraft))
	for a, ac := range s.aircraft {
		rot := make([]string, len(s.rotations[a]))
		for i, fi := range s.rotations[a] {
			rot[i] = s.flights[fi].ID
		}
		out[a] = AircraftView{
			ID:            ac.ID,
			Location:      ac.Location,
			AvailableFrom: ac.AvailableFrom,
			Rotation:      rot,
			Tail:          s.tails[a],
			Maintenance:   slices.Clone(ac.Maintenance),
		}
	}
	return out
}

// Airports returns a copy of every airport with its curfews, ordered by id.
func (s *Schedule) Airports() []model.Airport {
	out := make([]model.Airport, len(s.airports))
	for i, ap := range s.airports {
		out[i] = model.Airport{ID: ap.ID, Curfews: slices.Clone(ap.Curfews)}
	}
	return out
}

package scheduler

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/kilianp07/tower/core/model"
)

// Schedule is the mutable assignment state for one scenario.
//
// Entities live in flat slices; flights reference aircraft by id and each
// rotation is an ordered list of flight indices. Tails are kept up to date on
// every append and removal.
type Schedule struct {
	opts Options

	flights   []model.Flight
	flightIdx map[string]int

	aircraft    []model.Aircraft
	aircraftIdx map[string]int
	rotations   [][]int
	tails       []model.Tail

	airports   []model.Airport
	airportIdx map[string]int

	seq  int
	last *Report
}

// Load validates the scenario entities, copies them into a new Schedule and
// runs the rotation builder once. Input statuses and aircraft references on
// flights are ignored.
func Load(flights []model.Flight, aircraft []model.Aircraft, airports []model.Airport, opts Options) (*Schedule, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := &Schedule{
		opts:        opts,
		flightIdx:   make(map[string]int, len(flights)),
		aircraftIdx: make(map[string]int, len(aircraft)),
		airportIdx:  make(map[string]int, len(airports)),
	}
	if err := s.loadAirports(airports); err != nil {
		return nil, err
	}
	if err := s.loadAircraft(aircraft); err != nil {
		return nil, err
	}
	if err := s.loadFlights(flights); err != nil {
		return nil, err
	}
	s.build()
	return s, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

func (s *Schedule) loadAirports(in []model.Airport) error {
	s.airports = make([]model.Airport, 0, len(in))
	for _, ap := range in {
		if strings.TrimSpace(ap.ID) == "" {
			return invalid("airport with empty id")
		}
		for _, c := range ap.Curfews {
			if !c.Valid() {
				return invalid("airport %s: curfew %d-%d is empty", ap.ID, c.Start, c.End)
			}
		}
		ap.Curfews = slices.Clone(ap.Curfews)
		s.airports = append(s.airports, ap)
	}
	sort.Slice(s.airports, func(i, j int) bool { return s.airports[i].ID < s.airports[j].ID })
	for i, ap := range s.airports {
		if _, dup := s.airportIdx[ap.ID]; dup {
			return invalid("duplicate airport %s", ap.ID)
		}
		s.airportIdx[ap.ID] = i
	}
	return nil
}

func (s *Schedule) loadAircraft(in []model.Aircraft) error {
	s.aircraft = make([]model.Aircraft, 0, len(in))
	for _, ac := range in {
		if strings.TrimSpace(ac.ID) == "" {
			return invalid("aircraft with empty id")
		}
		if _, ok := s.airportIdx[ac.Location]; !ok {
			return invalid("aircraft %s: unknown location %q", ac.ID, ac.Location)
		}
		if ac.AvailableFrom < 0 {
			return invalid("aircraft %s: negative availability", ac.ID)
		}
		for _, m := range ac.Maintenance {
			if !m.Valid() {
				return invalid("aircraft %s: maintenance %d-%d is empty", ac.ID, m.Start, m.End)
			}
			if m.Location != "" {
				if _, ok := s.airportIdx[m.Location]; !ok {
					return invalid("aircraft %s: maintenance at unknown airport %q", ac.ID, m.Location)
				}
			}
		}
		ac.Maintenance = slices.Clone(ac.Maintenance)
		s.aircraft = append(s.aircraft, ac)
	}
	sort.Slice(s.aircraft, func(i, j int) bool { return s.aircraft[i].ID < s.aircraft[j].ID })
	s.rotations = make([][]int, len(s.aircraft))
	s.tails = make([]model.Tail, len(s.aircraft))
	for i, ac := range s.aircraft {
		if _, dup := s.aircraftIdx[ac.ID]; dup {
			return invalid("duplicate aircraft %s", ac.ID)
		}
		s.aircraftIdx[ac.ID] = i
		s.tails[i] = ac.InitialTail()
	}
	return nil
}

func (s *Schedule) loadFlights(in []model.Flight) error {
	s.flights = make([]model.Flight, 0, len(in))
	for _, f := range in {
		if strings.TrimSpace(f.ID) == "" {
			return invalid("flight with empty id")
		}
		if _, ok := s.airportIdx[f.Origin]; !ok {
			return invalid("flight %s: unknown origin %q", f.ID, f.Origin)
		}
		if _, ok := s.airportIdx[f.Destination]; !ok {
			return invalid("flight %s: unknown destination %q", f.ID, f.Destination)
		}
		if f.Departure < 0 || f.Arrival <= f.Departure {
			return invalid("flight %s: arrival %d must follow departure %d", f.ID, f.Arrival, f.Departure)
		}
		if f.Delay < 0 {
			return invalid("flight %s: negative delay", f.ID)
		}
		f.Aircraft = ""
		f.Status = model.Unscheduled{Reason: model.ReasonWaiting}
		s.flights = append(s.flights, f)
	}
	sort.Slice(s.flights, func(i, j int) bool {
		a, b := s.flights[i], s.flights[j]
		if a.Departure != b.Departure {
			return a.Departure < b.Departure
		}
		return a.ID < b.ID
	})
	for i, f := range s.flights {
		if _, dup := s.flightIdx[f.ID]; dup {
			return invalid("duplicate flight %s", f.ID)
		}
		s.flightIdx[f.ID] = i
	}
	return nil
}

// Options returns the engine options the schedule was loaded with.
func (s *Schedule) Options() Options { return s.opts }

func (s *Schedule) lookupFlight(id string) (int, error) {
	fi, ok := s.flightIdx[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFlight, id)
	}
	return fi, nil
}

func (s *Schedule) lookupAircraft(id string) (int, error) {
	a, ok := s.aircraftIdx[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAircraft, id)
	}
	return a, nil
}

func (s *Schedule) lookupAirport(id string) (int, error) {
	ap, ok := s.airportIdx[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAirport, id)
	}
	return ap, nil
}

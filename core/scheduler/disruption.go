package scheduler

import (
	"fmt"
	"math"

	"github.com/kilianp07/tower/core/model"
)

// Outcome summarises a disruption.
type Outcome struct {
	// Unscheduled counts flights that lost their aircraft.
	Unscheduled int `json:"unscheduled"`
	// Delayed counts flights that stayed assigned with the new delay.
	Delayed int    `json:"delayed"`
	Report  Report `json:"report"`
}

// Delay adds minutes to the cumulative delay of a flight and repairs its
// rotation. An unassigned flight only has its reason recomputed.
func (s *Schedule) Delay(flightID string, minutes model.Minute) (Outcome, error) {
	fi, err := s.lookupFlight(flightID)
	if err != nil {
		return Outcome{}, err
	}
	if minutes <= 0 {
		return Outcome{}, fmt.Errorf("%w: delay must be positive, got %d", ErrInvalidInterval, minutes)
	}
	if f := s.flights[fi]; minutes > math.MaxInt64-f.Arrival-f.Delay-s.opts.MTT {
		return Outcome{}, fmt.Errorf("%w: delay of %d min overflows %s", ErrInvalidInterval, minutes, flightID)
	}
	rec := s.newRecorder(KindDelay, fmt.Sprintf("Flight %s delayed by %d min", flightID, minutes))

	f := &s.flights[fi]
	f.Delay += minutes
	if !f.Assigned() {
		if r, ok := s.intrinsicReason(fi); ok {
			f.Status = model.Unscheduled{Reason: r}
		}
		return s.commit(rec), nil
	}

	a, pos, _ := s.position(fi)
	switch {
	case s.overMaxDelay(fi):
		s.remove(a, pos, model.ReasonMaxDelayExceeded, rec)
		s.cascade(a, pos, nil, rec)
	case s.maintenanceBlocked(fi, a):
		s.remove(a, pos, model.ReasonAircraftMaintenance, rec)
		s.cascade(a, pos, nil, rec)
	case s.curfewBlocked(fi):
		s.remove(a, pos, model.ReasonAirportCurfew, rec)
		s.cascade(a, pos, nil, rec)
	default:
		f.Status = model.Delayed{}
		rec.affected(f.ID)
		s.refreshTail(a)
		s.cascade(a, pos+1, nil, rec)
	}
	return s.commit(rec), nil
}

// Curfew closes an airport during [start, end) and unassigns every flight
// departing from or arriving at it inside the window.
func (s *Schedule) Curfew(airportID string, start, end model.Minute) (Outcome, error) {
	ap, err := s.lookupAirport(airportID)
	if err != nil {
		return Outcome{}, err
	}
	w := model.Window{Start: start, End: end}
	if !w.Valid() {
		return Outcome{}, fmt.Errorf("%w: curfew %d-%d", ErrInvalidInterval, start, end)
	}
	s.airports[ap].Curfews = append(s.airports[ap].Curfews, w)

	rec := s.newRecorder(KindCurfew, fmt.Sprintf("Curfew applied at %s (%s)", airportID, w))
	trig := &trigger{
		reason: model.ReasonAirportCurfew,
		blocks: func(fi int) bool {
			f := s.flights[fi]
			return (f.Origin == airportID && w.Contains(f.ActualDeparture())) ||
				(f.Destination == airportID && w.Contains(f.ActualArrival()))
		},
	}
	for a := range s.aircraft {
		s.sweep(a, trig, rec)
	}
	return s.commit(rec), nil
}

// Maintenance grounds an aircraft during [start, end), optionally only at
// location, and unassigns every leg of its rotation the window blocks.
func (s *Schedule) Maintenance(aircraftID string, start, end model.Minute, location string) (Outcome, error) {
	a, err := s.lookupAircraft(aircraftID)
	if err != nil {
		return Outcome{}, err
	}
	if location != "" {
		if _, err := s.lookupAirport(location); err != nil {
			return Outcome{}, err
		}
	}
	m := model.Maintenance{Window: model.Window{Start: start, End: end}, Location: location}
	if !m.Valid() {
		return Outcome{}, fmt.Errorf("%w: maintenance %d-%d", ErrInvalidInterval, start, end)
	}
	s.aircraft[a].Maintenance = append(s.aircraft[a].Maintenance, m)

	desc := fmt.Sprintf("Maintenance on %s (%s)", aircraftID, m.Window)
	if location != "" {
		desc += " at " + location
	}
	rec := s.newRecorder(KindMaintenance, desc)
	s.sweep(a, &trigger{
		reason: model.ReasonAircraftMaintenance,
		blocks: func(fi int) bool { return m.Applies(s.flights[fi]) },
	}, rec)
	return s.commit(rec), nil
}

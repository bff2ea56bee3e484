package scheduler

import "github.com/kilianp07/tower/core/model"

// CanChain reports whether next may be flown right after prev by the same
// aircraft: next departs where prev landed, at least mtt minutes later.
func CanChain(prev, next model.Flight, mtt model.Minute) bool {
	return model.TailAfter(prev, mtt).Accepts(next)
}

// IsCurfewBlocked reports whether the flight departs during a curfew of its
// origin or arrives during a curfew of its destination.
func IsCurfewBlocked(f model.Flight, origin, destination model.Airport) bool {
	return origin.Closed(f.ActualDeparture()) || destination.Closed(f.ActualArrival())
}

// IsMaintenanceBlocked reports whether the flight overlaps any maintenance
// window of the aircraft, honouring location-constrained windows.
func IsMaintenanceBlocked(f model.Flight, ac model.Aircraft) bool {
	for _, m := range ac.Maintenance {
		if m.Applies(f) {
			return true
		}
	}
	return false
}

func (s *Schedule) curfewBlocked(fi int) bool {
	f := s.flights[fi]
	return IsCurfewBlocked(f, s.airports[s.airportIdx[f.Origin]], s.airports[s.airportIdx[f.Destination]])
}

func (s *Schedule) maintenanceBlocked(fi, a int) bool {
	return IsMaintenanceBlocked(s.flights[fi], s.aircraft[a])
}

func (s *Schedule) overMaxDelay(fi int) bool {
	return s.flights[fi].Delay > s.opts.MaxDelay
}

// eligible reports whether aircraft a may take flight fi on its current tail.
func (s *Schedule) eligible(fi, a int) bool {
	return !s.overMaxDelay(fi) &&
		s.tails[a].Accepts(s.flights[fi]) &&
		!s.curfewBlocked(fi) &&
		!s.maintenanceBlocked(fi, a)
}

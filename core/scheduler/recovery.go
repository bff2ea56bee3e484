package scheduler

import (
	"sort"

	"github.com/kilianp07/tower/core/model"
)

// Assignment records a flight placed on an aircraft by Recover.
type Assignment struct {
	FlightID string `json:"flight_id"`
	Aircraft string `json:"aircraft"`
}

// RecoveryOutcome summarises one recovery pass.
type RecoveryOutcome struct {
	Reassigned       int          `json:"reassigned"`
	StillUnscheduled int          `json:"still_unscheduled"`
	Assignments      []Assignment `json:"assignments"`
}

// Recover tries to place every unscheduled flight at the end of an aircraft
// rotation. Flights are visited by scheduled departure then id, aircraft by
// id; the first eligible aircraft wins. Committed rotation entries are never
// reordered. One call is a single pass.
func (s *Schedule) Recover() RecoveryOutcome {
	var pending []int
	for fi := range s.flights {
		if !s.flights[fi].Assigned() {
			pending = append(pending, fi)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := s.flights[pending[i]], s.flights[pending[j]]
		if a.Departure != b.Departure {
			return a.Departure < b.Departure
		}
		return a.ID < b.ID
	})

	var out RecoveryOutcome
	var failed []int
	for _, fi := range pending {
		a := s.firstEligible(fi)
		if a < 0 {
			failed = append(failed, fi)
			continue
		}
		s.assign(a, fi)
		out.Reassigned++
		out.Assignments = append(out.Assignments, Assignment{FlightID: s.flights[fi].ID, Aircraft: s.aircraft[a].ID})
	}
	// Reasons are classified against the final tails of the pass.
	for _, fi := range failed {
		s.flights[fi].Status = model.Unscheduled{Reason: s.failureReason(fi)}
	}
	out.StillUnscheduled = len(failed)
	return out
}

func (s *Schedule) firstEligible(fi int) int {
	for a := range s.aircraft {
		if s.eligible(fi, a) {
			return a
		}
	}
	return -1
}

// intrinsicReason classifies causes that depend on the flight alone.
func (s *Schedule) intrinsicReason(fi int) (model.Reason, bool) {
	switch {
	case s.curfewBlocked(fi):
		return model.ReasonAirportCurfew, true
	case s.overMaxDelay(fi):
		return model.ReasonMaxDelayExceeded, true
	default:
		return 0, false
	}
}

// failureReason picks the blocking cause for a flight no aircraft could take,
// by priority curfew, maintenance, max delay. Maintenance is reported when
// every aircraft whose tail chains with the flight is grounded by it. Without
// a cause the flight falls back to Waiting.
func (s *Schedule) failureReason(fi int) model.Reason {
	if s.curfewBlocked(fi) {
		return model.ReasonAirportCurfew
	}
	chaining, grounded := 0, 0
	for a := range s.aircraft {
		if !s.tails[a].Accepts(s.flights[fi]) {
			continue
		}
		chaining++
		if s.maintenanceBlocked(fi, a) {
			grounded++
		}
	}
	if chaining > 0 && chaining == grounded {
		return model.ReasonAircraftMaintenance
	}
	if s.overMaxDelay(fi) {
		return model.ReasonMaxDelayExceeded
	}
	return model.ReasonWaiting
}

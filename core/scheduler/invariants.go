package scheduler

import (
	"fmt"

	"github.com/kilianp07/tower/core/model"
)

// Check verifies the structural invariants of the schedule:
// assignment matches rotation membership, consecutive legs chain, rotations
// are ordered by actual departure, and every tail reflects its rotation.
func (s *Schedule) Check() error {
	owner := make(map[int]int, len(s.flights))
	for a, rot := range s.rotations {
		for pos, fi := range rot {
			if prev, dup := owner[fi]; dup {
				return fmt.Errorf("flight %s is in the rotations of %s and %s",
					s.flights[fi].ID, s.aircraft[prev].ID, s.aircraft[a].ID)
			}
			owner[fi] = a
			f := s.flights[fi]
			if pos > 0 {
				prev := s.flights[rot[pos-1]]
				if !CanChain(prev, f, s.opts.MTT) {
					return fmt.Errorf("aircraft %s: %s does not chain after %s", s.aircraft[a].ID, f.ID, prev.ID)
				}
				if f.ActualDeparture() <= prev.ActualDeparture() {
					return fmt.Errorf("aircraft %s: %s departs before %s", s.aircraft[a].ID, f.ID, prev.ID)
				}
			} else if !s.aircraft[a].InitialTail().Accepts(f) {
				return fmt.Errorf("aircraft %s: first leg %s does not chain from initial tail", s.aircraft[a].ID, f.ID)
			}
		}
		if want := s.tailBefore(a, len(rot)); s.tails[a] != want {
			return fmt.Errorf("aircraft %s: stale tail %+v, want %+v", s.aircraft[a].ID, s.tails[a], want)
		}
	}
	for fi, f := range s.flights {
		a, inRotation := owner[fi]
		switch f.Status.(type) {
		case model.Scheduled, model.Delayed:
			if !inRotation || f.Aircraft != s.aircraft[a].ID {
				return fmt.Errorf("flight %s is %s but not in the rotation of %q", f.ID, f.Status, f.Aircraft)
			}
			if model.AssignedStatus(f.Delay) != f.Status {
				return fmt.Errorf("flight %s is %s with delay %d", f.ID, f.Status, f.Delay)
			}
		case model.Unscheduled:
			if inRotation || f.Aircraft != "" {
				return fmt.Errorf("flight %s is %s but assigned to %q", f.ID, f.Status, f.Aircraft)
			}
		default:
			return fmt.Errorf("flight %s has no status", f.ID)
		}
		if f.Duration() <= 0 {
			return fmt.Errorf("flight %s has non-positive duration", f.ID)
		}
	}
	return nil
}

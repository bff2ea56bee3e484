package scheduler

import (
	"slices"

	"github.com/kilianp07/tower/core/model"
)

func (s *Schedule) assign(a, fi int) {
	f := &s.flights[fi]
	f.Aircraft = s.aircraft[a].ID
	f.Status = model.AssignedStatus(f.Delay)
	s.rotations[a] = append(s.rotations[a], fi)
	s.tails[a] = model.TailAfter(*f, s.opts.MTT)
}

// unassignAt splices the flight at pos out of the rotation of a.
func (s *Schedule) unassignAt(a, pos int, reason model.Reason) int {
	fi := s.rotations[a][pos]
	s.rotations[a] = slices.Delete(s.rotations[a], pos, pos+1)
	f := &s.flights[fi]
	f.Aircraft = ""
	f.Status = model.Unscheduled{Reason: reason}
	s.refreshTail(a)
	return fi
}

// tailBefore returns the tail an aircraft has right before rotation entry pos.
func (s *Schedule) tailBefore(a, pos int) model.Tail {
	if pos == 0 {
		return s.aircraft[a].InitialTail()
	}
	return model.TailAfter(s.flights[s.rotations[a][pos-1]], s.opts.MTT)
}

func (s *Schedule) refreshTail(a int) {
	s.tails[a] = s.tailBefore(a, len(s.rotations[a]))
}

// position locates an assigned flight inside its aircraft rotation.
func (s *Schedule) position(fi int) (a, pos int, ok bool) {
	a, ok = s.aircraftIdx[s.flights[fi].Aircraft]
	if !ok {
		return 0, 0, false
	}
	pos = slices.Index(s.rotations[a], fi)
	return a, pos, pos >= 0
}

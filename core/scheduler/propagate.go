package scheduler

import "github.com/kilianp07/tower/core/model"

// trigger describes the disruption driving a cascade: which flights it blocks
// and the reason they are tagged with.
type trigger struct {
	blocks func(fi int) bool
	reason model.Reason
}

func (s *Schedule) remove(a, pos int, reason model.Reason, rec *recorder) {
	id := s.aircraft[a].ID
	fi := s.unassignAt(a, pos, reason)
	rec.removed(s.flights[fi].ID, id, reason)
}

// cascade walks the rotation of a from pos after an entry was removed or
// changed. Entries blocked by the trigger are removed with its reason;
// entries that no longer chain with the last remaining leg are removed as
// BrokenChain. The walk stops at the first entry that is still legal.
func (s *Schedule) cascade(a, pos int, trig *trigger, rec *recorder) {
	for pos < len(s.rotations[a]) {
		fi := s.rotations[a][pos]
		switch {
		case trig != nil && trig.blocks(fi):
			s.remove(a, pos, trig.reason, rec)
		case !s.tailBefore(a, pos).Accepts(s.flights[fi]):
			s.remove(a, pos, model.ReasonBrokenChain, rec)
		default:
			return
		}
	}
}

// sweep removes every entry of a blocked by trig, running the cascade from
// each removal point.
func (s *Schedule) sweep(a int, trig *trigger, rec *recorder) {
	for pos := 0; pos < len(s.rotations[a]); pos++ {
		if !trig.blocks(s.rotations[a][pos]) {
			continue
		}
		s.remove(a, pos, trig.reason, rec)
		s.cascade(a, pos, trig, rec)
	}
}

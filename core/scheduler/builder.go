package scheduler

import (
	"sort"

	"github.com/kilianp07/tower/core/model"
)

// build runs the initial greedy assignment. Aircraft are served in id order;
// each one repeatedly takes the earliest departing free flight it can chain,
// ties broken by flight id. Flights nobody claims stay Unscheduled(Waiting).
func (s *Schedule) build() {
	order := make([]int, len(s.flights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := s.flights[order[i]], s.flights[order[j]]
		if a.ActualDeparture() != b.ActualDeparture() {
			return a.ActualDeparture() < b.ActualDeparture()
		}
		return a.ID < b.ID
	})

	taken := make([]bool, len(s.flights))
	for a := range s.aircraft {
		for {
			next := s.nextLeg(a, order, taken)
			if next < 0 {
				break
			}
			taken[next] = true
			s.assign(a, next)
		}
	}
	for fi := range s.flights {
		if !taken[fi] {
			s.flights[fi].Status = model.Unscheduled{Reason: model.ReasonWaiting}
		}
	}
}

// nextLeg returns the first flight in departure order that aircraft a can
// fly from its current tail, or -1.
func (s *Schedule) nextLeg(a int, order []int, taken []bool) int {
	ready := s.tails[a].Ready
	start := sort.Search(len(order), func(i int) bool {
		return s.flights[order[i]].ActualDeparture() >= ready
	})
	for _, fi := range order[start:] {
		if taken[fi] {
			continue
		}
		if s.eligible(fi, a) {
			return fi
		}
	}
	return -1
}

package scheduler

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/tower/core/model"
)

// StatsSnapshot counts flights per status and unscheduled reason.
type StatsSnapshot struct {
	Total       int                  `json:"total"`
	Scheduled   int                  `json:"scheduled"`
	Delayed     int                  `json:"delayed"`
	Unscheduled int                  `json:"unscheduled"`
	ByReason    map[model.Reason]int `json:"by_reason"`
	// MeanDelay and StdDevDelay describe the delay of Delayed flights, in minutes.
	MeanDelay   float64 `json:"mean_delay"`
	StdDevDelay float64 `json:"stddev_delay"`
}

// Assigned is the number of Scheduled and Delayed flights.
func (st StatsSnapshot) Assigned() int { return st.Scheduled + st.Delayed }

// Share returns n as a percentage of the total.
func (st StatsSnapshot) Share(n int) float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(n) / float64(st.Total) * 100
}

// Stats computes a read-only snapshot of the schedule.
func (s *Schedule) Stats() StatsSnapshot {
	st := StatsSnapshot{Total: len(s.flights), ByReason: make(map[model.Reason]int, len(model.Reasons()))}
	for _, r := range model.Reasons() {
		st.ByReason[r] = 0
	}
	var delays []float64
	for _, f := range s.flights {
		switch v := f.Status.(type) {
		case model.Scheduled:
			st.Scheduled++
		case model.Delayed:
			st.Delayed++
			delays = append(delays, float64(f.Delay))
		case model.Unscheduled:
			st.Unscheduled++
			st.ByReason[v.Reason]++
		}
	}
	switch len(delays) {
	case 0:
	case 1:
		st.MeanDelay = delays[0]
	default:
		st.MeanDelay, st.StdDevDelay = stat.MeanStdDev(delays, nil)
	}
	return st
}

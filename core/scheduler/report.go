package scheduler

import (
	"slices"

	"github.com/kilianp07/tower/core/model"
)

// Kind identifies the disruption that produced a report.
type Kind string

const (
	KindDelay       Kind = "delay"
	KindCurfew      Kind = "curfew"
	KindMaintenance Kind = "maintenance"
)

// Removal is a flight unassigned by a disruption.
type Removal struct {
	FlightID string       `json:"flight_id"`
	Aircraft string       `json:"aircraft"`
	Reason   model.Reason `json:"reason"`
}

// Report explains the effect of the last disruption.
type Report struct {
	Seq     int    `json:"seq"`
	Kind    Kind   `json:"kind"`
	Trigger string `json:"trigger"`
	// Affected lists flights that stayed assigned with a new delay.
	Affected    []string  `json:"affected"`
	Unscheduled []Removal `json:"unscheduled"`
	FirstBreak  *Removal  `json:"first_break,omitempty"`
}

func (r Report) clone() Report {
	r.Affected = slices.Clone(r.Affected)
	r.Unscheduled = slices.Clone(r.Unscheduled)
	if r.FirstBreak != nil {
		fb := *r.FirstBreak
		r.FirstBreak = &fb
	}
	return r
}

// recorder accumulates a report while a disruption is applied.
type recorder struct {
	rep Report
}

func (s *Schedule) newRecorder(kind Kind, trigger string) *recorder {
	return &recorder{rep: Report{Kind: kind, Trigger: trigger}}
}

func (r *recorder) removed(id, aircraft string, reason model.Reason) {
	rm := Removal{FlightID: id, Aircraft: aircraft, Reason: reason}
	r.rep.Unscheduled = append(r.rep.Unscheduled, rm)
	if r.rep.FirstBreak == nil {
		r.rep.FirstBreak = &rm
	}
}

func (r *recorder) affected(id string) {
	r.rep.Affected = append(r.rep.Affected, id)
}

// commit stores the report as the latest one and returns the outcome.
func (s *Schedule) commit(r *recorder) Outcome {
	s.seq++
	r.rep.Seq = s.seq
	rep := r.rep
	s.last = &rep
	return Outcome{Unscheduled: len(rep.Unscheduled), Delayed: len(rep.Affected), Report: rep.clone()}
}

// LastReport returns the report of the most recent disruption.
func (s *Schedule) LastReport() (Report, bool) {
	if s.last == nil {
		return Report{}, false
	}
	return s.last.clone(), true
}

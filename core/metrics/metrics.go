package metrics

import (
	"time"

	"github.com/kilianp07/tower/core/model"
)

// DisruptionRecord describes one applied disruption.
type DisruptionRecord struct {
	Kind    string
	Trigger string
	// Removed counts unscheduled flights per reason.
	Removed map[model.Reason]int
	Delayed int
	Latency time.Duration
	Time    time.Time
}

// Unscheduled is the total number of flights removed by the disruption.
func (r DisruptionRecord) Unscheduled() int {
	n := 0
	for _, c := range r.Removed {
		n += c
	}
	return n
}

// MetricsSink records disruptions for observability purposes.
type MetricsSink interface {
	RecordDisruption(rec DisruptionRecord) error
}

// RecoveryRecord describes one recovery pass.
type RecoveryRecord struct {
	Reassigned       int
	StillUnscheduled int
	Latency          time.Duration
	Time             time.Time
}

// RecoveryRecorder records recovery passes.
type RecoveryRecorder interface {
	RecordRecovery(rec RecoveryRecord) error
}

// StatsRecord is a snapshot of the schedule.
type StatsRecord struct {
	Total       int
	Scheduled   int
	Delayed     int
	Unscheduled int
	ByReason    map[model.Reason]int
	MeanDelay   float64
	StdDevDelay float64
	Time        time.Time
}

// StatsRecorder records schedule snapshots.
type StatsRecorder interface {
	RecordStats(rec StatsRecord) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordDisruption(DisruptionRecord) error { return nil }
func (NopSink) RecordRecovery(RecoveryRecord) error     { return nil }
func (NopSink) RecordStats(StatsRecord) error           { return nil }

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/kilianp07/tower/core/events"
	"github.com/kilianp07/tower/core/scenario"
)

// Record is one journal entry.
type Record struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      events.Kind `json:"kind"`
	// Op is the operation that produced the entry, when known. Replaying the
	// ops of a journal in order reproduces the schedule.
	Op          *scenario.Op `json:"op,omitempty"`
	Summary     string       `json:"summary"`
	Flights     []string     `json:"flights,omitempty"`
	Unscheduled int          `json:"unscheduled"`
	Delayed     int          `json:"delayed"`
	Reassigned  int          `json:"reassigned"`
	// Payload is the JSON encoding of the originating event.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Kind     events.Kind
	Start    time.Time
	End      time.Time
	FlightID string
	// Limit keeps only the most recent records when positive.
	Limit int
}

func (q Query) match(r Record) bool {
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.FlightID != "" && !slices.Contains(r.Flights, q.FlightID) {
		return false
	}
	return true
}

func (q Query) tail(res []Record) []Record {
	if q.Limit > 0 && len(res) > q.Limit {
		return res[len(res)-q.Limit:]
	}
	return res
}

// Store persists Records and supports querying. Query returns records in
// append order.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// FromEvent converts a bus event into a Record. Disruption and recovery
// events carry the operation that produced them.
func FromEvent(ev events.Event) (Record, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s event: %w", ev.EventKind(), err)
	}
	rec := Record{
		ID:        ev.EventID(),
		Timestamp: ev.EventTime(),
		Kind:      ev.EventKind(),
		Payload:   payload,
	}
	switch e := ev.(type) {
	case events.DisruptionEvent:
		rec.Op = opOrNil(e.Op)
		rec.Summary = e.Report.Trigger
		rec.Unscheduled = e.Unscheduled
		rec.Delayed = e.Delayed
		rec.Flights = append(rec.Flights, e.Report.Affected...)
		for _, rm := range e.Report.Unscheduled {
			rec.Flights = append(rec.Flights, rm.FlightID)
		}
	case events.RecoveryEvent:
		rec.Op = opOrNil(e.Op)
		rec.Summary = fmt.Sprintf("Recovered %d flights, %d still unscheduled",
			e.Outcome.Reassigned, e.Outcome.StillUnscheduled)
		rec.Reassigned = e.Outcome.Reassigned
		rec.Unscheduled = e.Outcome.StillUnscheduled
		for _, a := range e.Outcome.Assignments {
			rec.Flights = append(rec.Flights, a.FlightID)
		}
	case events.StatsEvent:
		rec.Summary = fmt.Sprintf("%d scheduled, %d delayed, %d unscheduled",
			e.Stats.Scheduled, e.Stats.Delayed, e.Stats.Unscheduled)
		rec.Unscheduled = e.Stats.Unscheduled
		rec.Delayed = e.Stats.Delayed
	}
	return rec, nil
}

func opOrNil(op scenario.Op) *scenario.Op {
	if op.Op == "" {
		return nil
	}
	return &op
}

// Ops extracts the replayable operations of records in order.
func Ops(recs []Record) []scenario.Op {
	var ops []scenario.Op
	for _, r := range recs {
		if r.Op != nil {
			ops = append(ops, *r.Op)
		}
	}
	return ops
}

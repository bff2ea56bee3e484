package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/core/scheduler"
)

// Kind names an event type on the wire.
type Kind string

const (
	KindDisruption Kind = "disruption"
	KindRecovery   Kind = "recovery"
	KindStats      Kind = "stats"
)

// Event is implemented by every event published on the bus.
type Event interface {
	EventID() string
	EventKind() Kind
	EventTime() time.Time
}

// Meta carries the fields shared by all events.
type Meta struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

// NewMeta stamps a fresh identifier and the current time.
func NewMeta() Meta {
	return Meta{ID: uuid.NewString(), At: time.Now().UTC()}
}

func (m Meta) EventID() string      { return m.ID }
func (m Meta) EventTime() time.Time { return m.At }

// DisruptionEvent is published after a disruption has been applied.
type DisruptionEvent struct {
	Meta
	Op          scenario.Op      `json:"op"`
	Report      scheduler.Report `json:"report"`
	Unscheduled int              `json:"unscheduled"`
	Delayed     int              `json:"delayed"`
	Latency     time.Duration    `json:"latency"`
}

func (DisruptionEvent) EventKind() Kind { return KindDisruption }

// RecoveryEvent is published when a recovery pass completes.
type RecoveryEvent struct {
	Meta
	Op      scenario.Op               `json:"op"`
	Outcome scheduler.RecoveryOutcome `json:"outcome"`
	Latency time.Duration             `json:"latency"`
}

func (RecoveryEvent) EventKind() Kind { return KindRecovery }

// StatsEvent carries schedule statistics after a mutation.
type StatsEvent struct {
	Meta
	Stats scheduler.StatsSnapshot `json:"stats"`
}

func (StatsEvent) EventKind() Kind { return KindStats }

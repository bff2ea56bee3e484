package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tower/core/events"
	coremetrics "github.com/kilianp07/tower/core/metrics"
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
	"github.com/kilianp07/tower/internal/eventbus"
)

type memSink struct {
	mu          sync.Mutex
	disruptions []coremetrics.DisruptionRecord
	recoveries  []coremetrics.RecoveryRecord
	stats       []coremetrics.StatsRecord
}

func (m *memSink) RecordDisruption(r coremetrics.DisruptionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disruptions = append(m.disruptions, r)
	return nil
}

func (m *memSink) RecordRecovery(r coremetrics.RecoveryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recoveries = append(m.recoveries, r)
	return nil
}

func (m *memSink) RecordStats(r coremetrics.StatsRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = append(m.stats, r)
	return nil
}

func TestRecordDisruptionGroupsReasons(t *testing.T) {
	sink := &memSink{}
	ev := events.DisruptionEvent{
		Meta: events.NewMeta(),
		Report: scheduler.Report{
			Kind:    scheduler.KindDelay,
			Trigger: "Flight FL-101 delayed by 40 min",
			Unscheduled: []scheduler.Removal{
				{FlightID: "FL-101", Aircraft: "SP-LRA", Reason: model.ReasonMaxDelayExceeded},
				{FlightID: "FL-102", Aircraft: "SP-LRA", Reason: model.ReasonBrokenChain},
				{FlightID: "FL-103", Aircraft: "SP-LRA", Reason: model.ReasonBrokenChain},
			},
		},
		Unscheduled: 3,
	}
	require.NoError(t, Record(sink, ev))
	require.Len(t, sink.disruptions, 1)
	got := sink.disruptions[0]
	assert.Equal(t, "delay", got.Kind)
	assert.Equal(t, 3, got.Unscheduled())
	assert.Equal(t, 2, got.Removed[model.ReasonBrokenChain])
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sink := &memSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, bus, sink, nil)

	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	bus.Publish(events.RecoveryEvent{Meta: events.NewMeta(), Outcome: scheduler.RecoveryOutcome{Reassigned: 2}})
	bus.Publish(events.StatsEvent{Meta: events.NewMeta(), Stats: scheduler.StatsSnapshot{Total: 5, Scheduled: 5}})

	require.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return len(sink.recoveries) == 1 && len(sink.stats) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("collector did not stop")
	}
}

package metrics

import (
	"context"

	"github.com/kilianp07/tower/core/events"
	coremetrics "github.com/kilianp07/tower/core/metrics"
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events. It stops when the context is canceled or the bus is closed. The
// returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := Record(sink, ev); err != nil {
					log.Warnf("metrics sink: %v", err)
				}
			}
		}
	}()
	return done
}

// Record converts an event into the matching sink record.
func Record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.DisruptionEvent:
		removed := make(map[model.Reason]int)
		for _, rm := range e.Report.Unscheduled {
			removed[rm.Reason]++
		}
		return sink.RecordDisruption(coremetrics.DisruptionRecord{
			Kind:    string(e.Report.Kind),
			Trigger: e.Report.Trigger,
			Removed: removed,
			Delayed: e.Delayed,
			Latency: e.Latency,
			Time:    e.At,
		})
	case events.RecoveryEvent:
		if r, ok := sink.(coremetrics.RecoveryRecorder); ok {
			return r.RecordRecovery(coremetrics.RecoveryRecord{
				Reassigned:       e.Outcome.Reassigned,
				StillUnscheduled: e.Outcome.StillUnscheduled,
				Latency:          e.Latency,
				Time:             e.At,
			})
		}
	case events.StatsEvent:
		if r, ok := sink.(coremetrics.StatsRecorder); ok {
			st := e.Stats
			return r.RecordStats(coremetrics.StatsRecord{
				Total:       st.Total,
				Scheduled:   st.Scheduled,
				Delayed:     st.Delayed,
				Unscheduled: st.Unscheduled,
				ByReason:    st.ByReason,
				MeanDelay:   st.MeanDelay,
				StdDevDelay: st.StdDevDelay,
				Time:        e.At,
			})
		}
	}
	return nil
}

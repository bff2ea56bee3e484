package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kilianp07/tower/app/plugins"
	"github.com/kilianp07/tower/config"
	"github.com/kilianp07/tower/core/events"
	"github.com/kilianp07/tower/core/journal"
	coremetrics "github.com/kilianp07/tower/core/metrics"
	coremon "github.com/kilianp07/tower/core/monitoring"
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/core/scheduler"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/infra/metrics"
	"github.com/kilianp07/tower/infra/monitoring"
	"github.com/kilianp07/tower/internal/eventbus"
)

// Service owns a loaded schedule. Mutations are serialized behind a write
// lock while queries share a read lock. Events, journal records and metrics
// are produced after each mutation from the values the engine returned.
type Service struct {
	mu    sync.RWMutex
	sched *scheduler.Schedule

	// emitMu is taken before mu is released so records leave in the order
	// the mutations were applied.
	emitMu sync.Mutex

	bus     *eventbus.Bus[events.Event]
	journal journal.Store
	sink    coremetrics.MetricsSink
	feeds   []plugins.Feed
	log     logger.Logger
	mon     coremon.Monitor
	check   bool

	cancel    context.CancelFunc
	done      []<-chan struct{}
	closeOnce sync.Once
}

// Option configures a Service.
type Option func(*Service)

func WithJournal(st journal.Store) Option { return func(s *Service) { s.journal = st } }

func WithMetrics(sink coremetrics.MetricsSink) Option { return func(s *Service) { s.sink = sink } }

func WithFeeds(feeds ...plugins.Feed) Option {
	return func(s *Service) { s.feeds = append(s.feeds, feeds...) }
}

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithMonitor reports journal, feed and invariant failures.
func WithMonitor(m coremon.Monitor) Option { return func(s *Service) { s.mon = m } }

func WithBus(b *eventbus.Bus[events.Event]) Option { return func(s *Service) { s.bus = b } }

// WithInvariantChecks runs Schedule.Check after every mutation.
func WithInvariantChecks(on bool) Option { return func(s *Service) { s.check = on } }

// New wraps sched. Without options the service journals in memory and
// records no metrics.
func New(sched *scheduler.Schedule, opts ...Option) *Service {
	s := &Service{sched: sched}
	for _, o := range opts {
		o(s)
	}
	if s.bus == nil {
		s.bus = eventbus.New[events.Event](eventbus.WithBuffer(64))
	}
	if s.journal == nil {
		s.journal = journal.NewMemoryStore(0)
	}
	if s.sink == nil {
		s.sink = coremetrics.NopSink{}
	}
	if s.log == nil {
		s.log = logger.NopLogger{}
	}
	if s.mon == nil {
		s.mon = coremon.NopMonitor{}
	}
	return s
}

// NewFromConfig loads the configured scenario and builds every output the
// configuration names.
func NewFromConfig(cfg *config.Config) (*Service, error) {
	if cfg.Scenario.Path == "" {
		return nil, errors.New("no scenario configured")
	}
	file, err := scenario.Load(cfg.Scenario.Path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	sched, err := file.Build(cfg.Engine.Options())
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	mon, err := monitoring.New(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	store, err := journal.NewStore(cfg.Journal.Module())
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("metrics: %w", err), store.Close())
	}
	feeds, err := plugins.NewFeeds(cfg.Feeds)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("feeds: %w", err), store.Close(), closeSink(sink))
	}
	return New(sched,
		WithJournal(store),
		WithMetrics(sink),
		WithFeeds(feeds...),
		WithLogger(logger.New("service")),
		WithMonitor(mon),
		WithInvariantChecks(cfg.Engine.CheckInvariants),
	), nil
}

// Start launches the metrics collector and the feed forwarder. Both stop
// on Close or when ctx is canceled.
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	if _, nop := s.sink.(coremetrics.NopSink); !nop {
		s.done = append(s.done, metrics.StartEventCollector(ctx, s.bus, s.sink, s.log))
	}
	if len(s.feeds) > 0 {
		sub := s.bus.Subscribe()
		done := make(chan struct{})
		go s.forward(ctx, sub, done)
		s.done = append(s.done, done)
	}
}

func (s *Service) forward(ctx context.Context, sub <-chan events.Event, done chan<- struct{}) {
	defer close(done)
	defer s.bus.Unsubscribe(sub)
	defer s.mon.Recover()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				s.log.Errorf("encode %s event: %v", ev.EventKind(), err)
				continue
			}
			for _, f := range s.feeds {
				if err := f.Publish(ctx, string(ev.EventKind()), payload); err != nil {
					s.log.Warnf("feed publish %s: %v", ev.EventKind(), err)
					s.mon.CaptureException(err, map[string]string{"component": "feed", "kind": string(ev.EventKind())})
				}
			}
		}
	}
}

// Close stops background work and releases every output.
func (s *Service) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		for _, d := range s.done {
			<-d
		}
		s.bus.Close()
		for _, f := range s.feeds {
			errs = append(errs, f.Close())
		}
		errs = append(errs, s.journal.Close(), closeSink(s.sink))
		s.mon.Flush(2 * time.Second)
	})
	return errors.Join(errs...)
}

func closeSink(sink coremetrics.MetricsSink) error {
	if c, ok := sink.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (s *Service) Delay(ctx context.Context, flightID string, minutes model.Minute) (scheduler.Outcome, error) {
	op := scenario.Op{Op: "delay", Flight: flightID, Minutes: minutes}
	return s.disrupt(ctx, op, func(sc *scheduler.Schedule) (scheduler.Outcome, error) {
		return sc.Delay(flightID, minutes)
	})
}

func (s *Service) Curfew(ctx context.Context, airportID string, start, end model.Minute) (scheduler.Outcome, error) {
	op := scenario.Op{Op: "curfew", Airport: airportID, Start: start, End: end}
	return s.disrupt(ctx, op, func(sc *scheduler.Schedule) (scheduler.Outcome, error) {
		return sc.Curfew(airportID, start, end)
	})
}

func (s *Service) Maintenance(ctx context.Context, aircraftID string, start, end model.Minute, location string) (scheduler.Outcome, error) {
	op := scenario.Op{Op: "maintenance", Aircraft: aircraftID, Start: start, End: end, Location: location}
	return s.disrupt(ctx, op, func(sc *scheduler.Schedule) (scheduler.Outcome, error) {
		return sc.Maintenance(aircraftID, start, end, location)
	})
}

func (s *Service) disrupt(ctx context.Context, op scenario.Op, apply func(*scheduler.Schedule) (scheduler.Outcome, error)) (scheduler.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return scheduler.Outcome{}, err
	}
	start := time.Now()
	s.mu.Lock()
	out, err := apply(s.sched)
	if err != nil {
		s.mu.Unlock()
		s.log.Warnf("%s rejected: %v", op, err)
		return out, err
	}
	stats, checkErr := s.snapshotLocked(op)
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	latency := time.Since(start)
	s.emit(ctx, events.DisruptionEvent{
		Meta:        events.NewMeta(),
		Op:          op,
		Report:      out.Report,
		Unscheduled: out.Unscheduled,
		Delayed:     out.Delayed,
		Latency:     latency,
	}, stats)
	s.log.Infof("%s: %d unscheduled, %d delayed in %s", op, out.Unscheduled, out.Delayed, latency)
	return out, checkErr
}

// Recover runs a recovery pass.
func (s *Service) Recover(ctx context.Context) (scheduler.RecoveryOutcome, error) {
	if err := ctx.Err(); err != nil {
		return scheduler.RecoveryOutcome{}, err
	}
	start := time.Now()
	s.mu.Lock()
	out := s.sched.Recover()
	stats, checkErr := s.snapshotLocked(scenario.Op{Op: "recover"})
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	latency := time.Since(start)
	s.emit(ctx, events.RecoveryEvent{
		Meta:    events.NewMeta(),
		Op:      scenario.Op{Op: "recover"},
		Outcome: out,
		Latency: latency,
	}, stats)
	s.log.Infof("recover: %d reassigned, %d still unscheduled in %s", out.Reassigned, out.StillUnscheduled, latency)
	return out, checkErr
}

func (s *Service) snapshotLocked(op scenario.Op) (scheduler.StatsSnapshot, error) {
	stats := s.sched.Stats()
	if !s.check {
		return stats, nil
	}
	if err := s.sched.Check(); err != nil {
		s.log.Errorf("invariant violated after %s: %v", op, err)
		s.mon.CaptureException(err, map[string]string{"component": "engine", "op": op.Op})
		return stats, err
	}
	return stats, nil
}

func (s *Service) emit(ctx context.Context, ev events.Event, stats scheduler.StatsSnapshot) {
	rec, err := journal.FromEvent(ev)
	if err == nil {
		err = s.journal.Append(ctx, rec)
	}
	if err != nil {
		s.log.Errorf("journal: %v", err)
		s.mon.CaptureException(err, map[string]string{"component": "journal", "kind": string(ev.EventKind())})
	}
	s.bus.Publish(ev)
	s.bus.Publish(events.StatsEvent{Meta: events.NewMeta(), Stats: stats})
}

func (s *Service) Flights(filter scheduler.Filter) []scheduler.FlightView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.ListFlights(filter)
}

func (s *Service) Flight(id string) (scheduler.FlightView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Flight(id)
}

func (s *Service) Aircraft() []scheduler.AircraftView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Aircraft()
}

func (s *Service) Airports() []model.Airport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Airports()
}

func (s *Service) Stats() scheduler.StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Stats()
}

func (s *Service) LastReport() (scheduler.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.LastReport()
}

func (s *Service) Options() scheduler.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Options()
}

// Journal queries the disruption journal.
func (s *Service) Journal(ctx context.Context, q journal.Query) ([]journal.Record, error) {
	return s.journal.Query(ctx, q)
}

// Bus exposes the event bus for subscribers such as the websocket stream.
func (s *Service) Bus() *eventbus.Bus[events.Event] { return s.bus }

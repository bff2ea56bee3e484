package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tower/config"
	"github.com/kilianp07/tower/core/events"
	"github.com/kilianp07/tower/core/factory"
	"github.com/kilianp07/tower/core/journal"
	coremetrics "github.com/kilianp07/tower/core/metrics"
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/core/scheduler"
)

func alphaSchedule(t *testing.T, opts scheduler.Options) *scheduler.Schedule {
	t.Helper()
	s, err := scheduler.Load(
		[]model.Flight{
			{ID: "FL-101", Origin: "WAW", Destination: "KRK", Departure: 300, Arrival: 360},
			{ID: "FL-102", Origin: "KRK", Destination: "GDN", Departure: 400, Arrival: 460},
			{ID: "FL-201", Origin: "GDN", Destination: "WAW", Departure: 500, Arrival: 560},
		},
		[]model.Aircraft{{ID: "ALPHA", Location: "WAW"}},
		[]model.Airport{{ID: "WAW"}, {ID: "KRK"}, {ID: "GDN"}},
		opts,
	)
	require.NoError(t, err)
	return s
}

func next(t *testing.T, sub <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-sub:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("no event received")
		return nil
	}
}

type captureFeed struct {
	mu    sync.Mutex
	kinds []string
}

func (f *captureFeed) Publish(_ context.Context, kind string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	return nil
}

func (f *captureFeed) Close() error { return nil }

func (f *captureFeed) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.kinds...)
}

type captureSink struct {
	mu   sync.Mutex
	recs []coremetrics.DisruptionRecord
}

func (s *captureSink) RecordDisruption(rec coremetrics.DisruptionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func TestDelayPublishesAndJournals(t *testing.T) {
	svc := New(alphaSchedule(t, scheduler.Options{MTT: 30, MaxDelay: 120}), WithInvariantChecks(true))
	defer svc.Close()
	sub := svc.Bus().Subscribe()

	out, err := svc.Delay(context.Background(), "FL-101", 200)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Unscheduled)

	ev, ok := next(t, sub).(events.DisruptionEvent)
	require.True(t, ok)
	assert.Equal(t, "delay FL-101 200", ev.Op.String())
	assert.Equal(t, scheduler.KindDelay, ev.Report.Kind)
	assert.Equal(t, 3, ev.Unscheduled)

	st, ok := next(t, sub).(events.StatsEvent)
	require.True(t, ok)
	assert.Equal(t, 3, st.Stats.Unscheduled)

	recs, err := svc.Journal(context.Background(), journal.Query{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, events.KindDisruption, recs[0].Kind)
	assert.Equal(t, "Flight FL-101 delayed by 200 min", recs[0].Summary)
	require.NotNil(t, recs[0].Op)
	assert.Equal(t, model.Minute(200), recs[0].Op.Minutes)
}

func TestRejectedMutationLeavesNoTrace(t *testing.T) {
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()))
	defer svc.Close()

	_, err := svc.Delay(context.Background(), "FL-999", 10)
	assert.True(t, errors.Is(err, scheduler.ErrUnknownFlight))
	_, err = svc.Curfew(context.Background(), "WAW", 500, 400)
	assert.True(t, errors.Is(err, scheduler.ErrInvalidInterval))

	recs, err := svc.Journal(context.Background(), journal.Query{})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 3, svc.Stats().Scheduled)
	_, ok := svc.LastReport()
	assert.False(t, ok)
}

func TestCanceledContext(t *testing.T) {
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()))
	defer svc.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Delay(ctx, "FL-101", 10)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.Recover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, svc.Stats().Scheduled)
}

func TestRecoverPublishesOutcome(t *testing.T) {
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()))
	defer svc.Close()

	_, err := svc.Maintenance(context.Background(), "ALPHA", 0, 1000, "")
	require.NoError(t, err)
	sub := svc.Bus().Subscribe()

	out, err := svc.Recover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Reassigned)
	assert.Equal(t, 3, out.StillUnscheduled)

	ev, ok := next(t, sub).(events.RecoveryEvent)
	require.True(t, ok)
	assert.Equal(t, 3, ev.Outcome.StillUnscheduled)

	recs, err := svc.Journal(context.Background(), journal.Query{Kind: events.KindRecovery})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "recover", recs[0].Op.Op)
}

func TestStartForwardsToFeedsAndMetrics(t *testing.T) {
	feed := &captureFeed{}
	sink := &captureSink{}
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()), WithFeeds(feed), WithMetrics(sink))
	svc.Start(context.Background())

	_, err := svc.Curfew(context.Background(), "GDN", 450, 470)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(feed.seen()) == 2 && sink.count() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"disruption", "stats"}, feed.seen())
	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())
}

func TestJournalReplayReproducesSchedule(t *testing.T) {
	ctx := context.Background()
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()))
	defer svc.Close()

	_, err := svc.Delay(ctx, "FL-101", 200)
	require.NoError(t, err)
	_, err = svc.Curfew(ctx, "WAW", 0, 10)
	require.NoError(t, err)
	_, err = svc.Recover(ctx)
	require.NoError(t, err)

	recs, err := svc.Journal(ctx, journal.Query{})
	require.NoError(t, err)
	fresh := alphaSchedule(t, scheduler.DefaultOptions())
	script := scenario.Script{Ops: journal.Ops(recs)}
	_, err = script.Run(ctx, scenario.Direct(fresh))
	require.NoError(t, err)

	assert.Equal(t, svc.Flights(scheduler.Filter{}), fresh.ListFlights(scheduler.Filter{}))
	assert.Equal(t, svc.Aircraft(), fresh.Aircraft())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	ctx := context.Background()
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()), WithInvariantChecks(true))
	defer svc.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, err := svc.Delay(ctx, "FL-201", 1); err != nil {
					t.Errorf("delay: %v", err)
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = svc.Flights(scheduler.Filter{})
				_ = svc.Stats()
				_ = svc.Aircraft()
			}
		}()
	}
	wg.Wait()

	v, err := svc.Flight("FL-201")
	require.NoError(t, err)
	assert.Equal(t, model.Minute(20), v.Delay)
	recs, err := svc.Journal(ctx, journal.Query{})
	require.NoError(t, err)
	assert.Len(t, recs, 20)
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alpha.json")
	data := `{
  "max_delay": 120,
  "airports": [{"id": "WAW"}, {"id": "KRK"}, {"id": "GDN"}],
  "aircraft": [{"id": "ALPHA", "initial_location_id": "WAW"}],
  "flights": [
    {"id": "FL-101", "origin_id": "WAW", "destination_id": "KRK", "departure_time": 300, "arrival_time": 360},
    {"id": "FL-102", "origin_id": "KRK", "destination_id": "GDN", "departure_time": 400, "arrival_time": 460},
    {"id": "FL-201", "origin_id": "GDN", "destination_id": "WAW", "departure_time": 500, "arrival_time": 560}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Scenario.Path = path
	cfg.Journal = config.JournalConfig{Backend: "jsonl", Path: filepath.Join(dir, "journal.jsonl")}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}

	svc, err := NewFromConfig(cfg)
	require.NoError(t, err)
	svc.Start(context.Background())
	defer svc.Close()

	assert.Equal(t, model.Minute(120), svc.Options().MaxDelay)
	out, err := svc.Delay(context.Background(), "FL-101", 200)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Unscheduled)

	recs, err := svc.Journal(context.Background(), journal.Query{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestNewFromConfigErrors(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	_, err = NewFromConfig(cfg)
	assert.Error(t, err)

	cfg.Scenario.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewFromConfig(cfg)
	assert.Error(t, err)
}

type failingStore struct{ journal.Store }

func (failingStore) Append(context.Context, journal.Record) error { return errors.New("disk full") }

type captureMonitor struct {
	mu   sync.Mutex
	tags []map[string]string
}

func (m *captureMonitor) CaptureException(_ error, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags = append(m.tags, tags)
}

func (m *captureMonitor) Recover()            {}
func (m *captureMonitor) Flush(time.Duration) {}

func TestJournalFailureIsReported(t *testing.T) {
	mon := &captureMonitor{}
	store := failingStore{Store: journal.NewMemoryStore(0)}
	svc := New(alphaSchedule(t, scheduler.DefaultOptions()), WithJournal(store), WithMonitor(mon))
	defer svc.Close()

	_, err := svc.Delay(context.Background(), "FL-201", 10)
	require.NoError(t, err, "journal failures do not fail the mutation")
	v, err := svc.Flight("FL-201")
	require.NoError(t, err)
	assert.Equal(t, model.Minute(10), v.Delay)

	mon.mu.Lock()
	defer mon.mu.Unlock()
	require.Len(t, mon.tags, 1)
	assert.Equal(t, "journal", mon.tags[0]["component"])
	assert.Equal(t, "disruption", mon.tags[0]["kind"])
}

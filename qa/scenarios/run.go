package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/core/scheduler"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/infra/metrics"
)

func RunCase(t *testing.T, c *Case) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	sched, err := c.Schedule.Build(scheduler.DefaultOptions())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	svc := app.New(sched,
		app.WithMetrics(sink),
		app.WithLogger(logger.NopLogger{}),
		app.WithInvariantChecks(true),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer func() {
		if err := svc.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	reassigned := 0
	for _, op := range c.Ops {
		res, err := op.Apply(ctx, svc)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if res.Recovery != nil {
			reassigned += res.Recovery.Reassigned
		}
	}

	st := svc.Stats()
	if st.Scheduled != c.Expected.Scheduled || st.Delayed != c.Expected.Delayed || st.Unscheduled != c.Expected.Unscheduled {
		t.Errorf("case %s expected %d/%d/%d scheduled/delayed/unscheduled, got %d/%d/%d",
			c.Name, c.Expected.Scheduled, c.Expected.Delayed, c.Expected.Unscheduled,
			st.Scheduled, st.Delayed, st.Unscheduled)
	}
	if reassigned != c.Expected.Reassigned {
		t.Errorf("case %s expected %d reassigned, got %d", c.Name, c.Expected.Reassigned, reassigned)
	}
	for id, want := range c.Expected.Statuses {
		v, err := svc.Flight(id)
		if err != nil {
			t.Errorf("flight %s: %v", id, err)
			continue
		}
		if got := v.State().String(); got != want {
			t.Errorf("flight %s expected %s, got %s", id, want, got)
		}
	}

	if len(c.Ops) == 0 {
		return
	}
	deadline := time.Now().Add(time.Second)
	for gaugeValue(t, reg, "tower_flights", "scheduled") != float64(c.Expected.Scheduled) {
		if time.Now().After(deadline) {
			t.Fatalf("case %s: scheduled gauge never reached %d", c.Name, c.Expected.Scheduled)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func gaugeValue(t *testing.T, g prometheus.Gatherer, name, status string) float64 {
	t.Helper()
	mfs, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" && l.GetValue() == status {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	return -1
}

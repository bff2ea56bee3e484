package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/tower/core/metrics"
	"github.com/kilianp07/tower/core/model"
)

// PromSink records scheduler activity in Prometheus metrics.
type PromSink struct {
	disruptions *prometheus.CounterVec
	removed     *prometheus.CounterVec
	delayed     prometheus.Counter
	reassigned  prometheus.Counter
	latency     *prometheus.HistogramVec
	flights     *prometheus.GaugeVec
	meanDelay   prometheus.Gauge
}

// NewPromSink registers scheduler metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		disruptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tower_disruptions_total",
			Help: "Total number of disruptions applied",
		}, []string{"kind"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tower_flights_unscheduled_total",
			Help: "Flights unassigned by disruptions",
		}, []string{"reason"}),
		delayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tower_flights_delayed_total",
			Help: "Flights kept on their aircraft with a new delay",
		}),
		reassigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tower_recovery_reassigned_total",
			Help: "Flights placed back on an aircraft by recovery",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tower_operation_duration_seconds",
			Help:    "Time spent applying an operation to the schedule",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
		flights: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tower_flights",
			Help: "Current number of flights per status",
		}, []string{"status"}),
		meanDelay: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tower_delay_mean_minutes",
			Help: "Mean delay of delayed flights",
		}),
	}

	var err error
	if s.disruptions, err = register(reg, s.disruptions); err != nil {
		return nil, err
	}
	if s.removed, err = register(reg, s.removed); err != nil {
		return nil, err
	}
	if s.delayed, err = register(reg, s.delayed); err != nil {
		return nil, err
	}
	if s.reassigned, err = register(reg, s.reassigned); err != nil {
		return nil, err
	}
	if s.latency, err = register(reg, s.latency); err != nil {
		return nil, err
	}
	if s.flights, err = register(reg, s.flights); err != nil {
		return nil, err
	}
	if s.meanDelay, err = register(reg, s.meanDelay); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the existing collector when c was already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordDisruption counts the disruption and the flights it removed.
func (s *PromSink) RecordDisruption(rec coremetrics.DisruptionRecord) error {
	s.disruptions.WithLabelValues(rec.Kind).Inc()
	for reason, n := range rec.Removed {
		if n > 0 {
			s.removed.WithLabelValues(reason.String()).Add(float64(n))
		}
	}
	s.delayed.Add(float64(rec.Delayed))
	s.latency.WithLabelValues(rec.Kind).Observe(rec.Latency.Seconds())
	return nil
}

// RecordRecovery counts reassigned flights.
func (s *PromSink) RecordRecovery(rec coremetrics.RecoveryRecord) error {
	s.reassigned.Add(float64(rec.Reassigned))
	s.latency.WithLabelValues("recover").Observe(rec.Latency.Seconds())
	return nil
}

// RecordStats sets the status gauges. Unscheduled flights are split by reason.
func (s *PromSink) RecordStats(rec coremetrics.StatsRecord) error {
	s.flights.WithLabelValues("scheduled").Set(float64(rec.Scheduled))
	s.flights.WithLabelValues("delayed").Set(float64(rec.Delayed))
	for _, r := range model.Reasons() {
		s.flights.WithLabelValues(model.Unscheduled{Reason: r}.String()).Set(float64(rec.ByReason[r]))
	}
	s.meanDelay.Set(rec.MeanDelay)
	return nil
}

// Handler exposes the metrics of the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor exposes the metrics of a specific gatherer.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

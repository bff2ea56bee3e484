package metrics

import "errors"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDisruption forwards the record to all sinks. Every sink is tried and
// the errors are joined.
func (m *MultiSink) RecordDisruption(rec DisruptionRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordDisruption(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordRecovery forwards recovery passes to sinks that support them.
func (m *MultiSink) RecordRecovery(rec RecoveryRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(RecoveryRecorder); ok {
			if err := r.RecordRecovery(rec); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordStats forwards snapshots to sinks that support them.
func (m *MultiSink) RecordStats(rec StatsRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(StatsRecorder); ok {
			if err := r.RecordStats(rec); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

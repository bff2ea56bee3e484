// Package metrics defines interfaces for recording scheduler activity. Sinks
// like PromSink and InfluxSink record disruptions, recovery passes and
// statistics snapshots and can be combined with NewMultiSink. The factory
// helpers return a MultiSink automatically when multiple sinks are
// configured.
package metrics

// Package infra groups the adapters to external systems: the zerolog logger,
// Prometheus and InfluxDB sinks, MQTT, Redis and webhook feeds, S3 uploads
// and Sentry. They implement interfaces declared under core.
package infra

package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/tower/core/metrics"
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/infra/logger"
)

// InfluxSink writes scheduler events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

// RecordDisruption writes one point per disruption with removals per reason.
func (s *InfluxSink) RecordDisruption(rec coremetrics.DisruptionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("disruption").
		AddTag("kind", rec.Kind).
		AddTag("component", "scheduler").
		AddField("trigger", rec.Trigger).
		AddField("unscheduled", rec.Unscheduled()).
		AddField("delayed", rec.Delayed).
		AddField("latency_ms", round3(rec.Latency.Seconds()*1000))
	for _, r := range model.Reasons() {
		if n := rec.Removed[r]; n > 0 {
			p = p.AddField(r.String(), n)
		}
	}
	p = p.SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRecovery writes the result of a recovery pass.
func (s *InfluxSink) RecordRecovery(rec coremetrics.RecoveryRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("recovery").
		AddTag("component", "scheduler").
		AddField("reassigned", rec.Reassigned).
		AddField("still_unscheduled", rec.StillUnscheduled).
		AddField("latency_ms", round3(rec.Latency.Seconds()*1000)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordStats writes a schedule snapshot.
func (s *InfluxSink) RecordStats(rec coremetrics.StatsRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("schedule_stats").
		AddTag("component", "scheduler").
		AddField("total", rec.Total).
		AddField("scheduled", rec.Scheduled).
		AddField("delayed", rec.Delayed).
		AddField("unscheduled", rec.Unscheduled).
		AddField("mean_delay", round3(rec.MeanDelay)).
		AddField("stddev_delay", round3(rec.StdDevDelay)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

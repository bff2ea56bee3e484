package plugins

import (
	"context"
	"encoding/json"

	"github.com/kilianp07/tower/core/factory"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/infra/mqtt"
	"github.com/kilianp07/tower/infra/redis"
	"github.com/kilianp07/tower/infra/webhook"
)

func init() {
	RegisterFeed("mqtt", func(name string, conf map[string]any) (Feed, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return mqtt.NewPahoClient(c)
	})
	RegisterFeed("redis", func(name string, conf map[string]any) (Feed, error) {
		var c redis.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return redis.NewPublisher(c)
	})
	RegisterFeed("webhook", func(name string, conf map[string]any) (Feed, error) {
		var c webhook.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return webhook.NewPublisher(c)
	})
	RegisterFeed("log", func(name string, _ map[string]any) (Feed, error) {
		return LogFeed{log: logger.New("feed")}, nil
	})
}

// LogFeed writes events to the structured logger at debug level.
type LogFeed struct {
	log logger.Logger
}

func (f LogFeed) Publish(_ context.Context, kind string, payload []byte) error {
	f.log.Debugw("event", map[string]any{"kind": kind, "payload": json.RawMessage(payload)})
	return nil
}

func (LogFeed) Close() error { return nil }

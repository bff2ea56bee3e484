// Package redis publishes scheduler events on Redis pub/sub channels.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kilianp07/tower/infra/logger"
)

// DefaultChannelPrefix is used when no prefix is configured.
const DefaultChannelPrefix = "tower:events"

// Config defines how to reach Redis. URL takes precedence over Addr.
type Config struct {
	URL           string        `json:"url"`
	Addr          string        `json:"addr"`
	Password      string        `json:"password"`
	DB            int           `json:"db"`
	ChannelPrefix string        `json:"channel_prefix"`
	Timeout       time.Duration `json:"timeout"`
}

// Options converts the config into go-redis options.
func (c Config) Options() (*goredis.Options, error) {
	if c.URL != "" {
		return goredis.ParseURL(c.URL)
	}
	if c.Addr == "" {
		return nil, errors.New("redis: url or addr is required")
	}
	return &goredis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}, nil
}

// publisher is the subset of *goredis.Client used by Publisher.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
	Close() error
}

// Publisher sends event payloads to channels named <prefix>:<kind>.
type Publisher struct {
	rdb     publisher
	prefix  string
	timeout time.Duration
	log     logger.Logger
}

// NewPublisher creates a Publisher connected to the configured server.
func NewPublisher(cfg Config) (*Publisher, error) {
	opt, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return newPublisher(goredis.NewClient(opt), cfg), nil
}

func newPublisher(rdb publisher, cfg Config) *Publisher {
	prefix := strings.TrimSuffix(cfg.ChannelPrefix, ":")
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Publisher{rdb: rdb, prefix: prefix, timeout: timeout, log: logger.New("redis_feed")}
}

// Channel returns the channel an event kind is published on.
func (p *Publisher) Channel(kind string) string { return p.prefix + ":" + kind }

// Publish sends payload to the channel of kind.
func (p *Publisher) Publish(ctx context.Context, kind string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ch := p.Channel(kind)
	n, err := p.rdb.Publish(ctx, ch, payload).Result()
	if err != nil {
		return fmt.Errorf("redis publish %s: %w", ch, err)
	}
	p.log.Debugf("published to %s (%d receivers)", ch, n)
	return nil
}

// Close releases the connection pool.
func (p *Publisher) Close() error { return p.rdb.Close() }

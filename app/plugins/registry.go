// Package plugins holds the registries of pluggable outputs built from
// configuration.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kilianp07/tower/core/factory"
)

// Feed publishes encoded events to an external system.
type Feed interface {
	Publish(ctx context.Context, kind string, payload []byte) error
	Close() error
}

// FeedFactory builds a feed from a raw configuration map.
type FeedFactory func(name string, conf map[string]any) (Feed, error)

// Feeds maps a feed type to its factory.
var Feeds = map[string]FeedFactory{}

// RegisterFeed adds or replaces a feed factory.
func RegisterFeed(name string, f FeedFactory) { Feeds[name] = f }

// FeedTypes lists the registered feed types.
func FeedTypes() []string {
	out := make([]string, 0, len(Feeds))
	for name := range Feeds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewFeed instantiates one feed.
func NewFeed(cfg factory.ModuleConfig) (Feed, error) {
	f, ok := Feeds[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown feed type %q (known: %v)", cfg.Type, FeedTypes())
	}
	return f(cfg.Type, cfg.Conf)
}

// NewFeeds instantiates every configured feed. Feeds already created are
// closed when a later one fails.
func NewFeeds(cfgs []factory.ModuleConfig) ([]Feed, error) {
	feeds := make([]Feed, 0, len(cfgs))
	for i, c := range cfgs {
		f, err := NewFeed(c)
		if err != nil {
			errs := []error{fmt.Errorf("feed %d (%s): %w", i, c.Type, err)}
			for _, made := range feeds {
				errs = append(errs, made.Close())
			}
			return nil, errors.Join(errs...)
		}
		feeds = append(feeds, f)
	}
	return feeds, nil
}

package scheduler

import (
	"fmt"

	"github.com/kilianp07/tower/core/model"
)

const (
	// DefaultMTT is the minimum turn time used when none is configured.
	DefaultMTT model.Minute = 30
	// DefaultMaxDelay is the largest cumulative delay a flight may carry and stay assigned.
	DefaultMaxDelay model.Minute = 2000
)

// Options tunes the engine for one loaded scenario.
type Options struct {
	MTT      model.Minute `json:"mtt"`
	MaxDelay model.Minute `json:"max_delay"`
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{MTT: DefaultMTT, MaxDelay: DefaultMaxDelay}
}

func (o Options) validate() error {
	if o.MTT < 0 {
		return fmt.Errorf("%w: negative mtt %d", ErrInvalidScenario, o.MTT)
	}
	if o.MaxDelay < 0 {
		return fmt.Errorf("%w: negative max delay %d", ErrInvalidScenario, o.MaxDelay)
	}
	return nil
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKinds(t *testing.T) {
	evs := []Event{
		DisruptionEvent{Meta: NewMeta()},
		RecoveryEvent{Meta: NewMeta()},
		StatsEvent{Meta: NewMeta()},
	}
	want := []Kind{KindDisruption, KindRecovery, KindStats}
	seen := map[string]bool{}
	for i, ev := range evs {
		assert.Equal(t, want[i], ev.EventKind())
		assert.False(t, ev.EventTime().IsZero())
		assert.NotEmpty(t, ev.EventID())
		seen[ev.EventID()] = true
	}
	assert.Len(t, seen, 3)
}
